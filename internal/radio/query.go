package radio

import "math/rand/v2"

// DeriveQuery picks the search query for a station seeded by the given
// artist. One of the artist's genres is chosen at random; artists with no
// genres fall back to their name.
func DeriveQuery(artistName string, genres []string) string {
	if len(genres) == 0 {
		return artistName
	}
	return genres[rand.IntN(len(genres))]
}

// Shuffle reorders the URI list in place.
func Shuffle(uris []string) {
	rand.Shuffle(len(uris), func(i, j int) {
		uris[i], uris[j] = uris[j], uris[i]
	})
}
