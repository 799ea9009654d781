package openai

import (
	"encoding/json"
	"fmt"
)

// Suggestion is one track proposed by the model.
type Suggestion struct {
	TrackName string `json:"track_name"`
	Artist    string `json:"artist"`
}

// ParseError reports a completion that was not the JSON array the prompt
// asked for. Raw carries the unparsed model output for diagnostics.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing suggestions as JSON array: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseSuggestions decodes model output as a JSON array of suggestions.
// Any other shape, including prose around the array, is a *ParseError.
func ParseSuggestions(raw string) ([]Suggestion, error) {
	var suggestions []Suggestion
	if err := json.Unmarshal([]byte(raw), &suggestions); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}
	return suggestions, nil
}

// Chat completions wire format, reduced to the fields this client uses.

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}
