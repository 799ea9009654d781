package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// completionWith wraps content in the chat completions response shape.
func completionWith(content string) map[string]any {
	return map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
	}
}

func testClient(server *httptest.Server) *Client {
	client := NewClient(Config{APIKey: "test-key"})
	client.baseURL = server.URL
	client.httpClient = server.Client()
	return client
}

func TestSuggestTracks(t *testing.T) {
	var gotRequest chatRequest
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s, want /chat/completions", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")

		if err := json.NewDecoder(r.Body).Decode(&gotRequest); err != nil {
			t.Fatalf("decoding request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(completionWith(`[
			{"track_name": "Olson", "artist": "Boards of Canada"},
			{"track_name": "Xtal", "artist": "Aphex Twin"}
		]`))
	}))
	defer server.Close()

	client := testClient(server)

	suggestions, err := client.SuggestTracks(context.Background(), "Roygbiv", "Boards of Canada")
	if err != nil {
		t.Fatalf("SuggestTracks() error = %v", err)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer test-key")
	}
	if gotRequest.Model != DefaultModel {
		t.Errorf("model = %q, want %q", gotRequest.Model, DefaultModel)
	}
	if gotRequest.MaxTokens != DefaultMaxTokens {
		t.Errorf("max_tokens = %d, want %d", gotRequest.MaxTokens, DefaultMaxTokens)
	}
	if gotRequest.Temperature != DefaultTemperature {
		t.Errorf("temperature = %v, want %v", gotRequest.Temperature, DefaultTemperature)
	}
	if len(gotRequest.Messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(gotRequest.Messages))
	}
	if gotRequest.Messages[0].Role != "system" || gotRequest.Messages[0].Content != systemPrompt {
		t.Errorf("system message = %+v", gotRequest.Messages[0])
	}
	wantPrompt := fmt.Sprintf(promptFormat, "Roygbiv", "Boards of Canada")
	if gotRequest.Messages[1].Role != "user" || gotRequest.Messages[1].Content != wantPrompt {
		t.Errorf("user message = %+v, want prompt %q", gotRequest.Messages[1], wantPrompt)
	}

	if len(suggestions) != 2 {
		t.Fatalf("got %d suggestions, want 2", len(suggestions))
	}
	if suggestions[0].TrackName != "Olson" || suggestions[0].Artist != "Boards of Canada" {
		t.Errorf("suggestions[0] = %+v", suggestions[0])
	}
	if suggestions[1].TrackName != "Xtal" || suggestions[1].Artist != "Aphex Twin" {
		t.Errorf("suggestions[1] = %+v", suggestions[1])
	}
}

func TestSuggestTracks_NoAPIKey(t *testing.T) {
	client := NewClient(Config{})

	_, err := client.SuggestTracks(context.Background(), "Roygbiv", "Boards of Canada")
	if !errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("expected ErrNoAPIKey, got %v", err)
	}
}

func TestSuggestTracks_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error": {"message": "Incorrect API key provided"}}`)
	}))
	defer server.Close()

	client := testClient(server)

	_, err := client.SuggestTracks(context.Background(), "Roygbiv", "Boards of Canada")
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
	if !strings.Contains(err.Error(), "openai api error: 401") {
		t.Errorf("error = %v, want status code in message", err)
	}
}

func TestSuggestTracks_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices": []}`)
	}))
	defer server.Close()

	client := testClient(server)

	_, err := client.SuggestTracks(context.Background(), "Roygbiv", "Boards of Canada")
	if err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestSuggestTracks_NonJSONCompletion(t *testing.T) {
	content := "Sure! Here are some great tracks you might enjoy: 1. Olson by Boards of Canada"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(completionWith(content))
	}))
	defer server.Close()

	client := testClient(server)

	_, err := client.SuggestTracks(context.Background(), "Roygbiv", "Boards of Canada")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if parseErr.Raw != content {
		t.Errorf("Raw = %q, want the model output", parseErr.Raw)
	}
}

func TestSuggestTracks_TrimsWhitespace(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(completionWith("\n\n  [{\"track_name\": \"Olson\", \"artist\": \"Boards of Canada\"}]  \n"))
	}))
	defer server.Close()

	client := testClient(server)

	suggestions, err := client.SuggestTracks(context.Background(), "Roygbiv", "Boards of Canada")
	if err != nil {
		t.Fatalf("SuggestTracks() error = %v", err)
	}
	if len(suggestions) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(suggestions))
	}
}

func TestParseSuggestions(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantCount int
		wantErr   bool
	}{
		{
			name:      "valid array",
			raw:       `[{"track_name": "Olson", "artist": "Boards of Canada"}]`,
			wantCount: 1,
		},
		{
			name:      "empty array",
			raw:       `[]`,
			wantCount: 0,
		},
		{
			name:    "object instead of array",
			raw:     `{"track_name": "Olson", "artist": "Boards of Canada"}`,
			wantErr: true,
		},
		{
			name:    "not JSON",
			raw:     "here are some suggestions",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			suggestions, err := ParseSuggestions(tt.raw)

			if tt.wantErr {
				var parseErr *ParseError
				if !errors.As(err, &parseErr) {
					t.Fatalf("expected *ParseError, got %v", err)
				}
				if parseErr.Raw != tt.raw {
					t.Errorf("Raw = %q, want %q", parseErr.Raw, tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSuggestions() error = %v", err)
			}
			if len(suggestions) != tt.wantCount {
				t.Errorf("got %d suggestions, want %d", len(suggestions), tt.wantCount)
			}
		})
	}
}
