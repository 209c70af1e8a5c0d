package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const groundedReply = `{
	"candidates": [{
		"content": {"parts": [{"text": "Take an umbrella!"}]},
		"groundingMetadata": {
			"groundingAttributions": [
				{"web": {"uri": "https://example.com/weather", "title": "Example Weather"}},
				{"web": {"uri": "https://example.org/forecast"}}
			]
		}
	}]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(srv.Client(), "test-key")
	c.baseURL = srv.URL
	return c
}

func decodePayload(t *testing.T, r *http.Request) generatePayload {
	t.Helper()
	var payload generatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		t.Fatalf("decoding upstream payload: %v", err)
	}
	return payload
}

func TestGenerateAppendsJapaneseDirective(t *testing.T) {
	var instruction string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		payload := decodePayload(t, r)
		instruction = payload.SystemInstruction.Parts[0].Text
		w.Write([]byte(groundedReply))
	})

	_, err := c.Generate(context.Background(), Request{
		PromptText:        "weather?",
		SystemInstruction: "You are an assistant.",
		Language:          LanguageJapanese,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasSuffix(instruction, japaneseDirective) {
		t.Errorf("instruction does not end with the Japanese directive: %q", instruction)
	}
	if strings.Count(instruction, japaneseDirective) != 1 {
		t.Errorf("Japanese directive appended %d times, want exactly once",
			strings.Count(instruction, japaneseDirective))
	}
}

func TestGenerateAppendsEnglishDirective(t *testing.T) {
	var instruction string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		payload := decodePayload(t, r)
		instruction = payload.SystemInstruction.Parts[0].Text
		w.Write([]byte(groundedReply))
	})

	if _, err := c.Generate(context.Background(), Request{
		SystemInstruction: "Base.",
		PromptText:        "hi",
		Language:          LanguageEnglish,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasSuffix(instruction, englishDirective) {
		t.Errorf("instruction does not end with the English directive: %q", instruction)
	}
}

func TestGenerateUnknownLanguageLeavesInstructionAlone(t *testing.T) {
	var instruction string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		payload := decodePayload(t, r)
		instruction = payload.SystemInstruction.Parts[0].Text
		w.Write([]byte(groundedReply))
	})

	if _, err := c.Generate(context.Background(), Request{
		SystemInstruction: "Base.",
		PromptText:        "hi",
		Language:          "fr-FR",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if instruction != "Base." {
		t.Errorf("instruction = %q, want unmodified base", instruction)
	}
}

func TestGenerateEnablesSearchGrounding(t *testing.T) {
	var raw map[string]json.RawMessage
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Fatalf("decoding upstream payload: %v", err)
		}
		w.Write([]byte(groundedReply))
	})

	if _, err := c.Generate(context.Background(), Request{PromptText: "hi"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tools, ok := raw["tools"]
	if !ok {
		t.Fatal("payload has no tools field")
	}
	if string(tools) != `[{"googleSearch":{}}]` {
		t.Errorf("tools = %s, want googleSearch enabled", tools)
	}
}

func TestGenerateParsesSources(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(groundedReply))
	})

	reply, err := c.Generate(context.Background(), Request{PromptText: "hi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reply.Text != "Take an umbrella!" {
		t.Errorf("text = %q", reply.Text)
	}
	if len(reply.Sources) != 2 {
		t.Fatalf("sources = %d, want 2", len(reply.Sources))
	}
	if reply.Sources[0].Title != "Example Weather" {
		t.Errorf("sources[0].Title = %q", reply.Sources[0].Title)
	}
	// Entries without a title fall back to the fixed label.
	if reply.Sources[1].Title != "External Source" {
		t.Errorf("sources[1].Title = %q, want External Source", reply.Sources[1].Title)
	}
	if reply.Sources[1].URI != "https://example.org/forecast" {
		t.Errorf("sources[1].URI = %q", reply.Sources[1].URI)
	}
}

func TestGenerateNoGroundingYieldsEmptySources(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Sunny."}]}}]}`))
	})

	reply, err := c.Generate(context.Background(), Request{PromptText: "hi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Sources == nil || len(reply.Sources) != 0 {
		t.Errorf("sources = %#v, want empty non-nil slice", reply.Sources)
	}
}

func TestGenerateRateLimitedRawBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("quota exceeded, slow down"))
	})

	_, err := c.Generate(context.Background(), Request{PromptText: "hi"})

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("error type = %T, want *UpstreamError", err)
	}
	if upstream.Status != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", upstream.Status)
	}
	// Non-JSON bodies surface raw as both message and detail.
	if upstream.Message != "quota exceeded, slow down" {
		t.Errorf("message = %q, want raw body", upstream.Message)
	}
	if upstream.Details != "quota exceeded, slow down" {
		t.Errorf("details = %q, want raw body", upstream.Details)
	}
}

func TestGenerateStructuredUpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid argument","status":"INVALID_ARGUMENT"}}`))
	})

	_, err := c.Generate(context.Background(), Request{PromptText: "hi"})

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("error type = %T, want *UpstreamError", err)
	}
	if upstream.Status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", upstream.Status)
	}
	if upstream.Message != "Invalid argument" {
		t.Errorf("message = %q, want extracted message", upstream.Message)
	}
	if !strings.Contains(upstream.Details, "INVALID_ARGUMENT") {
		t.Errorf("details = %q, want structured detail payload", upstream.Details)
	}
}

func TestGenerateUnparsableReply(t *testing.T) {
	for name, body := range map[string]string{
		"no candidates": `{"candidates":[]}`,
		"no parts":      `{"candidates":[{"content":{"parts":[]}}]}`,
		"empty text":    `{"candidates":[{"content":{"parts":[{"text":""}]}}]}`,
		"not json":      `<html>oops</html>`,
	} {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		})

		if _, err := c.Generate(context.Background(), Request{PromptText: "hi"}); !errors.Is(err, ErrUnparsableReply) {
			t.Errorf("%s: error = %v, want ErrUnparsableReply", name, err)
		}
	}
}

func TestGenerateMissingKey(t *testing.T) {
	c := NewClient(http.DefaultClient, "")
	if _, err := c.Generate(context.Background(), Request{PromptText: "hi"}); !errors.Is(err, ErrAPIKeyMissing) {
		t.Fatalf("error = %v, want ErrAPIKeyMissing", err)
	}
}
