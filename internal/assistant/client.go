package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

const (
	// LanguageJapanese and LanguageEnglish are the selectable reply languages.
	// Any other value leaves the system instruction untouched.
	LanguageJapanese = "ja-JP"
	LanguageEnglish  = "en-US"

	japaneseDirective = "\n\nAlways answer ONLY in Japanese (日本語) regardless of input language. Use natural, friendly Japanese."
	englishDirective  = "\n\nAlways answer ONLY in English regardless of input language. Use natural, friendly English."
)

var (
	// ErrAPIKeyMissing is returned when the Gemini key is not configured.
	ErrAPIKeyMissing = errors.New("gemini api key is not configured")

	// ErrUnparsableReply means the upstream returned HTTP success but no
	// usable candidate text. Distinct from an upstream HTTP failure.
	ErrUnparsableReply = errors.New("could not parse response from Gemini API")
)

// UpstreamError is a non-2xx response from the model provider. Status is the
// upstream HTTP status; Message and Details come from the structured error
// body when it parses, or the raw body text when it does not.
type UpstreamError struct {
	Status  int
	Message string
	Details string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("gemini api error: %d - %s", e.Status, e.Message)
}

// Request is one generation call: the composed prompt, the system
// instruction, and the selected reply language.
type Request struct {
	PromptText        string
	SystemInstruction string
	Language          string
}

// Source is a grounding citation returned by the model provider.
type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// Reply is a normalized model response.
type Reply struct {
	Text    string   `json:"text"`
	Sources []Source `json:"sources"`
}

// Client calls the Gemini generateContent endpoint with search grounding
// enabled. It is stateless per request and safe for concurrent use.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewClient creates an assistant client using the shared outbound HTTP client.
func NewClient(client *http.Client, apiKey string) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "gemini",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		apiKey:  apiKey,
		baseURL: "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent",
		client:  client,
		circuit: cb,
	}
}

// generatePayload mirrors the generateContent request shape.
type generatePayload struct {
	Contents          []content  `json:"contents"`
	SystemInstruction *content   `json:"systemInstruction,omitempty"`
	Tools             []toolSpec `json:"tools"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type toolSpec struct {
	GoogleSearch struct{} `json:"googleSearch"`
}

// Generate sends one prompt to the model and normalizes the response.
func (c *Client) Generate(ctx context.Context, req Request) (Reply, error) {
	if c.apiKey == "" {
		return Reply{}, ErrAPIKeyMissing
	}

	instruction := req.SystemInstruction
	switch req.Language {
	case LanguageJapanese:
		instruction += japaneseDirective
	case LanguageEnglish:
		instruction += englishDirective
	}

	payload := generatePayload{
		Contents: []content{{Parts: []part{{Text: req.PromptText}}}},
		SystemInstruction: &content{
			Role:  "system",
			Parts: []part{{Text: instruction}},
		},
		// Search grounding is always on; citations come back as sources.
		Tools: []toolSpec{{}},
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return Reply{}, err
	}

	httpReq, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"?key="+c.apiKey, bytes.NewReader(encoded))
	if err != nil {
		return Reply{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	result, err := c.circuit.Execute(func() (interface{}, error) {
		resp, execErr := c.client.Do(httpReq)
		if execErr != nil {
			return nil, execErr
		}
		defer resp.Body.Close()

		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, readErr
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, parseUpstreamError(resp.StatusCode, body)
		}
		return body, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return Reply{}, fmt.Errorf("model provider unavailable: %w", err)
		}
		return Reply{}, err
	}

	body, ok := result.([]byte)
	if !ok {
		return Reply{}, fmt.Errorf("unexpected result type from circuit breaker")
	}

	return parseReply(body)
}

// parseUpstreamError extracts a human-readable message and detail payload
// from the upstream error body. If the body is not structured JSON, the raw
// text serves as both message and detail.
func parseUpstreamError(status int, body []byte) *UpstreamError {
	var parsed struct {
		Error *struct {
			Message string          `json:"message"`
			Status  string          `json:"status,omitempty"`
			Details json.RawMessage `json:"details,omitempty"`
		} `json:"error"`
	}

	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != nil {
		message := parsed.Error.Message
		if message == "" {
			message = fmt.Sprintf("Gemini API Error: %d", status)
		}
		details := string(body)
		if raw, err := json.Marshal(parsed.Error); err == nil {
			details = string(raw)
		}
		return &UpstreamError{Status: status, Message: message, Details: details}
	}

	raw := string(body)
	return &UpstreamError{Status: status, Message: raw, Details: raw}
}

// parseReply extracts the first candidate's first text part and any grounding
// citations.
func parseReply(body []byte) (Reply, error) {
	var parsed struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
			GroundingMetadata *struct {
				GroundingAttributions []struct {
					Web *struct {
						URI   string `json:"uri"`
						Title string `json:"title"`
					} `json:"web"`
				} `json:"groundingAttributions"`
			} `json:"groundingMetadata"`
		} `json:"candidates"`
	}

	if err := json.Unmarshal(body, &parsed); err != nil {
		return Reply{}, ErrUnparsableReply
	}
	if len(parsed.Candidates) == 0 {
		return Reply{}, ErrUnparsableReply
	}

	candidate := parsed.Candidates[0]
	if len(candidate.Content.Parts) == 0 || candidate.Content.Parts[0].Text == "" {
		return Reply{}, ErrUnparsableReply
	}

	reply := Reply{
		Text:    candidate.Content.Parts[0].Text,
		Sources: []Source{},
	}

	if candidate.GroundingMetadata != nil {
		for _, attr := range candidate.GroundingMetadata.GroundingAttributions {
			src := Source{Title: "External Source"}
			if attr.Web != nil {
				src.URI = attr.Web.URI
				if attr.Web.Title != "" {
					src.Title = attr.Web.Title
				}
			}
			reply.Sources = append(reply.Sources, src)
		}
	}

	return reply, nil
}
