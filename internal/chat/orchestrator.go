package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mayankagarwal1234/Weather-chat-assistance/internal/assistant"
	"github.com/mayankagarwal1234/Weather-chat-assistance/internal/voice"
	"github.com/mayankagarwal1234/Weather-chat-assistance/internal/weather"
)

// contextWindow is how many trailing transcript entries feed the prompt.
const contextWindow = 5

// japaneseFormatInstruction requests dual Japanese-then-English output.
const japaneseFormatInstruction = "\n\nIMPORTANT: Please provide the response in two parts. First, write the complete response in Japanese. Then, immediately follow it with the full English translation enclosed in parentheses. \nFormat:\n[Japanese Text]\n([English Translation])"

// ErrTurnInFlight is returned when a turn is submitted while another one for
// the same session has not reached a terminal state yet.
var ErrTurnInFlight = errors.New("a turn is already in progress for this session")

// ValidationError rejects a turn before any network call. It is reported
// inline to the user and appends nothing to the transcript.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// WeatherService fetches current weather for a city.
type WeatherService interface {
	Current(ctx context.Context, city string) (weather.Record, error)
}

// Assistant produces a model reply for a composed prompt.
type Assistant interface {
	Generate(ctx context.Context, req assistant.Request) (assistant.Reply, error)
}

// Resolver maps free-form text to a canonical city name.
type Resolver func(text string) (string, bool)

// TurnInput is one submitted user turn. Source records whether the text was
// typed or transcribed from voice; both paths run the same pipeline.
type TurnInput struct {
	Content string
	Source  string // "text" (default) or "voice"
}

// TurnResult reports what a completed turn appended to the transcript.
type TurnResult struct {
	// Appended holds the entries added this turn: the user message plus
	// either the assistant reply or a system error entry.
	Appended []Message
	// Failed is true when the turn ended with a system error entry.
	Failed bool
	// City is the session city the turn resolved to.
	City string
}

// Orchestrator runs one turn at a time per session: validate, resolve the
// city, fetch weather (one fallback with the previous city), build the
// prompt, call the assistant, append the outcome.
type Orchestrator struct {
	weather   WeatherService
	assistant Assistant
	resolve   Resolver
}

// NewOrchestrator wires the turn pipeline.
func NewOrchestrator(ws WeatherService, as Assistant, resolve Resolver) *Orchestrator {
	return &Orchestrator{
		weather:   ws,
		assistant: as,
		resolve:   resolve,
	}
}

// HandleTurn processes one submitted turn for the session. Validation
// failures and a concurrent in-flight turn come back as errors with nothing
// appended; runtime failures land in the transcript as a system entry and the
// returned result has Failed set.
func (o *Orchestrator) HandleTurn(ctx context.Context, sess *Session, input TurnInput) (TurnResult, error) {
	trimmed := strings.TrimSpace(input.Content)
	if trimmed == "" {
		return TurnResult{}, &ValidationError{Reason: "Please enter a message."}
	}

	sess.mu.Lock()
	if sess.inFlight {
		sess.mu.Unlock()
		return TurnResult{}, ErrTurnInFlight
	}

	// City override happens only on a confident, different match; ambiguous
	// input leaves a manually set city alone.
	prevCity := sess.city
	detected, matched := o.resolve(input.Content)
	if matched && detected != sess.city {
		sess.city = detected
	}

	cityForFetch := detected
	if cityForFetch == "" {
		cityForFetch = sess.city
	}
	cityForFetch = strings.TrimSpace(cityForFetch)

	if !matched && len([]rune(cityForFetch)) < 2 {
		sess.mu.Unlock()
		return TurnResult{}, &ValidationError{Reason: "Please provide a valid city."}
	}

	// Snapshot the context window before the user entry joins the transcript.
	conversationContext := buildConversationContext(sess.messages)
	language := sess.language

	userMsg := sess.newMessage(RoleUser, trimmed)
	sess.messages = append(sess.messages, userMsg)
	sess.inFlight = true
	sess.lastActive = time.Now().UTC()
	sess.mu.Unlock()

	rec, err := o.weather.Current(ctx, cityForFetch)
	if err != nil {
		// One fallback with the previously stored city, recovering from a
		// just-introduced bad override. Best effort only: it helps when the
		// previous value was itself valid.
		log.Printf("weather fetch failed for %q, retrying with previous city %q: %v", cityForFetch, prevCity, err)
		rec, err = o.weather.Current(ctx, prevCity)
		if err != nil {
			return o.failTurn(sess, userMsg, cityForFetch, err), nil
		}
	}

	instruction := ""
	if language == assistant.LanguageJapanese {
		instruction = japaneseFormatInstruction
	}

	enhancedQuery := trimmed + instruction
	if conversationContext != "" {
		enhancedQuery = fmt.Sprintf("Previous conversation:\n%s\n\nCurrent question: %s%s",
			conversationContext, trimmed, instruction)
	}

	reply, err := o.assistant.Generate(ctx, assistant.Request{
		PromptText:        assistant.BuildWeatherPrompt(rec, enhancedQuery),
		SystemInstruction: assistant.SystemPrompt,
		Language:          language,
	})
	if err != nil {
		return o.failTurn(sess, userMsg, cityForFetch, err), nil
	}

	sess.mu.Lock()
	assistantMsg := sess.newMessage(RoleAssistant, reply.Text)
	assistantMsg.Weather = &rec
	assistantMsg.Sources = reply.Sources
	sess.messages = append(sess.messages, assistantMsg)
	sess.inFlight = false
	sess.lastActive = time.Now().UTC()
	sess.mu.Unlock()

	return TurnResult{
		Appended: []Message{userMsg, assistantMsg},
		City:     cityForFetch,
	}, nil
}

// failTurn converts a runtime failure into a system transcript entry and
// clears the in-flight flag so the next turn may start.
func (o *Orchestrator) failTurn(sess *Session, userMsg Message, city string, cause error) TurnResult {
	log.Printf("turn failed for city %q: %v", city, cause)

	sess.mu.Lock()
	sysMsg := sess.newMessage(RoleSystem, "❌ Error: "+cause.Error())
	sess.messages = append(sess.messages, sysMsg)
	sess.inFlight = false
	sess.lastActive = time.Now().UTC()
	sess.mu.Unlock()

	return TurnResult{
		Appended: []Message{userMsg, sysMsg},
		Failed:   true,
		City:     city,
	}
}

// buildConversationContext renders the trailing transcript entries as
// "Role: content" lines, skipping system entries. Caller must hold the
// session lock.
func buildConversationContext(messages []Message) string {
	start := len(messages) - contextWindow
	if start < 0 {
		start = 0
	}

	var lines []string
	for _, msg := range messages[start:] {
		if msg.Role == RoleSystem {
			continue
		}
		label := "Assistant"
		if msg.Role == RoleUser {
			label = "User"
		}
		lines = append(lines, label+": "+msg.Content)
	}
	return strings.Join(lines, "\n")
}

// ConsumeTranscripts feeds voice-capture events into the turn pipeline until
// the channel closes or the context ends. Recognized utterances are submitted
// automatically; capture errors are logged and do not touch the transcript.
func (o *Orchestrator) ConsumeTranscripts(ctx context.Context, sess *Session, events <-chan voice.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Err != nil {
				log.Printf("voice capture error: %v", ev.Err)
				continue
			}
			if _, err := o.HandleTurn(ctx, sess, TurnInput{Content: ev.Transcript, Source: "voice"}); err != nil {
				log.Printf("voice turn rejected: %v", err)
			}
		}
	}
}
