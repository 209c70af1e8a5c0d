package voice

import (
	"context"
	"errors"
	"sync"
)

// ErrNoSpeech is the one recognizer failure that is not worth surfacing:
// the user simply said nothing before the recognizer gave up.
var ErrNoSpeech = errors.New("no speech detected")

// Event is emitted by a capture session: either a recognized transcript or a
// capture error. Errors never carry a transcript.
type Event struct {
	Transcript string
	Err        error
}

// Recognizer abstracts an on-device speech-to-text capability. Listen blocks
// until one utterance is recognized, the capability fails, or ctx ends.
type Recognizer interface {
	Listen(ctx context.Context, language string) (string, error)
}

// Capture wraps a Recognizer as an event source with start/stop controls.
// One utterance per Start, mirroring a non-continuous recognizer. Calling
// Start while listening stops the current attempt instead.
type Capture struct {
	rec      Recognizer
	language string
	events   chan Event

	mu        sync.Mutex
	listening bool
	cancel    context.CancelFunc
}

// NewCapture creates a capture for the given recognizer and language tag.
func NewCapture(rec Recognizer, language string) *Capture {
	return &Capture{
		rec:      rec,
		language: language,
		events:   make(chan Event, 1),
	}
}

// Events is the stream of transcripts and errors from this capture.
func (c *Capture) Events() <-chan Event {
	return c.events
}

// Listening reports whether a recognition attempt is currently running.
func (c *Capture) Listening() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listening
}

// Start begins listening for a single utterance. If already listening, the
// running attempt is stopped instead, matching a push-to-talk toggle.
func (c *Capture) Start(ctx context.Context) {
	c.mu.Lock()
	if c.listening {
		cancel := c.cancel
		c.mu.Unlock()
		cancel()
		return
	}

	listenCtx, cancel := context.WithCancel(ctx)
	c.listening = true
	c.cancel = cancel
	c.mu.Unlock()

	go func() {
		defer func() {
			cancel()
			c.mu.Lock()
			c.listening = false
			c.cancel = nil
			c.mu.Unlock()
		}()

		transcript, err := c.rec.Listen(listenCtx, c.language)
		if err != nil {
			// A silent mic ends the attempt without an error banner.
			if errors.Is(err, ErrNoSpeech) || errors.Is(err, context.Canceled) {
				return
			}
			c.emit(Event{Err: err})
			return
		}
		if transcript != "" {
			c.emit(Event{Transcript: transcript})
		}
	}()
}

// Stop cancels a running recognition attempt, if any.
func (c *Capture) Stop() {
	c.mu.Lock()
	cancel := c.cancel
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (c *Capture) emit(ev Event) {
	select {
	case c.events <- ev:
	default:
		// Drop when the consumer lags; voice events are advisory.
	}
}
