package chat

import (
	"strconv"
	"sync"
	"time"

	"github.com/mayankagarwal1234/Weather-chat-assistance/internal/assistant"
	"github.com/mayankagarwal1234/Weather-chat-assistance/internal/weather"
)

// Role identifies who produced a transcript entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// WelcomeMessage opens every fresh transcript.
const WelcomeMessage = "お天気ペディ 🔍 気軽に話しかけてください！\n(Weather Buddy 🌟 Feel free to chat with me!)"

// Message is one transcript entry. Immutable once appended.
type Message struct {
	ID        string             `json:"id"`
	Role      Role               `json:"role"`
	Content   string             `json:"content"`
	Timestamp time.Time          `json:"timestamp"`
	Weather   *weather.Record    `json:"weatherData,omitempty"`
	Sources   []assistant.Source `json:"sources,omitempty"`
}

// Session holds one conversation: current city, reply language, and the
// append-only transcript. All access goes through the methods; the embedded
// mutex also backs the single-flight turn gate.
type Session struct {
	ID string

	mu         sync.Mutex
	city       string
	language   string
	inFlight   bool
	messages   []Message
	lastActive time.Time
	lastID     int64
}

// NewSession creates a session seeded with the welcome message.
func NewSession(id, city, language string) *Session {
	s := &Session{
		ID:         id,
		city:       city,
		language:   language,
		lastActive: time.Now().UTC(),
	}
	s.messages = append(s.messages, s.newMessage(RoleSystem, WelcomeMessage))
	return s
}

// newMessage builds a transcript entry with a time-based ID. IDs within a
// session are strictly increasing even when two entries land on the same
// millisecond. Caller must hold mu (or own the session exclusively).
func (s *Session) newMessage(role Role, content string) Message {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id

	return Message{
		ID:        strconv.FormatInt(id, 10),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

// City returns the session's current city.
func (s *Session) City() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.city
}

// SetCity overwrites the session city (user-editable field).
func (s *Session) SetCity(city string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.city = city
	s.lastActive = time.Now().UTC()
}

// Language returns the session's reply language.
func (s *Session) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

// SetLanguage overwrites the reply language selector.
func (s *Session) SetLanguage(language string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.language = language
	s.lastActive = time.Now().UTC()
}

// Messages returns a copy of the transcript.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Clear resets the transcript to the single welcome message.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = []Message{s.newMessage(RoleSystem, WelcomeMessage)}
	s.lastActive = time.Now().UTC()
}

// LastActive reports when the session last saw a mutation. Used by the
// retention sweeper.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}
