package store

import (
	"errors"
	"testing"
	"time"

	"github.com/mayankagarwal1234/Weather-chat-assistance/internal/chat"
)

func TestPutGetDelete(t *testing.T) {
	s := NewSessionStore(time.Hour)

	sess := chat.NewSession("abc", "Tokyo", "ja-JP")
	s.Put(sess)

	got, err := s.Get("abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != sess {
		t.Error("Get returned a different session")
	}

	if _, err := s.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}

	s.Delete("abc")
	if _, err := s.Get("abc"); !errors.Is(err, ErrNotFound) {
		t.Errorf("error after delete = %v, want ErrNotFound", err)
	}
}

func TestPruneRemovesIdleSessions(t *testing.T) {
	s := NewSessionStore(time.Nanosecond)

	s.Put(chat.NewSession("old", "Tokyo", "ja-JP"))
	time.Sleep(5 * time.Millisecond)

	if removed := s.Prune(); removed != 1 {
		t.Fatalf("Prune removed %d, want 1", removed)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
}

func TestPruneUnlimitedRetention(t *testing.T) {
	s := NewSessionStore(0)

	s.Put(chat.NewSession("keep", "Tokyo", "ja-JP"))
	time.Sleep(time.Millisecond)

	if removed := s.Prune(); removed != 0 {
		t.Fatalf("Prune removed %d, want 0 with unlimited retention", removed)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}
