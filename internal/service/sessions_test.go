package service

import (
	"testing"
	"time"
)

func TestSessionsRegistry(t *testing.T) {
	s := NewSessions()
	if s.Len() != 0 {
		t.Fatalf("fresh registry has %d sessions", s.Len())
	}

	sess := &FightSession{RunID: 7}
	s.Put(sess)
	if sess.Token == "" {
		t.Fatalf("Put did not mint a token")
	}
	if s.Len() != 1 || s.Get(7) != sess {
		t.Fatalf("session not retrievable")
	}
	if s.Get(8) != nil {
		t.Fatalf("unknown run returned a session")
	}

	// Zero deadlines never expire.
	if got := s.Expired(time.Now().Add(time.Hour)); len(got) != 0 {
		t.Fatalf("zero-deadline session expired: %d", len(got))
	}
	s.Touch(7, time.Now().Add(-time.Minute))
	if got := s.Expired(time.Now()); len(got) != 1 || got[0] != sess {
		t.Fatalf("expired scan = %d sessions, want the one", len(got))
	}

	s.Remove(7)
	if s.Len() != 0 || s.Get(7) != nil {
		t.Fatalf("session survived Remove")
	}
}
