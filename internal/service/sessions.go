package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/LachyC123/bloodline-arena-sub002/internal/arbiter"
	"github.com/LachyC123/bloodline-arena-sub002/internal/rng"
)

// FightSession is one live fight. It exists only in memory; the
// CombatState inside the controller is never persisted, only the
// FightRecord written when the fight ends.
type FightSession struct {
	Token     string
	RunID     uint
	RunCode   string
	FighterID uint

	EnemyKey  string
	EnemyName string
	League    string

	// Seed plus the recorded choices replay the fight bit for bit. The
	// RNG is the fight's own stream; the post-fight injury roll draws
	// from it too.
	Seed int64
	RNG  *rng.RNG

	Controller *arbiter.Controller
	Deadline   time.Time
}

// Sessions is the in-memory registry of live fights keyed by run ID.
type Sessions struct {
	mu sync.Mutex
	m  map[uint]*FightSession
}

func NewSessions() *Sessions {
	return &Sessions{m: make(map[uint]*FightSession)}
}

// Get returns the live session for a run, or nil.
func (s *Sessions) Get(runID uint) *FightSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m[runID]
}

// Put registers a session, replacing any previous one for the run.
func (s *Sessions) Put(sess *FightSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess.Token == "" {
		sess.Token = uuid.NewString()
	}
	s.m[sess.RunID] = sess
}

func (s *Sessions) Remove(runID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, runID)
}

// Touch pushes a session's deadline forward.
func (s *Sessions) Touch(runID uint, deadline time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.m[runID]; ok {
		sess.Deadline = deadline
	}
}

// Expired returns sessions whose deadline passed. The caller resolves
// them one step at a time.
func (s *Sessions) Expired(now time.Time) []*FightSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*FightSession
	for _, sess := range s.m {
		if !sess.Deadline.IsZero() && now.After(sess.Deadline) {
			out = append(out, sess)
		}
	}
	return out
}

// Len reports how many fights are live.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}
