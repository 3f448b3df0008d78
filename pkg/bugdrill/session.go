package bugdrill

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// State is a session's position in the check lifecycle.
type State string

const (
	StateUnchecked State = "unchecked"
	StateChecking  State = "checking"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
)

// ErrCheckInFlight is returned by Check when the session already has an
// outstanding check. At most one check may be in flight per session.
var ErrCheckInFlight = errors.New("a check is already in flight for this session")

// DefaultCheckDelay is the artificial latency applied to every check. The
// underlying analysis is synchronous and fast; the delay exists purely so the
// experience resembles a compile/run cycle.
const DefaultCheckDelay = 600 * time.Millisecond

// PromptMessage is shown before the first check and again after a reset.
const PromptMessage = "Find and fix the bug, then press Check to test your fix."

// Session is one learner's attempt at an exercise. It owns the editable
// snippet, invokes the engine, and tracks modification and success state.
// Sessions are independent: no mutable state crosses session boundaries.
//
// All methods are safe for concurrent use. Edit and Reset issued while a
// check is in flight are deferred and applied right after the in-flight
// result commits, so a stale result can never overwrite a newer edit and
// deferred edits are picked up by the next check rather than dropped.
type Session struct {
	id       string
	language Language
	engine   *Engine

	delay time.Duration

	mu       sync.Mutex
	original string
	current  string
	modified bool
	state    State
	// lastResult is nil until the first check commits; nil means the
	// pending/prompt state.
	lastResult *AnalysisResult
	// initialDefects feeds the marker projector only. The presentation-time
	// analysis is not a user check and never populates lastResult.
	initialDefects []Defect
	checking       bool
	deferred       []func()
}

// SessionOption configures a session at presentation time.
type SessionOption func(*Session)

// WithLanguage pins the session language instead of detecting it.
func WithLanguage(lang Language) SessionOption {
	return func(s *Session) { s.language = lang }
}

// WithCheckDelay overrides the artificial check latency. Tests use a zero or
// near-zero delay.
func WithCheckDelay(d time.Duration) SessionOption {
	return func(s *Session) { s.delay = d }
}

// NewSession presents a snippet as a fresh session. Unless pinned with
// WithLanguage, the language is detected once from the presented snippet and
// fixed for the session's lifetime. One analysis pass runs immediately to
// compute the advisory markers for first render; it does not count as a user
// check.
func NewSession(engine *Engine, snippet string, opts ...SessionOption) *Session {
	s := &Session{
		id:       uuid.NewString(),
		engine:   engine,
		delay:    DefaultCheckDelay,
		original: snippet,
		current:  snippet,
		state:    StateUnchecked,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.language == "" {
		s.language = Detect(snippet)
	}

	initial := engine.Analyze(snippet, s.language)
	s.initialDefects = initial.Defects
	engine.Stats().RecordSession()

	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Language returns the language fixed at presentation time.
func (s *Session) Language() Language { return s.language }

// Original returns the snippet as presented.
func (s *Session) Original() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.original
}

// Current returns the learner's current snippet text.
func (s *Session) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Modified reports whether the current snippet differs from the original.
func (s *Session) Modified() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modified
}

// State returns the session's lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checking {
		return StateChecking
	}
	return s.state
}

// LastResult returns the most recent check result. ok is false while the
// session is in the pending/prompt state (before the first check and after a
// reset).
func (s *Session) LastResult() (AnalysisResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastResult == nil {
		return AnalysisResult{}, false
	}
	return *s.lastResult, true
}

// InitialAnnotations projects the presentation-time defects into editor
// annotations. Post-edit defects are surfaced through the result panel, not
// as persistent inline markers.
func (s *Session) InitialAnnotations() []Annotation {
	return ProjectMarkers(s.initialDefects)
}

// Edit replaces the current snippet and recomputes the modified flag.
// It never runs analysis: checking only happens on an explicit Check.
// Editing does not revert a succeeded or failed state.
func (s *Session) Edit(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checking {
		s.deferred = append(s.deferred, func() { s.applyEdit(text) })
		return
	}
	s.applyEdit(text)
}

// applyEdit must be called with s.mu held.
func (s *Session) applyEdit(text string) {
	s.current = text
	s.modified = text != s.original
}

// Reset restores the session to its initial state: original snippet,
// unmodified, unchecked, prompt message. It does not re-run analysis.
//
// The returned channel closes once the reset has applied. With no check in
// flight that is before Reset returns; during a check the reset is deferred
// until the result commits, and callers holding collaborators (an editor
// showing the pre-reset text) must wait for the close before re-reading
// session state.
func (s *Session) Reset() <-chan struct{} {
	applied := make(chan struct{})
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checking {
		s.deferred = append(s.deferred, func() {
			s.applyReset()
			close(applied)
		})
		return applied
	}
	s.applyReset()
	close(applied)
	return applied
}

// applyReset must be called with s.mu held.
func (s *Session) applyReset() {
	s.current = s.original
	s.modified = false
	s.state = StateUnchecked
	s.lastResult = nil
}

// Check analyzes the current snippet after the configured artificial delay
// and commits the result as the session's last result. It returns a channel
// that delivers the committed result exactly once. If a check is already in
// flight, ErrCheckInFlight is returned and no new check starts.
//
// There is no cancellation: a started check always completes and commits.
func (s *Session) Check() (<-chan AnalysisResult, error) {
	s.mu.Lock()
	if s.checking {
		s.mu.Unlock()
		return nil, ErrCheckInFlight
	}
	s.checking = true
	snapshot := s.current
	s.mu.Unlock()

	done := make(chan AnalysisResult, 1)
	started := time.Now()

	go func() {
		time.Sleep(s.delay)
		result := s.engine.Analyze(snapshot, s.language)

		s.mu.Lock()
		s.lastResult = &result
		if result.HasDefects {
			s.state = StateFailed
		} else {
			s.state = StateSucceeded
		}
		s.checking = false
		pending := s.deferred
		s.deferred = nil
		for _, apply := range pending {
			apply()
		}
		s.mu.Unlock()

		s.engine.Stats().RecordCheck(!result.HasDefects, time.Since(started))

		done <- result
		close(done)
	}()

	return done, nil
}
