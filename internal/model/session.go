package model

import (
	"errors"
	"sync"
	"time"

	"github.com/academy-uk/placement-exam/internal/countdown"
	"github.com/google/uuid"
)

// ExamPhase enumerates exam session states. Submitted is terminal.
type ExamPhase string

const (
	PhaseNotStarted ExamPhase = "NOT_STARTED"
	PhaseInProgress ExamPhase = "IN_PROGRESS"
	PhaseSubmitted  ExamPhase = "SUBMITTED"
)

// Session state machine errors.
var (
	ErrAlreadyStarted   = errors.New("exam already started")
	ErrNotStarted       = errors.New("exam not started")
	ErrAlreadySubmitted = errors.New("exam already submitted")
)

// Grader computes a result from the final answer sheet. Must be pure.
type Grader func(AnswerSheet) *GradedResult

// ExamSession owns one candidate's exam attempt: phase, countdown, answers
// and (after submission) the immutable graded result. All mutation goes
// through its methods, which enforce the NotStarted → InProgress → Submitted
// transitions under the session lock.
type ExamSession struct {
	mu sync.Mutex

	ID           uuid.UUID
	StudentName  string
	StudentEmail string

	phase         ExamPhase
	startedAt     time.Time
	submittedAt   *time.Time
	autoSubmitted bool

	countdown *countdown.Countdown
	sheet     AnswerSheet
	result    *GradedResult
}

// NewSession creates a session in the NotStarted phase.
func NewSession(name, email string) *ExamSession {
	return &ExamSession{
		ID:           uuid.New(),
		StudentName:  name,
		StudentEmail: email,
		phase:        PhaseNotStarted,
		sheet:        NewAnswerSheet(),
	}
}

// Begin transitions NotStarted → InProgress and arms the countdown.
// onExpire runs exactly once if the countdown reaches zero before Submit.
func (s *ExamSession) Begin(duration time.Duration, onExpire func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseNotStarted {
		return ErrAlreadyStarted
	}

	s.countdown = countdown.New(duration, onExpire)
	if err := s.countdown.Start(); err != nil {
		return err
	}
	s.phase = PhaseInProgress
	s.startedAt = time.Now()
	return nil
}

// SaveAnswers merges a partial answer sheet while the exam is in progress.
func (s *ExamSession) SaveAnswers(apply func(*AnswerSheet)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.phase {
	case PhaseNotStarted:
		return ErrNotStarted
	case PhaseSubmitted:
		return ErrAlreadySubmitted
	}
	apply(&s.sheet)
	return nil
}

// Submit finalizes the session: merges the final answers, stops the
// countdown, grades, and transitions to Submitted. A second call is a no-op
// returning the original result with accepted=false. Submit on a NotStarted
// session is rejected.
func (s *ExamSession) Submit(final func(*AnswerSheet), auto bool, grade Grader) (result *GradedResult, accepted bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.phase {
	case PhaseNotStarted:
		return nil, false, ErrNotStarted
	case PhaseSubmitted:
		return s.result, false, nil
	}

	if final != nil {
		final(&s.sheet)
	}

	// Stop before grading so a racing expiry callback observes the stopped
	// countdown and the Submitted phase, never a second grading pass.
	s.countdown.Stop()

	s.result = grade(s.sheet)
	now := time.Now()
	s.submittedAt = &now
	s.autoSubmitted = auto
	s.phase = PhaseSubmitted
	return s.result, true, nil
}

// Phase returns the current phase.
func (s *ExamSession) Phase() ExamPhase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Result returns the graded result, or nil before submission.
func (s *ExamSession) Result() *GradedResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Sheet returns a deep copy of the current answer sheet.
func (s *ExamSession) Sheet() AnswerSheet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sheet.Clone()
}

// SubmittedAt returns the submission time, or nil before submission.
func (s *ExamSession) SubmittedAt() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submittedAt
}

// AutoSubmitted reports whether the countdown, not the candidate, submitted.
func (s *ExamSession) AutoSubmitted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.autoSubmitted
}

// StartedAt returns the InProgress transition time (zero before Begin).
func (s *ExamSession) StartedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startedAt
}

// Deadline returns the countdown deadline (zero before Begin).
func (s *ExamSession) Deadline() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.countdown == nil {
		return time.Time{}
	}
	return s.countdown.Deadline()
}

// Clock exposes the countdown for read-only display queries. Nil before
// Begin.
func (s *ExamSession) Clock() *countdown.Countdown {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countdown
}

// SessionState is the timer/phase snapshot returned to the client.
type SessionState struct {
	SessionID        uuid.UUID          `json:"session_id"`
	Phase            ExamPhase          `json:"phase"`
	RemainingSeconds int                `json:"remaining_seconds"`
	Display          string             `json:"display"`
	Severity         countdown.Severity `json:"severity"`
}

// State snapshots the session for the state endpoint and the timer stream.
func (s *ExamSession) State() SessionState {
	s.mu.Lock()
	phase := s.phase
	clock := s.countdown
	id := s.ID
	s.mu.Unlock()

	state := SessionState{
		SessionID: id,
		Phase:     phase,
		Display:   "00:00",
		Severity:  countdown.SeverityDanger,
	}
	if clock != nil && phase == PhaseInProgress {
		state.RemainingSeconds = clock.Remaining()
		state.Display = clock.Display()
		state.Severity = clock.SeverityLevel()
	}
	return state
}
