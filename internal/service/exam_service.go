package service

import (
	"errors"
	"strings"

	"github.com/academy-uk/placement-exam/internal/config"
	"github.com/academy-uk/placement-exam/internal/exam"
	"github.com/academy-uk/placement-exam/internal/grading"
	"github.com/academy-uk/placement-exam/internal/model"
	"github.com/academy-uk/placement-exam/internal/report"
	"github.com/academy-uk/placement-exam/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Service-level errors surfaced to handlers.
var (
	ErrConfirmationRequired = errors.New("submission requires confirmation")
	ErrResultNotReady       = errors.New("result not available before submission")
)

// ReportSink accepts graded report jobs for asynchronous delivery.
// Enqueue must never block; it returns false when the job was not accepted.
type ReportSink interface {
	Enqueue(job report.Job) bool
}

// ExamService orchestrates the exam lifecycle: start, autosave, submit
// (manual and timer-driven), state snapshots and result retrieval.
type ExamService struct {
	cfg     *config.Config
	store   *repository.SessionStore
	reports ReportSink
	key     exam.AnswerKey
	log     zerolog.Logger
}

// NewExamService creates an ExamService.
func NewExamService(cfg *config.Config, store *repository.SessionStore, reports ReportSink, log zerolog.Logger) *ExamService {
	return &ExamService{
		cfg:     cfg,
		store:   store,
		reports: reports,
		key:     exam.Key(),
		log:     log.With().Str("component", "exam_service").Logger(),
	}
}

// Paper returns the published exam paper. It never exposes accepted answers.
func (s *ExamService) Paper() model.ExamPaper {
	return exam.Paper(int(s.cfg.ExamDuration.Minutes()))
}

// StartExam creates a session, starts its countdown and stores it.
// The countdown arms an auto-submit callback that fires at zero.
func (s *ExamService) StartExam(req model.StartExamRequest) (*model.ExamSession, error) {
	session := model.NewSession(
		strings.TrimSpace(req.StudentName),
		strings.TrimSpace(req.StudentEmail),
	)

	id := session.ID
	err := session.Begin(s.cfg.ExamDuration, func() {
		s.autoSubmit(id)
	})
	if err != nil {
		return nil, err
	}

	s.store.Put(session)

	s.log.Info().
		Str("session_id", id.String()).
		Str("student_name", session.StudentName).
		Dur("duration", s.cfg.ExamDuration).
		Msg("Exam started")

	return session, nil
}

// Session looks up a session by id.
func (s *ExamService) Session(id uuid.UUID) (*model.ExamSession, error) {
	return s.store.Get(id)
}

// SaveAnswers merges a partial answer update into an in-progress session.
func (s *ExamService) SaveAnswers(id uuid.UUID, req model.SaveAnswersRequest) (model.SessionState, error) {
	session, err := s.store.Get(id)
	if err != nil {
		return model.SessionState{}, err
	}

	if err := session.SaveAnswers(req.Apply); err != nil {
		return model.SessionState{}, err
	}
	return session.State(), nil
}

// Submit finalizes an in-progress session on the candidate's request.
// Confirm must be set unless the session is already submitted, in which
// case the call is an idempotent no-op returning the original result.
func (s *ExamService) Submit(id uuid.UUID, req model.SubmitExamRequest) (*model.GradedResult, error) {
	session, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	if !req.Confirm {
		// A repeated submit after the fact stays idempotent even without
		// the confirmation flag.
		if session.Phase() == model.PhaseSubmitted {
			return session.Result(), nil
		}
		return nil, ErrConfirmationRequired
	}

	result, accepted, err := session.Submit(req.Answers.Apply, false, s.grade)
	if err != nil {
		return nil, err
	}

	if accepted {
		s.log.Info().
			Str("session_id", id.String()).
			Int("score", result.Score).
			Str("band", result.Band).
			Msg("Exam submitted")
		s.dispatchReport(session, result)
	}
	return result, nil
}

// autoSubmit is the countdown expiry callback. It grades whatever answers
// were collected so far. A concurrent manual submit wins harmlessly: the
// session's Submit is idempotent and only one caller observes accepted=true.
func (s *ExamService) autoSubmit(id uuid.UUID) {
	session, err := s.store.Get(id)
	if err != nil {
		s.log.Warn().Str("session_id", id.String()).Msg("Expiry fired for unknown session")
		return
	}

	result, accepted, err := session.Submit(nil, true, s.grade)
	if err != nil {
		s.log.Error().Err(err).Str("session_id", id.String()).Msg("Auto-submit failed")
		return
	}
	if !accepted {
		return
	}

	s.log.Info().
		Str("session_id", id.String()).
		Int("score", result.Score).
		Str("band", result.Band).
		Msg("Exam auto-submitted at time expiry")
	s.dispatchReport(session, result)
}

// SubmitOverdue force-submits a session whose deadline passed without the
// countdown firing. Used by the janitor as a safety net; harmless when the
// session is already submitted.
func (s *ExamService) SubmitOverdue(id uuid.UUID) {
	s.autoSubmit(id)
}

// State returns the timer/phase snapshot for a session.
func (s *ExamService) State(id uuid.UUID) (model.SessionState, error) {
	session, err := s.store.Get(id)
	if err != nil {
		return model.SessionState{}, err
	}
	return session.State(), nil
}

// Result returns the graded result for a submitted session.
func (s *ExamService) Result(id uuid.UUID) (*model.GradedResult, error) {
	session, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	result := session.Result()
	if result == nil {
		return nil, ErrResultNotReady
	}
	return result, nil
}

func (s *ExamService) grade(sheet model.AnswerSheet) *model.GradedResult {
	return grading.Grade(sheet, s.key)
}

// dispatchReport hands the graded session to the report worker. Delivery is
// fire-and-forget: a full queue is logged, never surfaced to the candidate.
func (s *ExamService) dispatchReport(session *model.ExamSession, result *model.GradedResult) {
	submittedAt := session.SubmittedAt()
	if submittedAt == nil {
		return
	}

	job := report.Job{
		Recipient:     s.cfg.ReportRecipient,
		StudentName:   session.StudentName,
		StudentEmail:  session.StudentEmail,
		SubmittedAt:   *submittedAt,
		AutoSubmitted: session.AutoSubmitted(),
		Answers:       session.Sheet(),
		Result:        result,
	}

	if !s.reports.Enqueue(job) {
		s.log.Error().
			Str("session_id", session.ID.String()).
			Msg("Report queue full, dropping report job")
	}
}
