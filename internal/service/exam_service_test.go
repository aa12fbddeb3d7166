package service

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/academy-uk/placement-exam/internal/config"
	"github.com/academy-uk/placement-exam/internal/model"
	"github.com/academy-uk/placement-exam/internal/report"
	"github.com/academy-uk/placement-exam/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// fakeSink records enqueued report jobs.
type fakeSink struct {
	mu   sync.Mutex
	jobs []report.Job
	full bool
}

func (f *fakeSink) Enqueue(job report.Job) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.full {
		return false
	}
	f.jobs = append(f.jobs, job)
	return true
}

func (f *fakeSink) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.jobs)
}

func (f *fakeSink) last() report.Job {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.jobs[len(f.jobs)-1]
}

func testExamService(duration time.Duration) (*ExamService, *fakeSink) {
	cfg := &config.Config{
		ExamDuration:    duration,
		ReportRecipient: "info@academy-uk.net",
	}
	sink := &fakeSink{}
	svc := NewExamService(cfg, repository.NewSessionStore(), sink, zerolog.Nop())
	return svc, sink
}

func startSession(t *testing.T, svc *ExamService) *model.ExamSession {
	t.Helper()
	session, err := svc.StartExam(model.StartExamRequest{
		StudentName:  "Test Student",
		StudentEmail: "student@example.com",
	})
	if err != nil {
		t.Fatalf("StartExam: %v", err)
	}
	return session
}

func strptr(s string) *string { return &s }

func TestStartExamTrimsIdentity(t *testing.T) {
	svc, _ := testExamService(time.Hour)

	session, err := svc.StartExam(model.StartExamRequest{
		StudentName:  "  Test Student  ",
		StudentEmail: " student@example.com ",
	})
	if err != nil {
		t.Fatalf("StartExam: %v", err)
	}
	if session.StudentName != "Test Student" {
		t.Fatalf("StudentName = %q", session.StudentName)
	}
	if session.StudentEmail != "student@example.com" {
		t.Fatalf("StudentEmail = %q", session.StudentEmail)
	}
	if session.Phase() != model.PhaseInProgress {
		t.Fatalf("phase = %s, want %s", session.Phase(), model.PhaseInProgress)
	}
}

func TestPaperNeverExposesAcceptedAnswers(t *testing.T) {
	svc, _ := testExamService(time.Hour)

	paper := svc.Paper()
	if len(paper.Sections) != 4 {
		t.Fatalf("sections = %d, want 4", len(paper.Sections))
	}

	for _, section := range paper.Sections {
		for _, q := range section.Questions {
			for _, leak := range []string{"miller", "0770918452", "toothache"} {
				if strings.Contains(strings.ToLower(q.Text), leak) {
					t.Fatalf("question %s text leaks %q", q.ID, leak)
				}
			}
		}
	}
}

func TestSaveAnswersAndState(t *testing.T) {
	svc, _ := testExamService(time.Hour)
	session := startSession(t, svc)

	state, err := svc.SaveAnswers(session.ID, model.SaveAnswersRequest{
		Listening:   map[string]string{"q1": "Miller"},
		WritingText: strptr("draft"),
	})
	if err != nil {
		t.Fatalf("SaveAnswers: %v", err)
	}
	if state.Phase != model.PhaseInProgress {
		t.Fatalf("phase = %s, want %s", state.Phase, model.PhaseInProgress)
	}

	sheet := session.Sheet()
	if sheet.Listening["q1"] != "Miller" {
		t.Fatalf("q1 = %q, want raw value preserved", sheet.Listening["q1"])
	}
	if sheet.WritingText != "draft" {
		t.Fatalf("writing = %q", sheet.WritingText)
	}

	if _, err := svc.SaveAnswers(uuid.New(), model.SaveAnswersRequest{}); !errors.Is(err, repository.ErrSessionNotFound) {
		t.Fatalf("SaveAnswers unknown session: err = %v", err)
	}
}

func TestSubmitRequiresConfirmation(t *testing.T) {
	svc, sink := testExamService(time.Hour)
	session := startSession(t, svc)

	if _, err := svc.Submit(session.ID, model.SubmitExamRequest{Confirm: false}); !errors.Is(err, ErrConfirmationRequired) {
		t.Fatalf("unconfirmed submit: err = %v, want ErrConfirmationRequired", err)
	}
	if session.Phase() != model.PhaseInProgress {
		t.Fatal("unconfirmed submit changed the session phase")
	}
	if sink.count() != 0 {
		t.Fatal("unconfirmed submit dispatched a report")
	}
}

func TestSubmitGradesAndDispatchesOnce(t *testing.T) {
	svc, sink := testExamService(time.Hour)
	session := startSession(t, svc)

	first, err := svc.Submit(session.ID, model.SubmitExamRequest{
		Confirm: true,
		Answers: model.SaveAnswersRequest{
			Listening: map[string]string{"q1": " MILLER ", "q4": "wednesday"},
			Reading:   map[string]string{"r1": "B"},
		},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if first.Score != 3 {
		t.Fatalf("score = %d, want 3", first.Score)
	}
	if first.Total != 15 {
		t.Fatalf("total = %d, want 15", first.Total)
	}

	// A duplicate submit is a no-op returning the original result, with or
	// without the confirmation flag, and never re-dispatches the report.
	second, err := svc.Submit(session.ID, model.SubmitExamRequest{Confirm: true})
	if err != nil {
		t.Fatalf("duplicate Submit: %v", err)
	}
	if second != first {
		t.Fatal("duplicate Submit returned a different result")
	}

	third, err := svc.Submit(session.ID, model.SubmitExamRequest{Confirm: false})
	if err != nil {
		t.Fatalf("duplicate unconfirmed Submit: %v", err)
	}
	if third != first {
		t.Fatal("duplicate unconfirmed Submit returned a different result")
	}

	if sink.count() != 1 {
		t.Fatalf("reports dispatched = %d, want 1", sink.count())
	}

	job := sink.last()
	if job.Recipient != "info@academy-uk.net" {
		t.Fatalf("recipient = %q", job.Recipient)
	}
	if job.AutoSubmitted {
		t.Fatal("manual submit marked auto-submitted")
	}
	if job.Result.Score != 3 {
		t.Fatalf("job score = %d, want 3", job.Result.Score)
	}
}

func TestResultBeforeSubmit(t *testing.T) {
	svc, _ := testExamService(time.Hour)
	session := startSession(t, svc)

	if _, err := svc.Result(session.ID); !errors.Is(err, ErrResultNotReady) {
		t.Fatalf("Result before submit: err = %v, want ErrResultNotReady", err)
	}

	if _, err := svc.Submit(session.ID, model.SubmitExamRequest{Confirm: true}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	result, err := svc.Result(session.ID)
	if err != nil {
		t.Fatalf("Result after submit: %v", err)
	}
	if result.Band == "" {
		t.Fatal("result has no band")
	}
}

func TestCountdownExpiryAutoSubmits(t *testing.T) {
	svc, sink := testExamService(30 * time.Millisecond)
	session := startSession(t, svc)

	if _, err := svc.SaveAnswers(session.ID, model.SaveAnswersRequest{
		Listening: map[string]string{"q1": "miller"},
	}); err != nil {
		t.Fatalf("SaveAnswers: %v", err)
	}

	deadline := time.Now().Add(time.Second)
	for session.Phase() != model.PhaseSubmitted {
		if time.Now().After(deadline) {
			t.Fatal("session never auto-submitted")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if !session.AutoSubmitted() {
		t.Fatal("AutoSubmitted = false after expiry")
	}

	result, err := svc.Result(session.ID)
	if err != nil {
		t.Fatalf("Result: %v", err)
	}
	if result.Score != 1 {
		t.Fatalf("score = %d, want 1 (answers saved before expiry)", result.Score)
	}

	// Give the expiry goroutine a moment to enqueue.
	time.Sleep(20 * time.Millisecond)
	if sink.count() != 1 {
		t.Fatalf("reports dispatched = %d, want 1", sink.count())
	}
	if !sink.last().AutoSubmitted {
		t.Fatal("report not marked auto-submitted")
	}
}

func TestFullQueueDropsReportSilently(t *testing.T) {
	svc, sink := testExamService(time.Hour)
	sink.full = true
	session := startSession(t, svc)

	// Delivery is fire-and-forget: a full queue never fails the submit.
	result, err := svc.Submit(session.ID, model.SubmitExamRequest{Confirm: true})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result == nil {
		t.Fatal("Submit returned no result")
	}
}

func TestSubmitOverdueIsIdempotent(t *testing.T) {
	svc, sink := testExamService(time.Hour)
	session := startSession(t, svc)

	if _, err := svc.Submit(session.ID, model.SubmitExamRequest{Confirm: true}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	// The janitor safety net on an already-submitted session changes nothing.
	svc.SubmitOverdue(session.ID)
	svc.SubmitOverdue(uuid.New())

	if session.AutoSubmitted() {
		t.Fatal("SubmitOverdue flipped AutoSubmitted on a submitted session")
	}
	if sink.count() != 1 {
		t.Fatalf("reports dispatched = %d, want 1", sink.count())
	}
}
