package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/academy-uk/placement-exam/internal/config"
	"github.com/academy-uk/placement-exam/internal/handler"
	"github.com/academy-uk/placement-exam/internal/report"
	"github.com/academy-uk/placement-exam/internal/repository"
	"github.com/academy-uk/placement-exam/internal/response"
	"github.com/academy-uk/placement-exam/internal/router"
	"github.com/academy-uk/placement-exam/internal/service"
	"github.com/academy-uk/placement-exam/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

var setupOnce sync.Once

type discardSink struct{}

func (discardSink) Enqueue(report.Job) bool { return true }

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	setupOnce.Do(func() {
		gin.SetMode(gin.TestMode)
		validator.Setup()
	})

	cfg := &config.Config{
		GinMode:         gin.TestMode,
		JWTSecret:       "test-secret",
		ExamDuration:    time.Hour,
		TokenGrace:      2 * time.Hour,
		ReportRecipient: "info@academy-uk.net",
	}

	log := zerolog.Nop()
	store := repository.NewSessionStore()
	tokenService := service.NewTokenService(cfg)
	examService := service.NewExamService(cfg, store, discardSink{}, log)

	handlers := &router.Handlers{
		Exam: handler.NewExamHandler(examService, tokenService, log),
		WS:   handler.NewWSHandler(examService, log, nil),
	}
	return router.SetupRouter(tokenService, handlers, cfg)
}

// envelope mirrors the response wrapper for assertions.
type envelope struct {
	Data  map[string]json.RawMessage `json:"data"`
	Error *struct {
		Code   response.ErrCode  `json:"code"`
		Fields map[string]string `json:"fields"`
	} `json:"error"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return w, env
}

func startExam(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w, env := doJSON(t, r, http.MethodPost, "/api/v1/exam/start", "", gin.H{
		"student_name":  "Test Student",
		"student_email": "student@example.com",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("start: status = %d, body = %s", w.Code, w.Body.String())
	}

	var token string
	if err := json.Unmarshal(env.Data["token"], &token); err != nil || token == "" {
		t.Fatalf("start returned no token: %s", w.Body.String())
	}
	return token
}

func TestStartValidation(t *testing.T) {
	r := testRouter(t)

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing email", gin.H{"student_name": "Test Student"}},
		{"bad email", gin.H{"student_name": "Test Student", "student_email": "not-an-email"}},
		{"empty name", gin.H{"student_name": "", "student_email": "student@example.com"}},
		{"short name", gin.H{"student_name": "A", "student_email": "student@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := doJSON(t, r, http.MethodPost, "/api/v1/exam/start", "", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			if env.Error == nil || env.Error.Code != response.ErrValidation {
				t.Fatalf("error = %+v, want %s", env.Error, response.ErrValidation)
			}
		})
	}
}

func TestSessionEndpointsRequireToken(t *testing.T) {
	r := testRouter(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPut, "/api/v1/exam/answers"},
		{http.MethodGet, "/api/v1/exam/state"},
		{http.MethodPost, "/api/v1/exam/submit"},
		{http.MethodGet, "/api/v1/exam/result"},
	} {
		w, env := doJSON(t, r, tc.method, tc.path, "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: status = %d, want 401", tc.method, tc.path, w.Code)
		}
		if env.Error == nil || env.Error.Code != response.ErrTokenRequired {
			t.Fatalf("%s %s: error = %+v", tc.method, tc.path, env.Error)
		}
	}

	w, env := doJSON(t, r, http.MethodGet, "/api/v1/exam/state", "bogus-token", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bogus token: status = %d, want 401", w.Code)
	}
	if env.Error == nil || env.Error.Code != response.ErrTokenInvalid {
		t.Fatalf("bogus token: error = %+v", env.Error)
	}
}

func TestExamFlow(t *testing.T) {
	r := testRouter(t)
	token := startExam(t, r)

	// Paper is public and has all four sections.
	w, env := doJSON(t, r, http.MethodGet, "/api/v1/exam/paper", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("paper: status = %d", w.Code)
	}
	if _, ok := env.Data["paper"]; !ok {
		t.Fatal("paper response has no paper")
	}

	// Autosave a partial sheet.
	w, _ = doJSON(t, r, http.MethodPut, "/api/v1/exam/answers", token, gin.H{
		"listening": gin.H{"q1": "Miller"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("answers: status = %d, body = %s", w.Code, w.Body.String())
	}

	// State shows the countdown running.
	w, env = doJSON(t, r, http.MethodGet, "/api/v1/exam/state", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("state: status = %d", w.Code)
	}
	var state struct {
		Phase            string `json:"phase"`
		RemainingSeconds int    `json:"remaining_seconds"`
	}
	if err := json.Unmarshal(env.Data["state"], &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if state.Phase != "IN_PROGRESS" {
		t.Fatalf("phase = %s, want IN_PROGRESS", state.Phase)
	}
	if state.RemainingSeconds <= 0 {
		t.Fatalf("remaining = %d, want > 0", state.RemainingSeconds)
	}

	// Result is not available before submission.
	w, env = doJSON(t, r, http.MethodGet, "/api/v1/exam/result", token, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("early result: status = %d, want 409", w.Code)
	}
	if env.Error == nil || env.Error.Code != response.ErrResultNotReady {
		t.Fatalf("early result: error = %+v", env.Error)
	}

	// Submit without confirmation is rejected.
	w, env = doJSON(t, r, http.MethodPost, "/api/v1/exam/submit", token, gin.H{"confirm": false})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unconfirmed submit: status = %d, want 400", w.Code)
	}
	if env.Error == nil || env.Error.Code != response.ErrConfirmationRequired {
		t.Fatalf("unconfirmed submit: error = %+v", env.Error)
	}

	// Confirmed submit grades the exam.
	w, env = doJSON(t, r, http.MethodPost, "/api/v1/exam/submit", token, gin.H{
		"confirm": true,
		"answers": gin.H{"reading": gin.H{"r1": "b"}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("submit: status = %d, body = %s", w.Code, w.Body.String())
	}
	var result struct {
		Score int    `json:"score"`
		Total int    `json:"total"`
		Band  string `json:"band"`
	}
	if err := json.Unmarshal(env.Data["result"], &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.Score != 2 || result.Total != 15 {
		t.Fatalf("score = %d/%d, want 2/15", result.Score, result.Total)
	}

	// Autosave after submission conflicts.
	w, env = doJSON(t, r, http.MethodPut, "/api/v1/exam/answers", token, gin.H{
		"listening": gin.H{"q2": "late"},
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("late answers: status = %d, want 409", w.Code)
	}
	if env.Error == nil || env.Error.Code != response.ErrExamAlreadySubmitted {
		t.Fatalf("late answers: error = %+v", env.Error)
	}

	// A duplicate submit returns the same result.
	w, env = doJSON(t, r, http.MethodPost, "/api/v1/exam/submit", token, gin.H{"confirm": true})
	if w.Code != http.StatusOK {
		t.Fatalf("duplicate submit: status = %d", w.Code)
	}
	if err := json.Unmarshal(env.Data["result"], &result); err != nil {
		t.Fatalf("decode duplicate result: %v", err)
	}
	if result.Score != 2 {
		t.Fatalf("duplicate score = %d, want 2", result.Score)
	}

	// Result is now available.
	w, env = doJSON(t, r, http.MethodGet, "/api/v1/exam/result", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("result: status = %d", w.Code)
	}
	if err := json.Unmarshal(env.Data["result"], &result); err != nil {
		t.Fatalf("decode final result: %v", err)
	}
	if result.Band == "" {
		t.Fatal("final result has no band")
	}
}

func TestHealth(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("health: status = %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatal("health response missing request id header")
	}
}
