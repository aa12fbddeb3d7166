package handler

import (
	"errors"
	"net/http"

	"github.com/academy-uk/placement-exam/internal/middleware"
	"github.com/academy-uk/placement-exam/internal/model"
	"github.com/academy-uk/placement-exam/internal/repository"
	"github.com/academy-uk/placement-exam/internal/response"
	"github.com/academy-uk/placement-exam/internal/service"
	"github.com/academy-uk/placement-exam/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ExamHandler handles the candidate-facing exam endpoints.
type ExamHandler struct {
	examService  *service.ExamService
	tokenService *service.TokenService
	log          zerolog.Logger
}

// NewExamHandler creates a new ExamHandler.
func NewExamHandler(examService *service.ExamService, tokenService *service.TokenService, log zerolog.Logger) *ExamHandler {
	return &ExamHandler{
		examService:  examService,
		tokenService: tokenService,
		log:          log.With().Str("component", "exam_handler").Logger(),
	}
}

// GetPaper godoc
// GET /api/v1/exam/paper
// Returns the exam paper: sections, questions and instructions. The paper
// never contains accepted answers.
func (h *ExamHandler) GetPaper(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"paper": h.examService.Paper()})
}

// StartExam godoc
// POST /api/v1/exam/start
// Creates a session, starts the countdown and returns a session token.
func (h *ExamHandler) StartExam(c *gin.Context) {
	var req model.StartExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	session, err := h.examService.StartExam(req)
	if err != nil {
		h.log.Error().Err(err).Msg("Start exam failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	token, err := h.tokenService.Generate(session.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("Token generation failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"token": token,
		"state": session.State(),
	})
}

// SaveAnswers godoc
// PUT /api/v1/exam/answers
// Merges a partial answer update into the in-progress session.
func (h *ExamHandler) SaveAnswers(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req model.SaveAnswersRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	state, err := h.examService.SaveAnswers(id, req)
	if err != nil {
		h.failLifecycle(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"state": state})
}

// GetState godoc
// GET /api/v1/exam/state
// Returns the current phase and timer snapshot.
func (h *ExamHandler) GetState(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	state, err := h.examService.State(id)
	if err != nil {
		h.failLifecycle(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"state": state})
}

// SubmitExam godoc
// POST /api/v1/exam/submit
// Finalizes and grades the session. Requires confirm:true unless the
// session is already submitted, in which case the original result is
// returned unchanged.
func (h *ExamHandler) SubmitExam(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req model.SubmitExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.examService.Submit(id, req)
	if err != nil {
		h.failLifecycle(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"result": result})
}

// GetResult godoc
// GET /api/v1/exam/result
// Returns the graded result of a submitted session.
func (h *ExamHandler) GetResult(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	result, err := h.examService.Result(id)
	if err != nil {
		h.failLifecycle(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"result": result})
}

// sessionID extracts the session id from the validated token claims.
func (h *ExamHandler) sessionID(c *gin.Context) (uuid.UUID, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return uuid.Nil, false
	}
	return claims.SessionID, true
}

// failLifecycle maps exam lifecycle errors to API error codes.
func (h *ExamHandler) failLifecycle(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrSessionNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
	case errors.Is(err, model.ErrNotStarted):
		response.Fail(c, http.StatusConflict, response.ErrExamNotStarted)
	case errors.Is(err, model.ErrAlreadySubmitted):
		response.Fail(c, http.StatusConflict, response.ErrExamAlreadySubmitted)
	case errors.Is(err, service.ErrConfirmationRequired):
		response.Fail(c, http.StatusBadRequest, response.ErrConfirmationRequired)
	case errors.Is(err, service.ErrResultNotReady):
		response.Fail(c, http.StatusConflict, response.ErrResultNotReady)
	default:
		h.log.Error().Err(err).Msg("Unhandled exam error")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
