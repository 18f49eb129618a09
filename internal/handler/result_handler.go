package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sinapsiscode/cursos-exam-backend/internal/middleware"
	"github.com/sinapsiscode/cursos-exam-backend/internal/model"
	"github.com/sinapsiscode/cursos-exam-backend/internal/response"
	"github.com/sinapsiscode/cursos-exam-backend/internal/service"
	"github.com/sinapsiscode/cursos-exam-backend/internal/validator"
)

// ResultHandler serves exam result persistence and the guest pending-result
// relay. Save outcomes are value-shaped: the UI branches on the success flag
// rather than on HTTP status.
type ResultHandler struct {
	results *service.ResultService
	pending *service.PendingService
}

// NewResultHandler creates a new ResultHandler.
func NewResultHandler(results *service.ResultService, pending *service.PendingService) *ResultHandler {
	return &ResultHandler{results: results, pending: pending}
}

// SaveExamResult godoc
// POST /api/v1/exam/results
// Saves the authenticated user's initial exam result, overwriting any
// previous attempt.
func (h *ResultHandler) SaveExamResult(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.SaveExamResultRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result := h.results.SaveExamResult(c.Request.Context(), claims.UserID, model.ExamAttempt{
		Score:            req.Score,
		Discount:         req.Discount,
		CorrectAnswers:   req.CorrectAnswers,
		TotalQuestions:   req.TotalQuestions,
		TimeSpentSeconds: req.TimeSpentSeconds,
	})

	response.Success(c, http.StatusOK, gin.H{"result": result})
}

// GetExamPromptStatus godoc
// GET /api/v1/exam/prompt
// Tells the UI whether to show the placement exam banner.
func (h *ResultHandler) GetExamPromptStatus(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	dismissed, err := h.results.ExamPromptDismissed(c.Request.Context(), claims.UserID)
	if err != nil {
		failStorage(c, err)
		return
	}
	completed, err := h.results.HasCompletedInitialExam(c.Request.Context(), claims.UserID)
	if err != nil {
		failStorage(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"dismissed": dismissed, "completed": completed})
}

// DismissExamPrompt godoc
// POST /api/v1/exam/prompt/dismiss
func (h *ResultHandler) DismissExamPrompt(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.results.DismissExamPrompt(c.Request.Context(), claims.UserID); err != nil {
		failStorage(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"dismissed": true})
}

// GetMyResult godoc
// GET /api/v1/exam/results/me
func (h *ResultHandler) GetMyResult(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	result, err := h.results.InitialExamResult(c.Request.Context(), claims.UserID)
	if err != nil {
		failStorage(c, err)
		return
	}
	if result == nil {
		response.Fail(c, http.StatusNotFound, response.ErrResultNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"result": result})
}

// SaveCourseExamResult godoc
// POST /api/v1/courses/:course_id/exam/results
// Appends one course exam attempt for the authenticated user.
func (h *ResultHandler) SaveCourseExamResult(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	courseID, err := strconv.Atoi(c.Param("course_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.SaveCourseExamResultRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result := h.results.SaveCourseExamResult(c.Request.Context(), claims.UserID, courseID, model.CourseExamAttempt{
		ExamID:   req.ExamID,
		Score:    req.Score,
		Discount: req.Discount,
	})

	response.Success(c, http.StatusOK, gin.H{"result": result})
}

// GetBestCourseResult godoc
// GET /api/v1/courses/:course_id/exam/results/best
func (h *ResultHandler) GetBestCourseResult(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	courseID, err := strconv.Atoi(c.Param("course_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	result, err := h.results.BestCourseExamResult(c.Request.Context(), claims.UserID, courseID)
	if err != nil {
		failStorage(c, err)
		return
	}
	if result == nil {
		response.Fail(c, http.StatusNotFound, response.ErrResultNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"result": result})
}

// SavePendingResult godoc
// POST /api/v1/exam/pending-results
// Stores a guest's exam result until they authenticate. Public route.
func (h *ResultHandler) SavePendingResult(c *gin.Context) {
	var req model.PendingResultRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	err := h.pending.SavePending(c.Request.Context(), req.SessionID, model.ExamAttempt{
		Score:            req.Score,
		Discount:         req.Discount,
		CorrectAnswers:   req.CorrectAnswers,
		TotalQuestions:   req.TotalQuestions,
		TimeSpentSeconds: req.TimeSpentSeconds,
	})
	if err != nil {
		failStorage(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"sessionId": req.SessionID})
}

// ClaimPendingResult godoc
// POST /api/v1/exam/pending-results/claim
// Applies a guest session's pending result to the authenticated user.
func (h *ResultHandler) ClaimPendingResult(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.ClaimPendingResultRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.pending.ApplyPendingResult(c.Request.Context(), req.SessionID, claims.UserID)
	if err != nil {
		failStorage(c, err)
		return
	}
	if result == nil {
		response.Fail(c, http.StatusNotFound, response.ErrNoPendingResult)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"result": result})
}
