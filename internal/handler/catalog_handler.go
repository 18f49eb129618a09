package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sinapsiscode/cursos-exam-backend/internal/model"
	"github.com/sinapsiscode/cursos-exam-backend/internal/response"
	"github.com/sinapsiscode/cursos-exam-backend/internal/service"
	"github.com/sinapsiscode/cursos-exam-backend/internal/store"
	"github.com/sinapsiscode/cursos-exam-backend/internal/validator"
)

// CatalogHandler serves the exam catalog to the exam-taking UI and the admin
// dashboard.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListExams godoc
// GET /api/v1/exams
func (h *CatalogHandler) ListExams(c *gin.Context) {
	exams, err := h.catalog.ListExams(c.Request.Context())
	if err != nil {
		failStorage(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"exams": exams})
}

// GetExamByID godoc
// GET /api/v1/exams/:exam_id
func (h *CatalogHandler) GetExamByID(c *gin.Context) {
	exam, err := h.catalog.ExamByID(c.Request.Context(), c.Param("exam_id"))
	if err != nil {
		failStorage(c, err)
		return
	}
	if exam == nil {
		response.Fail(c, http.StatusNotFound, response.ErrExamNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"exam": exam})
}

// GetExamByCourse godoc
// GET /api/v1/courses/:course_id/exam
func (h *CatalogHandler) GetExamByCourse(c *gin.Context) {
	courseID, err := strconv.Atoi(c.Param("course_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	exam, err := h.catalog.ExamByCourse(c.Request.Context(), courseID)
	if err != nil {
		failStorage(c, err)
		return
	}
	if exam == nil {
		response.Fail(c, http.StatusNotFound, response.ErrExamNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"exam": exam})
}

// GetPlacementQuestions godoc
// GET /api/v1/exam/questions
// Resolves the placement question set through the catalog fallback chain.
func (h *CatalogHandler) GetPlacementQuestions(c *gin.Context) {
	questions, err := h.catalog.PlacementQuestions(c.Request.Context())
	if err != nil {
		failStorage(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// ReplaceExams godoc
// PUT /api/v1/admin/exams
// Replaces the whole exam catalog from the admin dashboard.
func (h *CatalogHandler) ReplaceExams(c *gin.Context) {
	var req model.ReplaceExamsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	exams := make([]model.ExamDefinition, len(req.Exams))
	for i, e := range req.Exams {
		exams[i] = toExamDefinition(e)
	}

	if err := h.catalog.ReplaceExams(c.Request.Context(), exams); err != nil {
		failStorage(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"exams": exams})
}

func toExamDefinition(req model.ExamDefinitionRequest) model.ExamDefinition {
	questions := make([]model.Question, len(req.Questions))
	for i, q := range req.Questions {
		images := q.OptionImages
		if images == nil {
			images = make([]*string, len(q.Options))
		}
		questions[i] = model.Question{
			ID:            q.ID,
			Question:      q.Question,
			QuestionImage: q.QuestionImage,
			Options:       q.Options,
			OptionImages:  images,
			Correct:       q.Correct,
			Area:          q.Area,
			Points:        q.Points,
		}
	}
	return model.ExamDefinition{
		ID:           req.ID,
		CourseID:     req.CourseID,
		Type:         model.ExamType(req.Type),
		Title:        req.Title,
		Description:  req.Description,
		Duration:     req.Duration,
		Attempts:     req.Attempts,
		PassingScore: req.PassingScore,
		IsActive:     req.IsActive,
		Questions:    questions,
	}
}

// failStorage maps storage errors to the right API error: corrupt documents
// are reported distinctly so operators can decide whether to reseed.
func failStorage(c *gin.Context, err error) {
	var corrupt *store.CorruptError
	if errors.As(err, &corrupt) {
		response.Fail(c, http.StatusInternalServerError, response.ErrStorageCorrupt)
		return
	}
	response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
}
