package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/examadmission/internal/app/models"
	"github.com/yigit/examadmission/internal/app/models/dto"
	"github.com/yigit/examadmission/internal/app/services"
	"github.com/yigit/examadmission/internal/middleware"
	"github.com/yigit/examadmission/internal/pkg/apperrors"
)

// ExamController handles exam offering endpoints
type ExamController struct {
	examService services.ExamService
	logger      zerolog.Logger
}

// NewExamController creates a new ExamController
func NewExamController(examService services.ExamService, logger zerolog.Logger) *ExamController {
	return &ExamController{examService: examService, logger: logger}
}

func examFromRequest(req dto.ExamRequest) (*models.Exam, error) {
	examTime, err := time.Parse(time.RFC3339, req.Time)
	if err != nil {
		return nil, apperrors.NewValidationError("INVALID_EXAM_TIME", "time must be an RFC 3339 timestamp")
	}
	return &models.Exam{
		Name:           req.Name,
		Type:           req.Type,
		Time:           examTime,
		Major:          req.Major,
		CandidateCount: req.CandidateCount,
		Remarks:        req.Remarks,
	}, nil
}

// ListExams lists exam offerings
// @Summary List exams
// @Description Lists exam offerings, optionally filtered by year, type or major substring
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Param year query int false "Exam year"
// @Param type query string false "Exam type"
// @Param major query string false "Major contains"
// @Success 200 {object} dto.APIResponse{data=[]models.Exam}
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /exams [get]
func (c *ExamController) ListExams(ctx *gin.Context) {
	var query dto.ExamListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	exams, err := c.examService.List(ctx.Request.Context(), models.ExamFilter{
		Year:  query.Year,
		Type:  query.Type,
		Major: query.Major,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(exams, ""))
}

// GetExam returns one exam offering
// @Summary Get exam
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Success 200 {object} dto.APIResponse{data=models.Exam}
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /exams/{id} [get]
func (c *ExamController) GetExam(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	exam, err := c.examService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(exam, ""))
}

// CreateExam publishes a new exam offering
// @Summary Create exam
// @Tags exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ExamRequest true "Exam"
// @Success 201 {object} dto.APIResponse{data=models.Exam}
// @Failure 400 {object} dto.ErrorResponse "Invalid exam"
// @Failure 403 {object} dto.ErrorResponse "Recruitment administrator role required"
// @Router /exams [post]
func (c *ExamController) CreateExam(ctx *gin.Context) {
	var req dto.ExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	exam, err := examFromRequest(req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.examService.Create(ctx.Request.Context(), middleware.CurrentIdentity(ctx), exam); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(exam, "Exam created"))
}

// UpdateExam replaces an exam offering
// @Summary Update exam
// @Tags exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Param request body dto.ExamRequest true "Exam"
// @Success 200 {object} dto.APIResponse{data=models.Exam}
// @Failure 400 {object} dto.ErrorResponse "Invalid exam"
// @Failure 403 {object} dto.ErrorResponse "Recruitment administrator role required"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /exams/{id} [put]
func (c *ExamController) UpdateExam(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	exam, err := examFromRequest(req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	exam.ID = id

	if err := c.examService.Update(ctx.Request.Context(), middleware.CurrentIdentity(ctx), exam); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(exam, "Exam updated"))
}
