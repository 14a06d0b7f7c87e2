package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/examadmission/internal/app/models/dto"
	"github.com/yigit/examadmission/internal/app/services"
	"github.com/yigit/examadmission/internal/middleware"
)

// ScoreController handles score entry and admission thresholds
type ScoreController struct {
	scoreService     services.ScoreService
	admissionService services.AdmissionService
	logger           zerolog.Logger
}

// NewScoreController creates a new ScoreController
func NewScoreController(scoreService services.ScoreService, admissionService services.AdmissionService, logger zerolog.Logger) *ScoreController {
	return &ScoreController{scoreService: scoreService, admissionService: admissionService, logger: logger}
}

// EnterScore records a subject score
// @Summary Enter a score
// @Tags scores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ScoreRequest true "Score"
// @Success 201 {object} dto.APIResponse{data=models.ScoreEntry}
// @Failure 400 {object} dto.ErrorResponse "Invalid score"
// @Failure 403 {object} dto.ErrorResponse "Recruitment administrator role required"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /scores [post]
func (c *ScoreController) EnterScore(ctx *gin.Context) {
	var req dto.ScoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	entry, err := c.scoreService.EnterScore(ctx.Request.Context(), middleware.CurrentIdentity(ctx), req.ApplicationID, req.Subject, req.Score)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(entry, "Score recorded"))
}

// SetThreshold publishes the minimum score for an exam and major
// @Summary Set admission threshold
// @Description Creates or replaces the threshold for the exam and major pair
// @Tags scores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ThresholdRequest true "Threshold"
// @Success 200 {object} dto.APIResponse{data=models.AdmissionThreshold}
// @Failure 400 {object} dto.ErrorResponse "Invalid threshold"
// @Failure 403 {object} dto.ErrorResponse "Recruitment administrator role required"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /thresholds [put]
func (c *ScoreController) SetThreshold(ctx *gin.Context) {
	var req dto.ThresholdRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	threshold, err := c.admissionService.SetThreshold(ctx.Request.Context(), middleware.CurrentIdentity(ctx), req.ExamID, req.Major, req.MinScore)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(threshold, "Threshold saved"))
}
