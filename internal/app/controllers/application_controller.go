package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/examadmission/internal/app/models/dto"
	"github.com/yigit/examadmission/internal/app/services"
	"github.com/yigit/examadmission/internal/middleware"
	"github.com/yigit/examadmission/internal/pkg/apperrors"
)

// ApplicationController handles exam applications
type ApplicationController struct {
	applicationService services.ApplicationService
	logger             zerolog.Logger
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService services.ApplicationService, logger zerolog.Logger) *ApplicationController {
	return &ApplicationController{applicationService: applicationService, logger: logger}
}

// Submit applies the calling student to an exam
// @Summary Apply for an exam
// @Description Creates a pending application. A student may apply to each exam once.
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ApplyRequest true "Exam to apply for"
// @Success 201 {object} dto.APIResponse{data=models.Application}
// @Failure 400 {object} dto.ErrorResponse "Exam ID missing"
// @Failure 403 {object} dto.ErrorResponse "Student role required"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Failure 409 {object} dto.ErrorResponse "Already applied"
// @Router /applications [post]
func (c *ApplicationController) Submit(ctx *gin.Context) {
	var req dto.ApplyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	app, err := c.applicationService.Submit(ctx.Request.Context(), middleware.CurrentIdentity(ctx), *req.ExamID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(app, "Application submitted"))
}

// ListMine lists the caller's applications
// @Summary My applications
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Application}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /applications/me [get]
func (c *ApplicationController) ListMine(ctx *gin.Context) {
	apps, err := c.applicationService.ListMine(ctx.Request.Context(), middleware.CurrentIdentity(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(apps, ""))
}

// Decide approves or rejects an application
// @Summary Decide an application
// @Description Sets the application status. Leaving the confirmed state releases any seat.
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body dto.DecisionRequest true "Decision"
// @Success 200 {object} dto.APIResponse{data=models.Application}
// @Failure 400 {object} dto.ErrorResponse "Missing or unknown decision"
// @Failure 403 {object} dto.ErrorResponse "Recruitment administrator role required"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /applications/{id}/decision [post]
func (c *ApplicationController) Decide(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.DecisionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}
	if req.Approve == nil && req.Status == "" {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("DECISION_REQUIRED", "approve or status is required"))
		return
	}

	approve := req.Approve != nil && *req.Approve
	app, err := c.applicationService.Decide(ctx.Request.Context(), middleware.CurrentIdentity(ctx), id, approve, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(app, "Application updated"))
}
