package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/examadmission/internal/app/models/dto"
	"github.com/yigit/examadmission/internal/app/services"
	"github.com/yigit/examadmission/internal/middleware"
)

// AdmissionController serves admission verdicts
type AdmissionController struct {
	admissionService services.AdmissionService
	logger           zerolog.Logger
}

// NewAdmissionController creates a new AdmissionController
func NewAdmissionController(admissionService services.AdmissionService, logger zerolog.Logger) *AdmissionController {
	return &AdmissionController{admissionService: admissionService, logger: logger}
}

// MyVerdict evaluates the caller's most recent application
// @Summary My admission verdict
// @Tags admission
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.ApplicationResult}
// @Failure 404 {object} dto.ErrorResponse "No application"
// @Router /admission/me [get]
func (c *AdmissionController) MyVerdict(ctx *gin.Context) {
	result, err := c.admissionService.ForStudent(ctx.Request.Context(), middleware.CurrentIdentity(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result, ""))
}

// ApplicationVerdict evaluates one application
// @Summary Application verdict
// @Description Students may only read their own applications
// @Tags admission
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=models.ApplicationResult}
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /admission/applications/{id} [get]
func (c *AdmissionController) ApplicationVerdict(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	result, err := c.admissionService.ForApplication(ctx.Request.Context(), middleware.CurrentIdentity(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result, ""))
}

// MyResults lists scores and verdicts for all of the caller's applications
// @Summary My results
// @Tags admission
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.ApplicationResult}
// @Router /results/me [get]
func (c *AdmissionController) MyResults(ctx *gin.Context) {
	results, err := c.admissionService.ResultsForStudent(ctx.Request.Context(), middleware.CurrentIdentity(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(results, ""))
}
