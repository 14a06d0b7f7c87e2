package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/examadmission/internal/app/models/dto"
	"github.com/yigit/examadmission/internal/app/services"
	"github.com/yigit/examadmission/internal/middleware"
	"github.com/yigit/examadmission/internal/pkg/apperrors"
)

// RoomController handles seat allocation
type RoomController struct {
	seatService services.SeatService
	logger      zerolog.Logger
}

// NewRoomController creates a new RoomController
func NewRoomController(seatService services.SeatService, logger zerolog.Logger) *RoomController {
	return &RoomController{seatService: seatService, logger: logger}
}

// AssignRooms runs one allocation pass
// @Summary Assign exam rooms
// @Description Seats every confirmed application without a seat, in application order. With dryRun=true nothing is stored.
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param dryRun query bool false "Preview only"
// @Param request body dto.AssignRoomsRequest false "Room settings"
// @Success 200 {object} dto.APIResponse{data=dto.AssignRoomsResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid date"
// @Failure 403 {object} dto.ErrorResponse "Recruitment administrator role required"
// @Failure 500 {object} dto.ErrorResponse "Storage failure, partial result in details"
// @Router /rooms/assign [post]
func (c *RoomController) AssignRooms(ctx *gin.Context) {
	var req dto.AssignRoomsRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			middleware.HandleBindError(ctx, err)
			return
		}
	}

	seatReq := services.SeatRequest{
		ExamID:       req.ExamID,
		SeatsPerRoom: req.SeatsPerRoom,
		RoomPrefix:   req.RoomPrefix,
		StartRoom:    req.StartRoomNumber,
		ExamDate:     req.ExamDate,
		ExamTime:     req.ExamTime,
		Address:      req.Address,
	}
	actor := middleware.CurrentIdentity(ctx)

	if dryRun, _ := strconv.ParseBool(ctx.Query("dryRun")); dryRun {
		planned, err := c.seatService.Preview(ctx.Request.Context(), actor, seatReq)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.AssignRoomsResponse{
			Assigned:    len(planned),
			Assignments: planned,
		}, "Allocation preview"))
		return
	}

	result, err := c.seatService.AssignSeats(ctx.Request.Context(), actor, seatReq)
	if err != nil {
		var ce *apperrors.CustomError
		if result != nil && result.Assigned > 0 && errors.As(err, &ce) {
			c.logger.Error().Err(err).Int("assigned", result.Assigned).Msg("Allocation stopped after partial progress")
			err = ce.WithDetails(map[string]interface{}{
				"assigned":    result.Assigned,
				"assignments": result.Assignments,
			})
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.AssignRoomsResponse{
		Assigned:    result.Assigned,
		Assignments: result.Assignments,
	}, "Rooms assigned"))
}

// MySeats lists the caller's room assignments
// @Summary My exam seats
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.RoomAssignment}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /rooms/me [get]
func (c *RoomController) MySeats(ctx *gin.Context) {
	seats, err := c.seatService.MySeats(ctx.Request.Context(), middleware.CurrentIdentity(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(seats, ""))
}
