package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/examadmission/internal/app/models/dto"
	"github.com/yigit/examadmission/internal/pkg/apperrors"
	"github.com/yigit/examadmission/internal/pkg/logger"
)

// HandleAPIError maps an error kind onto an HTTP status and writes the error envelope.
// The reason code of the specific failure is always included.
func HandleAPIError(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, dto.ErrorCodeInternalServer
	message := "Internal server error"

	switch apperrors.KindOf(err) {
	case apperrors.KindUnauthenticated:
		status, code = http.StatusUnauthorized, dto.ErrorCodeUnauthorized
		if errors.Is(err, apperrors.ErrWrongPassword) {
			code = dto.ErrorCodeInvalidCredentials
		} else if errors.Is(err, apperrors.ErrTokenInvalid) {
			code = dto.ErrorCodeInvalidToken
		}
		message = err.Error()
	case apperrors.KindForbidden:
		status, code, message = http.StatusForbidden, dto.ErrorCodeForbidden, err.Error()
	case apperrors.KindValidation:
		status, code, message = http.StatusBadRequest, dto.ErrorCodeValidationFailed, err.Error()
	case apperrors.KindConflict:
		status, code, message = http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, err.Error()
	case apperrors.KindNotFound:
		status, code, message = http.StatusNotFound, dto.ErrorCodeResourceNotFound, err.Error()
		if errors.Is(err, apperrors.ErrSessionNotFound) {
			code = dto.ErrorCodeTokenNotFound
		}
	case apperrors.KindStorage:
		status, code, message = http.StatusInternalServerError, dto.ErrorCodeDatabaseError, "Storage failure"
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Storage error while handling request")
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled error while handling request")
	}

	detail := dto.NewErrorDetail(code, message).WithReason(apperrors.ReasonCode(err))

	var ce *apperrors.CustomError
	if errors.As(err, &ce) && ce.Details != nil {
		detail = detail.WithDetails(ce.Details)
	}

	c.JSON(status, dto.NewErrorResponse(detail))
}
