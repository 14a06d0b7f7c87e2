package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/examadmission/internal/app/models/dto"
)

// HandleBindError answers a request whose body or query failed binding
func HandleBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
}
