package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/transfer-desk/backend/internal/domain/error"
	"github.com/transfer-desk/backend/internal/domain/valueobject"
	"github.com/transfer-desk/backend/internal/integration/entrypoint/dto"
	"github.com/transfer-desk/backend/internal/integration/entrypoint/middleware"
)

// pathID parses the :id path parameter, responding 400 when it is not a UUID.
func pathID(ctx *gin.Context, label, code string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + label + " ID format",
			Code:  code,
		})
		return uuid.Nil, false
	}
	return id, true
}

// queryDate parses an optional ISO date query parameter. A missing value yields the zero date.
func queryDate(ctx *gin.Context, key string) (valueobject.CalendarDate, bool) {
	date, err := dto.ParseOptionalDate(ctx.Query(key))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format. Use YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidDate),
		})
		return valueobject.CalendarDate{}, false
	}
	return date, true
}

// currentUserID returns the authenticated operator, responding 401 when absent.
func currentUserID(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, false
	}
	return userID, true
}
