package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/TONNY-TED/Results-Management-System/internal/app/models/dto"
)

// parseIDParam reads a positive int64 path parameter, answering 400 when it is not one
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name).
			WithField(name).
			WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// parseSemesterQuery reads ?semester=, falling back to def when absent
func parseSemesterQuery(ctx *gin.Context, def int) (int, bool) {
	raw := strings.TrimSpace(ctx.Query("semester"))
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid semester").
			WithField("semester").
			WithDetails("semester must be a non-negative integer")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return n, true
}

// studentNumberParam returns the :number path value
func studentNumberParam(ctx *gin.Context) string {
	return strings.TrimSpace(ctx.Param("number"))
}
