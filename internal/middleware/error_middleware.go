package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TONNY-TED/Results-Management-System/internal/app/models/dto"
	"github.com/TONNY-TED/Results-Management-System/internal/pkg/apperrors"
	"github.com/TONNY-TED/Results-Management-System/internal/pkg/logger"
)

// errorMapping pairs a sentinel with its HTTP status and response code
type errorMapping struct {
	target error
	status int
	code   dto.ErrorCode
}

// errorMappings is checked in order; the first sentinel in the chain wins
var errorMappings = []errorMapping{
	{apperrors.ErrRoomConflict, http.StatusConflict, dto.ErrorCodeRoomConflict},
	{apperrors.ErrInstructorConflict, http.StatusConflict, dto.ErrorCodeInstructorConflict},
	{apperrors.ErrInstructorNotEligible, http.StatusConflict, dto.ErrorCodeInstructorNotEligible},
	{apperrors.ErrAlreadyEnrolled, http.StatusConflict, dto.ErrorCodeAlreadyEnrolled},
	{apperrors.ErrResourceAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
	{apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeConflict},
	{apperrors.ErrAccessDenied, http.StatusForbidden, dto.ErrorCodeAccessDenied},
	{apperrors.ErrNoFeeStructure, http.StatusNotFound, dto.ErrorCodeNoFeeStructure},
	{apperrors.ErrStudentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrClassNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrSubjectNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrInstructorNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrInvalidInput, http.StatusBadRequest, dto.ErrorCodeInvalidInput},
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
	{apperrors.ErrStorage, http.StatusInternalServerError, dto.ErrorCodeDatabaseError},
}

// HandleAPIError writes the error response matching err
func HandleAPIError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}

		message := err.Error()
		if m.status >= http.StatusInternalServerError {
			logger.Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
			message = "Storage error"
		}
		detail := dto.NewErrorDetail(m.code, message)
		if details := apperrors.DetailsOf(err); details != nil && m.status < http.StatusInternalServerError {
			detail.WithDetails(details)
		}
		c.JSON(m.status, dto.NewErrorResponse(detail))
		return
	}

	logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled error")
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error:     dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		Timestamp: time.Now(),
	})
}

// HandleBindError answers a request whose body or query failed binding
func HandleBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
}
