package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TONNY-TED/Results-Management-System/internal/app/models"
	"github.com/TONNY-TED/Results-Management-System/internal/app/models/dto"
	"github.com/TONNY-TED/Results-Management-System/internal/app/services"
	"github.com/TONNY-TED/Results-Management-System/internal/middleware"
)

// ScheduleController handles class scheduling and allocation
type ScheduleController struct {
	schedulingService services.SchedulingService
}

// NewScheduleController creates a new ScheduleController
func NewScheduleController(schedulingService services.SchedulingService) *ScheduleController {
	return &ScheduleController{
		schedulingService: schedulingService,
	}
}

// ScheduleClass commits a class slot
// @Summary Schedule a class
// @Description Rejects the slot when the room or instructor is taken, or the instructor is not assigned to the subject
// @Tags classes
// @Accept json
// @Produce json
// @Param request body dto.ScheduleClassRequest true "Class slot"
// @Success 201 {object} dto.APIResponse{data=dto.IDResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Room, instructor or eligibility conflict"
// @Router /classes [post]
func (c *ScheduleController) ScheduleClass(ctx *gin.Context) {
	var req dto.ScheduleClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	id, err := c.schedulingService.ScheduleClass(ctx, services.ScheduleRequest{
		Day:            req.Day,
		TimeSlot:       req.TimeSlot,
		SubjectID:      req.SubjectID,
		InstructorID:   req.InstructorID,
		Room:           req.Room,
		SemesterNumber: req.SemesterNumber,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.IDResponse{ID: id}, "Class scheduled successfully"))
}

// ListClasses returns the timetable, optionally filtered
func (c *ScheduleController) ListClasses(ctx *gin.Context) {
	var q dto.ClassListQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	classes, err := c.schedulingService.ListClasses(ctx, models.ClassFilter{
		SemesterNumber: q.SemesterNumber,
		Day:            q.Day,
		InstructorID:   q.InstructorID,
		Room:           q.Room,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(classes, ""))
}

// Enroll allocates a student to a class
func (c *ScheduleController) Enroll(ctx *gin.Context) {
	classID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	if err := c.schedulingService.Enroll(ctx, req.StudentNumber, classID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(
		models.Enrollment{StudentNumber: req.StudentNumber, ClassSlotID: classID},
		"Student allocated to class successfully"))
}

// ListEnrollments lists the students allocated to a class
func (c *ScheduleController) ListEnrollments(ctx *gin.Context) {
	classID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	list, err := c.schedulingService.ListEnrollments(ctx, classID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(list, ""))
}
