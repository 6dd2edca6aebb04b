package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TONNY-TED/Results-Management-System/internal/app/models/dto"
	"github.com/TONNY-TED/Results-Management-System/internal/app/services"
	"github.com/TONNY-TED/Results-Management-System/internal/middleware"
)

// CatalogController handles students, courses, subjects and instructors
type CatalogController struct {
	catalogService services.CatalogService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService services.CatalogService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

// CreateStudent resolves or creates a student
// @Summary Resolve or create a student
// @Tags students
// @Accept json
// @Produce json
// @Param request body dto.CreateStudentRequest true "Student information"
// @Success 200 {object} dto.APIResponse{data=models.Student}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /students [post]
func (c *CatalogController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	student, err := c.catalogService.ResolveOrCreateStudent(ctx, req.Name, req.StudentNumber, req.Program)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student, "Student resolved"))
}

// GetStudent retrieves a student by number
// @Summary Get a student
// @Tags students
// @Produce json
// @Param number path string true "Student number (URL-encoded)"
// @Success 200 {object} dto.APIResponse{data=models.Student}
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{number} [get]
func (c *CatalogController) GetStudent(ctx *gin.Context) {
	student, err := c.catalogService.GetStudent(ctx, studentNumberParam(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student, ""))
}

// AssignProgram sets the program of a student
func (c *CatalogController) AssignProgram(ctx *gin.Context) {
	var req dto.AssignProgramRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	student, err := c.catalogService.AssignProgram(ctx, studentNumberParam(ctx), req.Program)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student, "Program assigned"))
}

// CreateCourse resolves or creates a course
func (c *CatalogController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	course, err := c.catalogService.ResolveOrCreateCourse(ctx, req.Name)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course, "Course resolved"))
}

// CreateSubject resolves or creates a subject
func (c *CatalogController) CreateSubject(ctx *gin.Context) {
	var req dto.CreateSubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	subject, err := c.catalogService.ResolveOrCreateSubject(ctx, req.Name, req.CourseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(subject, "Subject resolved"))
}

// CreateInstructor resolves or creates an instructor
func (c *CatalogController) CreateInstructor(ctx *gin.Context) {
	var req dto.CreateInstructorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	instructor, err := c.catalogService.ResolveOrCreateInstructor(ctx, req.Name, req.InstructorNumber)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(instructor, "Instructor resolved"))
}

// AssignInstructor makes an instructor eligible to teach a subject
// @Summary Assign an instructor to a subject
// @Tags subjects
// @Accept json
// @Produce json
// @Param id path int true "Subject ID"
// @Param request body dto.AssignInstructorRequest true "Instructor"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Subject or instructor not found"
// @Router /subjects/{id}/instructors [post]
func (c *CatalogController) AssignInstructor(ctx *gin.Context) {
	subjectID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.AssignInstructorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	if err := c.catalogService.AssignInstructor(ctx, subjectID, req.InstructorID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Instructor assigned to subject successfully"))
}
