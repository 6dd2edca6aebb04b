package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TONNY-TED/Results-Management-System/internal/app/models"
	"github.com/TONNY-TED/Results-Management-System/internal/app/models/dto"
	"github.com/TONNY-TED/Results-Management-System/internal/app/services"
	"github.com/TONNY-TED/Results-Management-System/internal/middleware"
)

// ResultsController handles results, supplementary exams and transcripts
type ResultsController struct {
	resultsService services.ResultsService
}

// NewResultsController creates a new ResultsController
func NewResultsController(resultsService services.ResultsService) *ResultsController {
	return &ResultsController{
		resultsService: resultsService,
	}
}

func toEntry(req dto.ResultEntryRequest) services.ResultEntry {
	return services.ResultEntry{
		StudentName:    req.StudentName,
		StudentNumber:  req.StudentNumber,
		Program:        req.Program,
		SemesterNumber: req.SemesterNumber,
		CourseName:     req.CourseName,
		SubjectName:    req.SubjectName,
		Marks:          *req.Marks,
	}
}

// EnterResult stores exam marks
func (c *ResultsController) EnterResult(ctx *gin.Context) {
	var req dto.ResultEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	rec, err := c.resultsService.EnterResult(ctx, toEntry(req))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(rec, "Regular result entered successfully"))
}

// EnterSUP stores supplementary exam marks
func (c *ResultsController) EnterSUP(ctx *gin.Context) {
	var req dto.ResultEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	out, err := c.resultsService.EnterSUP(ctx, services.SupEntry(toEntry(req)))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(out, "Supplementary result entered successfully"))
}

// GetTranscript releases the transcript of a student with no outstanding fees
// @Summary Get a transcript
// @Tags results
// @Produce json
// @Param number path string true "Student number (URL-encoded)"
// @Param semester query int false "Semester number, 0 or absent for all"
// @Success 200 {object} dto.APIResponse{data=models.Transcript}
// @Failure 403 {object} dto.ErrorResponse "Outstanding fees"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{number}/transcript [get]
func (c *ResultsController) GetTranscript(ctx *gin.Context) {
	semester, ok := parseSemesterQuery(ctx, models.AllSemesters)
	if !ok {
		return
	}

	transcript, err := c.resultsService.GenerateTranscript(ctx, studentNumberParam(ctx), semester)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(transcript, ""))
}

// GetGPA returns the GPA of one semester, or over all semesters when none is given
// @Summary Get a GPA
// @Tags results
// @Produce json
// @Param number path string true "Student number (URL-encoded)"
// @Param semester query int false "Semester number, 0 or absent for overall"
// @Success 200 {object} dto.APIResponse{data=dto.GPAResponse}
// @Router /students/{number}/gpa [get]
func (c *ResultsController) GetGPA(ctx *gin.Context) {
	semester, ok := parseSemesterQuery(ctx, models.AllSemesters)
	if !ok {
		return
	}
	number := studentNumberParam(ctx)

	var gpa float64
	var err error
	if semester == models.AllSemesters {
		gpa, err = c.resultsService.OverallGPA(ctx, number)
	} else {
		gpa, err = c.resultsService.SemesterGPA(ctx, number, semester)
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.GPAResponse{
		StudentNumber: number,
		Semester:      semester,
		GPA:           gpa,
	}, ""))
}
