package routes

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/TONNY-TED/Results-Management-System/internal/app/controllers"
	"github.com/TONNY-TED/Results-Management-System/internal/app/models/dto"
	"github.com/TONNY-TED/Results-Management-System/internal/app/services"
	"github.com/TONNY-TED/Results-Management-System/internal/middleware"
	"github.com/TONNY-TED/Results-Management-System/internal/pkg/validation"
)

// Controllers groups the HTTP handlers
type Controllers struct {
	Catalog  *controllers.CatalogController
	Schedule *controllers.ScheduleController
	Ledger   *controllers.LedgerController
	Results  *controllers.ResultsController
}

// NewControllers builds the handlers over the services
func NewControllers(svc *services.Services) *Controllers {
	return &Controllers{
		Catalog:  controllers.NewCatalogController(svc.Catalog),
		Schedule: controllers.NewScheduleController(svc.Scheduling),
		Ledger:   controllers.NewLedgerController(svc.Ledger),
		Results:  controllers.NewResultsController(svc.Results),
	}
}

// RegisterValidators installs the custom binding tags on gin's validator
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
	}
	return validation.RegisterValidators(v)
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c *Controllers) {
	// Student numbers contain slashes and arrive URL-encoded
	router.UseRawPath = true
	router.UnescapePathValues = true

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.HealthResponse{Status: "ok"}, ""))
	})

	v1 := router.Group("/api/v1")

	students := v1.Group("/students")
	{
		students.POST("", c.Catalog.CreateStudent)
		students.GET("/:number", c.Catalog.GetStudent)
		students.PUT("/:number/program", c.Catalog.AssignProgram)
		students.POST("/:number/payments", c.Ledger.RecordPayment)
		students.GET("/:number/payments", c.Ledger.ListPayments)
		students.GET("/:number/outstanding", c.Ledger.GetOutstanding)
		students.GET("/:number/fee-statement", c.Ledger.GetFeeStatement)
		students.POST("/:number/registrations", c.Ledger.RegisterSemester)
		students.GET("/:number/transcript", c.Results.GetTranscript)
		students.GET("/:number/gpa", c.Results.GetGPA)
	}

	v1.POST("/courses", c.Catalog.CreateCourse)

	subjects := v1.Group("/subjects")
	{
		subjects.POST("", c.Catalog.CreateSubject)
		subjects.POST("/:id/instructors", c.Catalog.AssignInstructor)
	}

	v1.POST("/instructors", c.Catalog.CreateInstructor)

	classes := v1.Group("/classes")
	{
		classes.POST("", c.Schedule.ScheduleClass)
		classes.GET("", c.Schedule.ListClasses)
		classes.POST("/:id/enrollments", c.Schedule.Enroll)
		classes.GET("/:id/enrollments", c.Schedule.ListEnrollments)
	}

	v1.PUT("/fee-structures", c.Ledger.SetFeeStructure)
	v1.GET("/fee-structures", c.Ledger.GetFeeStructure)
	v1.POST("/results", c.Results.EnterResult)
	v1.POST("/supplementary-exams", c.Results.EnterSUP)

	router.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Route not found")))
	})
}

// NewRouter returns a gin engine with logging, recovery and every route mounted
func NewRouter(c *Controllers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())
	SetupRouter(router, c)
	return router
}
