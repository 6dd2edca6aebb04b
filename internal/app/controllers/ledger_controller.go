package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TONNY-TED/Results-Management-System/internal/app/models/dto"
	"github.com/TONNY-TED/Results-Management-System/internal/app/services"
	"github.com/TONNY-TED/Results-Management-System/internal/middleware"
	"github.com/TONNY-TED/Results-Management-System/internal/pkg/apperrors"
	"github.com/TONNY-TED/Results-Management-System/internal/pkg/helpers"
)

// LedgerController handles fees, payments and registration
type LedgerController struct {
	ledgerService services.LedgerService
}

// NewLedgerController creates a new LedgerController
func NewLedgerController(ledgerService services.LedgerService) *LedgerController {
	return &LedgerController{
		ledgerService: ledgerService,
	}
}

// SetFeeStructure defines or replaces the fee of a program for a semester
// @Summary Set a fee structure
// @Tags fees
// @Accept json
// @Produce json
// @Param request body dto.SetFeeStructureRequest true "Fee structure"
// @Success 200 {object} dto.APIResponse{data=models.FeeStructure}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /fee-structures [put]
func (c *LedgerController) SetFeeStructure(ctx *gin.Context) {
	var req dto.SetFeeStructureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}
	dueDate, err := helpers.ParseDate(req.DueDate)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	fee, err := c.ledgerService.SetFeeStructure(ctx, req.Program, req.Amount, req.Semester, dueDate)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(fee, "Fee structure saved"))
}

// GetFeeStructure returns the fee defined for a program and semester
// @Summary Get a fee structure
// @Tags fees
// @Produce json
// @Param program query string true "Program"
// @Param semester query int true "Semester number"
// @Success 200 {object} dto.APIResponse{data=models.FeeStructure}
// @Failure 404 {object} dto.ErrorResponse "No fee structure"
// @Router /fee-structures [get]
func (c *LedgerController) GetFeeStructure(ctx *gin.Context) {
	var query dto.FeeStructureQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	fee, err := c.ledgerService.GetFeeStructure(ctx, query.Program, query.Semester)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(fee, ""))
}

// RecordPayment appends a payment and returns the receipt
// @Summary Record a payment
// @Tags payments
// @Accept json
// @Produce json
// @Param number path string true "Student number (URL-encoded)"
// @Param request body dto.RecordPaymentRequest true "Payment"
// @Success 201 {object} dto.APIResponse{data=models.Payment}
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{number}/payments [post]
func (c *LedgerController) RecordPayment(ctx *gin.Context) {
	var req dto.RecordPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	payment, err := c.ledgerService.RecordPayment(ctx, studentNumberParam(ctx), req.Semester, req.Amount, req.ReceiptNo)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(payment, "Payment recorded"))
}

// ListPayments lists a student's payments
func (c *LedgerController) ListPayments(ctx *gin.Context) {
	payments, err := c.ledgerService.ListPayments(ctx, studentNumberParam(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(payments, ""))
}

// GetOutstanding reports the balance for one semester. A semester without a fee
// structure answers 200 with applicable=false rather than a zero balance.
func (c *LedgerController) GetOutstanding(ctx *gin.Context) {
	semester, ok := parseSemesterQuery(ctx, 1)
	if !ok {
		return
	}
	number := studentNumberParam(ctx)

	resp := dto.OutstandingResponse{StudentNumber: number, Semester: semester}
	balance, err := c.ledgerService.ComputeOutstanding(ctx, number, semester)
	switch {
	case errors.Is(err, apperrors.ErrNoFeeStructure):
		// not applicable
	case err != nil:
		middleware.HandleAPIError(ctx, err)
		return
	default:
		resp.Applicable = true
		resp.Outstanding = &balance
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// GetFeeStatement returns the invoice over every semester up to the current one
func (c *LedgerController) GetFeeStatement(ctx *gin.Context) {
	stmt, err := c.ledgerService.FeeStatement(ctx, studentNumberParam(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stmt, ""))
}

// RegisterSemester moves a student into the next semester
func (c *LedgerController) RegisterSemester(ctx *gin.Context) {
	reg, err := c.ledgerService.RegisterNewSemester(ctx, studentNumberParam(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	message := "Student registered for new semester"
	if !reg.FeeStructureExists {
		message += "; no fee structure is defined for it yet"
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(reg, message))
}
