// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/payment-tracker/backend/internal/application/usecase/payment"
	"github.com/payment-tracker/backend/internal/domain/entity"
	domainerror "github.com/payment-tracker/backend/internal/domain/error"
	"github.com/payment-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/payment-tracker/backend/internal/integration/entrypoint/middleware"
)

// PaymentController handles payment instance endpoints.
type PaymentController struct {
	createUseCase   *payment.CreateInstanceUseCase
	listUseCase     *payment.ListInstancesUseCase
	registerUseCase *payment.RegisterPaymentUseCase
	cancelUseCase   *payment.CancelInstanceUseCase
	generateUseCase *payment.GenerateInstancesUseCase
}

// NewPaymentController creates a new payment controller instance.
func NewPaymentController(
	createUseCase *payment.CreateInstanceUseCase,
	listUseCase *payment.ListInstancesUseCase,
	registerUseCase *payment.RegisterPaymentUseCase,
	cancelUseCase *payment.CancelInstanceUseCase,
	generateUseCase *payment.GenerateInstancesUseCase,
) *PaymentController {
	return &PaymentController{
		createUseCase:   createUseCase,
		listUseCase:     listUseCase,
		registerUseCase: registerUseCase,
		cancelUseCase:   cancelUseCase,
		generateUseCase: generateUseCase,
	}
}

// Create handles POST /payment-instances requests.
func (c *PaymentController) Create(ctx *gin.Context) {
	householdID, ok := middleware.GetHouseholdIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	var req dto.CreateInstanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingPaymentFields),
		})
		return
	}

	input := payment.CreateInstanceInput{
		HouseholdID: householdID,
		Description: req.Description,
		DueDate:     req.DueDate,
		Amount:      decimal.NewFromFloat(req.Amount),
		PaymentType: entity.PaymentType(req.PaymentType),
	}

	var err error
	if input.CardID, err = parseOptionalUUID(req.CardID); err != nil {
		respondInvalidID(ctx, "card")
		return
	}
	if input.ServiceID, err = parseOptionalUUID(req.ServiceID); err != nil {
		respondInvalidID(ctx, "service")
		return
	}
	if input.ServiceLineID, err = parseOptionalUUID(req.ServiceLineID); err != nil {
		respondInvalidID(ctx, "line")
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondPaymentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToPaymentInstanceResponse(output.Instance))
}

// List handles GET /payment-instances requests with optional filters.
func (c *PaymentController) List(ctx *gin.Context) {
	householdID, ok := middleware.GetHouseholdIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	var req dto.ListInstancesRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid query parameters",
		})
		return
	}

	input := payment.ListInstancesInput{
		HouseholdID: householdID,
	}

	if req.Status != "" {
		status := entity.InstanceStatus(req.Status)
		input.Status = &status
	}
	if req.StartDate != "" {
		start, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "start_date must be formatted as YYYY-MM-DD",
			})
			return
		}
		input.StartDate = &start
	}
	if req.EndDate != "" {
		end, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "end_date must be formatted as YYYY-MM-DD",
			})
			return
		}
		input.EndDate = &end
	}
	if req.CardID != "" {
		cardID, err := uuid.Parse(req.CardID)
		if err != nil {
			respondInvalidID(ctx, "card")
			return
		}
		input.CardID = &cardID
	}
	if req.ServiceID != "" {
		serviceID, err := uuid.Parse(req.ServiceID)
		if err != nil {
			respondInvalidID(ctx, "service")
			return
		}
		input.ServiceID = &serviceID
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondPaymentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.InstanceListResponse{
		Instances: dto.ToInstanceListResponse(output.Instances),
	})
}

// RegisterPayment handles POST /payment-instances/:id/payments requests.
// Omitting amount settles the instance in full; a smaller amount records a
// partial payment.
func (c *PaymentController) RegisterPayment(ctx *gin.Context) {
	householdID, ok := middleware.GetHouseholdIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	instanceID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondInvalidID(ctx, "instance")
		return
	}

	var req dto.RegisterPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingPaymentFields),
		})
		return
	}

	input := payment.RegisterPaymentInput{
		InstanceID:  instanceID,
		HouseholdID: householdID,
		Notes:       req.Notes,
	}
	if req.Amount != nil {
		amount := decimal.NewFromFloat(*req.Amount)
		input.Amount = &amount
	}
	if req.PaidDate != nil {
		input.PaidDate = *req.PaidDate
	}

	output, err := c.registerUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondPaymentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPaymentInstanceResponse(output.Instance))
}

// Cancel handles POST /payment-instances/:id/cancel requests.
func (c *PaymentController) Cancel(ctx *gin.Context) {
	householdID, ok := middleware.GetHouseholdIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	instanceID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondInvalidID(ctx, "instance")
		return
	}

	output, err := c.cancelUseCase.Execute(ctx.Request.Context(), payment.CancelInstanceInput{
		InstanceID:  instanceID,
		HouseholdID: householdID,
	})
	if err != nil {
		respondPaymentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPaymentInstanceResponse(output.Instance))
}

// Generate handles POST /payment-instances/generate requests, materializing
// instances from the household's active templates on demand.
func (c *PaymentController) Generate(ctx *gin.Context) {
	householdID, ok := middleware.GetHouseholdIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	output, err := c.generateUseCase.Execute(ctx.Request.Context(), payment.GenerateInstancesInput{
		HouseholdID: householdID,
		Now:         time.Now().UTC(),
	})
	if err != nil {
		respondPaymentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.GenerateInstancesResponse{
		Created: output.Created,
		Skipped: output.Skipped,
	})
}
