// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/payment-tracker/backend/internal/application/usecase/scheduledpayment"
	"github.com/payment-tracker/backend/internal/domain/entity"
	domainerror "github.com/payment-tracker/backend/internal/domain/error"
	"github.com/payment-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/payment-tracker/backend/internal/integration/entrypoint/middleware"
)

// ScheduledPaymentController handles scheduled payment template endpoints.
type ScheduledPaymentController struct {
	createUseCase *scheduledpayment.CreateScheduledPaymentUseCase
	listUseCase   *scheduledpayment.ListScheduledPaymentsUseCase
	updateUseCase *scheduledpayment.UpdateScheduledPaymentUseCase
	deleteUseCase *scheduledpayment.DeleteScheduledPaymentUseCase
}

// NewScheduledPaymentController creates a new scheduled payment controller instance.
func NewScheduledPaymentController(
	createUseCase *scheduledpayment.CreateScheduledPaymentUseCase,
	listUseCase *scheduledpayment.ListScheduledPaymentsUseCase,
	updateUseCase *scheduledpayment.UpdateScheduledPaymentUseCase,
	deleteUseCase *scheduledpayment.DeleteScheduledPaymentUseCase,
) *ScheduledPaymentController {
	return &ScheduledPaymentController{
		createUseCase: createUseCase,
		listUseCase:   listUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// Create handles POST /scheduled-payments requests.
func (c *ScheduledPaymentController) Create(ctx *gin.Context) {
	householdID, ok := middleware.GetHouseholdIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	var req dto.CreateScheduledPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingPaymentFields),
		})
		return
	}

	input := scheduledpayment.CreateScheduledPaymentInput{
		HouseholdID: householdID,
		Description: req.Description,
		PaymentType: entity.PaymentType(req.PaymentType),
		Frequency:   entity.Frequency(req.Frequency),
		Amount:      decimal.NewFromFloat(req.Amount),
		PaymentDate: req.PaymentDate,
		DueDay:      req.DueDay,
	}
	if req.DayOfWeek != nil {
		day := time.Weekday(*req.DayOfWeek)
		input.DayOfWeek = &day
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
		c.handlePaymentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToScheduledPaymentResponse(output.ScheduledPayment))
}

// List handles GET /scheduled-payments requests. The active_only query
// parameter limits the listing to active templates.
func (c *ScheduledPaymentController) List(ctx *gin.Context) {
	householdID, ok := middleware.GetHouseholdIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), scheduledpayment.ListScheduledPaymentsInput{
		HouseholdID: householdID,
		ActiveOnly:  ctx.Query("active_only") == "true",
	})
	if err != nil {
		c.handlePaymentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ScheduledPaymentListResponse{
		ScheduledPayments: dto.ToScheduledPaymentListResponse(output.ScheduledPayments),
	})
}

// Update handles PUT /scheduled-payments/:id requests.
func (c *ScheduledPaymentController) Update(ctx *gin.Context) {
	householdID, ok := middleware.GetHouseholdIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	templateID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondInvalidID(ctx, "scheduled payment")
		return
	}

	var req dto.UpdateScheduledPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingPaymentFields),
		})
		return
	}

	input := scheduledpayment.UpdateScheduledPaymentInput{
		ID:             templateID,
		HouseholdID:    householdID,
		Description:    req.Description,
		IsActive:       req.IsActive,
		SetPaymentDate: req.PaymentDate != nil || req.ClearDate,
		PaymentDate:    req.PaymentDate,
		DueDay:         req.DueDay,
	}
	if req.Amount != nil {
		amount := decimal.NewFromFloat(*req.Amount)
		input.Amount = &amount
	}
	if req.DayOfWeek != nil {
		day := time.Weekday(*req.DayOfWeek)
		input.DayOfWeek = &day
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handlePaymentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToScheduledPaymentResponse(output.ScheduledPayment))
}

// Delete handles DELETE /scheduled-payments/:id requests. Instances already
// generated from the template survive the deletion.
func (c *ScheduledPaymentController) Delete(ctx *gin.Context) {
	householdID, ok := middleware.GetHouseholdIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	templateID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondInvalidID(ctx, "scheduled payment")
		return
	}

	_, err = c.deleteUseCase.Execute(ctx.Request.Context(), scheduledpayment.DeleteScheduledPaymentInput{
		ID:          templateID,
		HouseholdID: householdID,
	})
	if err != nil {
		c.handlePaymentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Scheduled payment deleted",
	})
}

// handlePaymentError maps payment errors to HTTP responses.
func (c *ScheduledPaymentController) handlePaymentError(ctx *gin.Context, err error) {
	respondPaymentError(ctx, err)
}

// respondPaymentError maps payment domain errors to HTTP responses. Shared
// by the template and instance controllers.
func respondPaymentError(ctx *gin.Context, err error) {
	if errors.Is(err, domainerror.ErrScheduledPaymentNotFound) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Scheduled payment not found",
			Code:  string(domainerror.ErrCodeScheduledPaymentNotFound),
		})
		return
	}
	if errors.Is(err, domainerror.ErrInstanceNotFound) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Payment instance not found",
			Code:  string(domainerror.ErrCodeInstanceNotFound),
		})
		return
	}

	var payErr *domainerror.PaymentError
	if errors.As(err, &payErr) {
		status := http.StatusBadRequest
		switch payErr.Code {
		case domainerror.ErrCodeInstanceNotFound, domainerror.ErrCodeScheduledPaymentNotFound:
			status = http.StatusNotFound
		case domainerror.ErrCodeInstanceNotOpen:
			status = http.StatusConflict
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: payErr.Message,
			Code:  string(payErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// parseOptionalUUID parses an optional string into an optional UUID.
func parseOptionalUUID(s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
