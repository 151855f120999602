// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/payment-tracker/backend/internal/application/usecase/service"
	"github.com/payment-tracker/backend/internal/domain/entity"
	domainerror "github.com/payment-tracker/backend/internal/domain/error"
	"github.com/payment-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/payment-tracker/backend/internal/integration/entrypoint/middleware"
)

// ServiceController handles service and service-line endpoints.
type ServiceController struct {
	createUseCase *service.CreateServiceUseCase
	listUseCase   *service.ListServicesUseCase
	updateUseCase *service.UpdateServiceUseCase
	deleteUseCase *service.DeleteServiceUseCase
	linesUseCase  *service.ManageLinesUseCase
}

// NewServiceController creates a new service controller instance.
func NewServiceController(
	createUseCase *service.CreateServiceUseCase,
	listUseCase *service.ListServicesUseCase,
	updateUseCase *service.UpdateServiceUseCase,
	deleteUseCase *service.DeleteServiceUseCase,
	linesUseCase *service.ManageLinesUseCase,
) *ServiceController {
	return &ServiceController{
		createUseCase: createUseCase,
		listUseCase:   listUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
		linesUseCase:  linesUseCase,
	}
}

// Create handles POST /services requests.
func (c *ServiceController) Create(ctx *gin.Context) {
	householdID, ok := middleware.GetHouseholdIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	var req dto.CreateServiceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingServiceFields),
		})
		return
	}

	input := service.CreateServiceInput{
		HouseholdID:     householdID,
		Name:            req.Name,
		Type:            entity.ServiceType(req.Type),
		Amount:          decimal.NewFromFloat(req.Amount),
		PaymentMethod:   entity.PaymentMethod(req.PaymentMethod),
		BillingCycleDay: req.BillingCycleDay,
		BillingDueDay:   req.BillingDueDay,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToServiceResponse(output.Service))
}

// List handles GET /services requests.
func (c *ServiceController) List(ctx *gin.Context) {
	householdID, ok := middleware.GetHouseholdIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), service.ListServicesInput{
		HouseholdID: householdID,
	})
	if err != nil {
		c.handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ServiceListResponse{
		Services: dto.ToServiceListResponse(output.Services),
	})
}

// Update handles PUT /services/:id requests.
func (c *ServiceController) Update(ctx *gin.Context) {
	householdID, ok := middleware.GetHouseholdIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	serviceID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondInvalidID(ctx, "service")
		return
	}

	var req dto.UpdateServiceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingServiceFields),
		})
		return
	}

	input := service.UpdateServiceInput{
		ID:              serviceID,
		HouseholdID:     householdID,
		Name:            req.Name,
		BillingCycleDay: req.BillingCycleDay,
		BillingDueDay:   req.BillingDueDay,
		IsActive:        req.IsActive,
	}
	if req.Amount != nil {
		amount := decimal.NewFromFloat(*req.Amount)
		input.Amount = &amount
	}
	if req.PaymentMethod != nil {
		method := entity.PaymentMethod(*req.PaymentMethod)
		input.PaymentMethod = &method
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToServiceResponse(output.Service))
}

// Delete handles DELETE /services/:id requests.
func (c *ServiceController) Delete(ctx *gin.Context) {
	householdID, ok := middleware.GetHouseholdIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	serviceID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondInvalidID(ctx, "service")
		return
	}

	_, err = c.deleteUseCase.Execute(ctx.Request.Context(), service.DeleteServiceInput{
		ID:          serviceID,
		HouseholdID: householdID,
	})
	if err != nil {
		c.handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Service deleted",
	})
}

// AddLine handles POST /services/:id/lines requests.
func (c *ServiceController) AddLine(ctx *gin.Context) {
	householdID, ok := middleware.GetHouseholdIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	serviceID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondInvalidID(ctx, "service")
		return
	}

	var req dto.AddLineRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingServiceFields),
		})
		return
	}

	output, err := c.linesUseCase.AddLine(ctx.Request.Context(), service.AddLineInput{
		ServiceID:       serviceID,
		HouseholdID:     householdID,
		Name:            req.Name,
		BillingCycleDay: req.BillingCycleDay,
		BillingDueDay:   req.BillingDueDay,
	})
	if err != nil {
		c.handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToServiceLineResponse(output.Line))
}

// UpdateLine handles PUT /services/:id/lines/:lineId requests.
func (c *ServiceController) UpdateLine(ctx *gin.Context) {
	householdID, ok := middleware.GetHouseholdIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	lineID, err := uuid.Parse(ctx.Param("lineId"))
	if err != nil {
		respondInvalidID(ctx, "line")
		return
	}

	var req dto.UpdateLineRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingServiceFields),
		})
		return
	}

	output, err := c.linesUseCase.UpdateLine(ctx.Request.Context(), service.UpdateLineInput{
		LineID:          lineID,
		HouseholdID:     householdID,
		Name:            req.Name,
		BillingCycleDay: req.BillingCycleDay,
		BillingDueDay:   req.BillingDueDay,
		IsActive:        req.IsActive,
	})
	if err != nil {
		c.handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToServiceLineResponse(output.Line))
}

// RemoveLine handles DELETE /services/:id/lines/:lineId requests.
func (c *ServiceController) RemoveLine(ctx *gin.Context) {
	householdID, ok := middleware.GetHouseholdIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	lineID, err := uuid.Parse(ctx.Param("lineId"))
	if err != nil {
		respondInvalidID(ctx, "line")
		return
	}

	output, err := c.linesUseCase.RemoveLine(ctx.Request.Context(), service.RemoveLineInput{
		LineID:      lineID,
		HouseholdID: householdID,
	})
	if err != nil {
		c.handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: output.Message,
	})
}

// handleServiceError maps service errors to HTTP responses.
func (c *ServiceController) handleServiceError(ctx *gin.Context, err error) {
	if errors.Is(err, domainerror.ErrServiceNotFound) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Service not found",
			Code:  string(domainerror.ErrCodeServiceNotFound),
		})
		return
	}
	if errors.Is(err, domainerror.ErrServiceLineNotFound) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Service line not found",
			Code:  string(domainerror.ErrCodeServiceLineNotFound),
		})
		return
	}

	var svcErr *domainerror.ServiceError
	if errors.As(err, &svcErr) {
		status := http.StatusBadRequest
		switch svcErr.Code {
		case domainerror.ErrCodeServiceNotFound, domainerror.ErrCodeServiceLineNotFound:
			status = http.StatusNotFound
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: svcErr.Message,
			Code:  string(svcErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
