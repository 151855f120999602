// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/payment-tracker/backend/internal/application/usecase/card"
	"github.com/payment-tracker/backend/internal/domain/entity"
	domainerror "github.com/payment-tracker/backend/internal/domain/error"
	"github.com/payment-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/payment-tracker/backend/internal/integration/entrypoint/middleware"
)

// CardController handles card endpoints.
type CardController struct {
	createUseCase       *card.CreateCardUseCase
	listUseCase         *card.ListCardsUseCase
	updateUseCase       *card.UpdateCardUseCase
	deleteUseCase       *card.DeleteCardUseCase
	updateCreditUseCase *card.UpdateCreditUseCase
}

// NewCardController creates a new card controller instance.
func NewCardController(
	createUseCase *card.CreateCardUseCase,
	listUseCase *card.ListCardsUseCase,
	updateUseCase *card.UpdateCardUseCase,
	deleteUseCase *card.DeleteCardUseCase,
	updateCreditUseCase *card.UpdateCreditUseCase,
) *CardController {
	return &CardController{
		createUseCase:       createUseCase,
		listUseCase:         listUseCase,
		updateUseCase:       updateUseCase,
		deleteUseCase:       deleteUseCase,
		updateCreditUseCase: updateCreditUseCase,
	}
}

// Create handles POST /cards requests.
func (c *CardController) Create(ctx *gin.Context) {
	householdID, ok := middleware.GetHouseholdIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	var req dto.CreateCardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingCardFields),
		})
		return
	}

	input := card.CreateCardInput{
		HouseholdID:        householdID,
		Name:               req.Name,
		BankName:           req.BankName,
		Owner:              req.Owner,
		CardType:           entity.CardType(req.CardType),
		LastDigitsPhysical: req.LastDigitsPhysical,
		LastDigitsDigital:  req.LastDigitsDigital,
		PhysicalCards:      req.PhysicalCards,
		ClosingDay:         req.ClosingDay,
		DueDay:             req.DueDay,
		CreditLimit:        decimal.NewFromFloat(req.CreditLimit),
		AvailableCredit:    decimal.NewFromFloat(req.AvailableCredit),
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCardResponse(output.Card))
}

// List handles GET /cards requests.
func (c *CardController) List(ctx *gin.Context) {
	householdID, ok := middleware.GetHouseholdIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), card.ListCardsInput{
		HouseholdID: householdID,
	})
	if err != nil {
		c.handleCardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CardListResponse{
		Cards: dto.ToCardListResponse(output.Cards),
	})
}

// Update handles PUT /cards/:id requests.
func (c *CardController) Update(ctx *gin.Context) {
	householdID, ok := middleware.GetHouseholdIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	cardID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondInvalidID(ctx, "card")
		return
	}

	var req dto.UpdateCardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingCardFields),
		})
		return
	}

	input := card.UpdateCardInput{
		ID:                 cardID,
		HouseholdID:        householdID,
		Name:               req.Name,
		BankName:           req.BankName,
		Owner:              req.Owner,
		LastDigitsPhysical: req.LastDigitsPhysical,
		LastDigitsDigital:  req.LastDigitsDigital,
		PhysicalCards:      req.PhysicalCards,
		ClosingDay:         req.ClosingDay,
		DueDay:             req.DueDay,
	}
	if req.CardType != nil {
		cardType := entity.CardType(*req.CardType)
		input.CardType = &cardType
	}
	if req.CreditLimit != nil {
		limit := decimal.NewFromFloat(*req.CreditLimit)
		input.CreditLimit = &limit
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCardResponse(output.Card))
}

// Delete handles DELETE /cards/:id requests.
func (c *CardController) Delete(ctx *gin.Context) {
	householdID, ok := middleware.GetHouseholdIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	cardID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondInvalidID(ctx, "card")
		return
	}

	_, err = c.deleteUseCase.Execute(ctx.Request.Context(), card.DeleteCardInput{
		ID:          cardID,
		HouseholdID: householdID,
	})
	if err != nil {
		c.handleCardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Card deleted",
	})
}

// UpdateCredit handles PATCH /cards/:id/credit requests.
func (c *CardController) UpdateCredit(ctx *gin.Context) {
	householdID, ok := middleware.GetHouseholdIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	cardID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondInvalidID(ctx, "card")
		return
	}

	var req dto.UpdateCreditRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.AvailableCredit == nil || *req.AvailableCredit < 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "availableCredit must be a non-negative number",
			Code:  string(domainerror.ErrCodeInvalidAvailableCredit),
		})
		return
	}

	output, err := c.updateCreditUseCase.Execute(ctx.Request.Context(), card.UpdateCreditInput{
		ID:              cardID,
		HouseholdID:     &householdID,
		AvailableCredit: decimal.NewFromFloat(*req.AvailableCredit),
	})
	if err != nil {
		c.handleCardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCardResponse(output.Card))
}

// handleCardError maps card errors to HTTP responses.
func (c *CardController) handleCardError(ctx *gin.Context, err error) {
	if errors.Is(err, domainerror.ErrCardNotFound) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Card not found",
			Code:  string(domainerror.ErrCodeCardNotFound),
		})
		return
	}

	var cardErr *domainerror.CardError
	if errors.As(err, &cardErr) {
		status := http.StatusBadRequest
		if cardErr.Code == domainerror.ErrCodeCardNotFound {
			status = http.StatusNotFound
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: cardErr.Message,
			Code:  string(cardErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// respondUnauthorized writes the shared missing-auth response.
func respondUnauthorized(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "Authentication required",
		Code:  string(domainerror.ErrCodeMissingToken),
	})
}

// respondInvalidID writes the shared malformed-id response.
func respondInvalidID(ctx *gin.Context, resource string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: "Invalid " + resource + " id",
	})
}
