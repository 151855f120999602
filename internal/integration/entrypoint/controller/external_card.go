// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/payment-tracker/backend/internal/application/usecase/card"
	domainerror "github.com/payment-tracker/backend/internal/domain/error"
	"github.com/payment-tracker/backend/internal/integration/entrypoint/dto"
)

// ExternalCardController handles the token-authenticated card endpoints used
// by bank-scraping integrations. These are not household-scoped.
type ExternalCardController struct {
	listUseCase         *card.ListCardsUseCase
	updateCreditUseCase *card.UpdateCreditUseCase
}

// NewExternalCardController creates a new external card controller instance.
func NewExternalCardController(
	listUseCase *card.ListCardsUseCase,
	updateCreditUseCase *card.UpdateCreditUseCase,
) *ExternalCardController {
	return &ExternalCardController{
		listUseCase:         listUseCase,
		updateCreditUseCase: updateCreditUseCase,
	}
}

// ListCredit handles GET /external/cards requests.
func (c *ExternalCardController) ListCredit(ctx *gin.Context) {
	output, err := c.listUseCase.ExecuteAll(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ExternalCardListResponse{
		Success: true,
		Count:   len(output.Cards),
		Cards:   dto.ToCardListResponse(output.Cards),
	})
}

// UpdateCredit handles PATCH /external/cards/:cardId/credit requests.
func (c *ExternalCardController) UpdateCredit(ctx *gin.Context) {
	cardID, err := uuid.Parse(ctx.Param("cardId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid card id",
		})
		return
	}

	var req dto.UpdateCreditRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.AvailableCredit == nil || *req.AvailableCredit < 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "availableCredit must be a non-negative number",
		})
		return
	}

	output, err := c.updateCreditUseCase.Execute(ctx.Request.Context(), card.UpdateCreditInput{
		ID:              cardID,
		AvailableCredit: decimal.NewFromFloat(*req.AvailableCredit),
	})
	if err != nil {
		if errors.Is(err, domainerror.ErrCardNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
				Error: "Card not found",
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ExternalCreditUpdateResponse{
		Success: true,
		Card: dto.ExternalUpdatedCard{
			ID:             output.Card.ID.String(),
			Name:           output.Card.Name,
			PreviousCredit: output.PreviousCredit.String(),
			NewCredit:      output.NewCredit.String(),
			UpdatedAt:      output.Card.UpdatedAt,
		},
	})
}
