// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/payment-tracker/backend/internal/application/usecase/dashboard"
	"github.com/payment-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/payment-tracker/backend/internal/integration/entrypoint/middleware"
)

// DashboardController handles the dashboard endpoint.
type DashboardController struct {
	getDashboardUseCase *dashboard.GetDashboardUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(getDashboardUseCase *dashboard.GetDashboardUseCase) *DashboardController {
	return &DashboardController{
		getDashboardUseCase: getDashboardUseCase,
	}
}

// Get handles GET /dashboard requests. The refresh query parameter bypasses
// the snapshot cache. The snapshot is already JSON-shaped, so it is returned
// as-is.
func (c *DashboardController) Get(ctx *gin.Context) {
	householdID, ok := middleware.GetHouseholdIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	output, err := c.getDashboardUseCase.Execute(ctx.Request.Context(), dashboard.GetDashboardInput{
		HouseholdID: householdID,
		Now:         time.Now().UTC(),
		SkipCache:   ctx.Query("refresh") == "true",
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	ctx.JSON(http.StatusOK, output)
}
