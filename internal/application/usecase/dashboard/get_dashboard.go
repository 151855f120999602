// Package dashboard contains dashboard-related use cases. The dashboard is
// fully derived state: every request recomputes period analyses, cash-flow
// summaries, and alerts from the household's raw records, with a short-lived
// cache in front to absorb refresh bursts.
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/payment-tracker/backend/internal/application/adapter"
	"github.com/payment-tracker/backend/internal/application/usecase/alert"
	"github.com/payment-tracker/backend/internal/application/usecase/analysis"
	"github.com/payment-tracker/backend/internal/application/usecase/billing"
	"github.com/payment-tracker/backend/internal/application/usecase/cashflow"
	"github.com/payment-tracker/backend/internal/domain/entity"
)

// SnapshotTTL is how long a computed dashboard stays valid in the cache.
const SnapshotTTL = 2 * time.Minute

// GetDashboardInput represents the input for the dashboard computation. A
// zero Now means the current time; SkipCache forces a fresh computation.
type GetDashboardInput struct {
	HouseholdID uuid.UUID
	Now         time.Time
	SkipCache   bool
}

// GetDashboardOutput is the full dashboard snapshot. It is JSON-serializable
// so the same structure feeds both the HTTP response and the cache.
type GetDashboardOutput struct {
	Cards        []entity.CardPeriodAnalysis         `json:"cards"`
	Services     []entity.ServiceBillingAnalysis     `json:"services"`
	ServiceLines []entity.ServiceLineBillingAnalysis `json:"service_lines"`
	Weekly       cashflow.WeeklySummary              `json:"weekly"`
	Monthly      cashflow.MonthlySummary             `json:"monthly"`
	Alerts       []entity.SmartAlert                 `json:"alerts"`
	GeneratedAt  time.Time                           `json:"generated_at"`
	FromCache    bool                                `json:"from_cache"`
}

// GetDashboardUseCase computes the dashboard snapshot for a household.
type GetDashboardUseCase struct {
	cardRepo             adapter.CardRepository
	serviceRepo          adapter.ServiceRepository
	scheduledPaymentRepo adapter.ScheduledPaymentRepository
	instanceRepo         adapter.PaymentInstanceRepository
	cache                adapter.CacheService
}

// NewGetDashboardUseCase creates a new GetDashboardUseCase instance.
func NewGetDashboardUseCase(
	cardRepo adapter.CardRepository,
	serviceRepo adapter.ServiceRepository,
	scheduledPaymentRepo adapter.ScheduledPaymentRepository,
	instanceRepo adapter.PaymentInstanceRepository,
	cache adapter.CacheService,
) *GetDashboardUseCase {
	return &GetDashboardUseCase{
		cardRepo:             cardRepo,
		serviceRepo:          serviceRepo,
		scheduledPaymentRepo: scheduledPaymentRepo,
		instanceRepo:         instanceRepo,
		cache:                cache,
	}
}

// Execute returns the dashboard snapshot, from the cache when fresh enough.
// Cache failures degrade to a direct computation and are only logged.
func (uc *GetDashboardUseCase) Execute(ctx context.Context, input GetDashboardInput) (*GetDashboardOutput, error) {
	now := input.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	cacheKey := fmt.Sprintf("dashboard:%s", input.HouseholdID)

	if !input.SkipCache && uc.cache != nil {
		if raw, err := uc.cache.Get(ctx, cacheKey); err != nil {
			slog.Warn("dashboard cache read failed", "error", err)
		} else if raw != nil {
			var cached GetDashboardOutput
			if err := json.Unmarshal(raw, &cached); err == nil {
				cached.FromCache = true
				return &cached, nil
			}
			slog.Warn("dashboard cache entry corrupt, recomputing", "key", cacheKey)
		}
	}

	output, err := uc.compute(ctx, input.HouseholdID, now)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if raw, err := json.Marshal(output); err == nil {
			if err := uc.cache.Set(ctx, cacheKey, raw, SnapshotTTL); err != nil {
				slog.Warn("dashboard cache write failed", "error", err)
			}
		}
	}

	return output, nil
}

func (uc *GetDashboardUseCase) compute(ctx context.Context, householdID uuid.UUID, now time.Time) (*GetDashboardOutput, error) {
	cards, err := uc.cardRepo.FindByHousehold(ctx, householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cards: %w", err)
	}
	services, err := uc.serviceRepo.FindByHousehold(ctx, householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to load services: %w", err)
	}
	templates, err := uc.scheduledPaymentRepo.FindActiveByHousehold(ctx, householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	instances, err := uc.instanceRepo.FindByHousehold(ctx, householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to load instances: %w", err)
	}

	return BuildSnapshot(cards, services, templates, instances, now), nil
}

// BuildSnapshot derives the full dashboard from raw records. It is pure and
// shared with the alert digest scheduler.
func BuildSnapshot(
	cards []*entity.Card,
	services []*entity.Service,
	templates []*entity.ScheduledPayment,
	instances []*entity.PaymentInstance,
	now time.Time,
) *GetDashboardOutput {
	var lines []*entity.ServiceLine
	for _, svc := range services {
		lines = append(lines, svc.Lines...)
	}

	cardAnalyses := analysis.AnalyzeCards(cards, instances, templates, now)
	serviceAnalyses := analysis.AnalyzeServices(services, instances, now)
	lineAnalyses := analysis.AnalyzeServiceLines(lines, instances, now)

	weekly := cashflow.Weekly(instances, services, startOfWeek(now), now)
	monthly := cashflow.Monthly(instances, services, now)

	alerts := alert.Generate(alert.Context{
		Now:             now,
		Cards:           cards,
		Services:        services,
		Instances:       instances,
		CardAnalyses:    cardAnalyses,
		ServiceAnalyses: serviceAnalyses,
		LineAnalyses:    lineAnalyses,
		WeeklyPending:   weekly.TotalPending,
		MonthlyPending:  monthly.TotalPending,
	})

	return &GetDashboardOutput{
		Cards:        cardAnalyses,
		Services:     serviceAnalyses,
		ServiceLines: lineAnalyses,
		Weekly:       weekly,
		Monthly:      monthly,
		Alerts:       alerts,
		GeneratedAt:  now,
	}
}

// startOfWeek returns the Monday of now's week.
func startOfWeek(now time.Time) time.Time {
	day := billing.StartOfDay(now)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
