// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/payment-tracker/backend/internal/application/adapter"
	"github.com/payment-tracker/backend/internal/domain/entity"
)

// SendAlertDigestInput represents the input for the digest run.
type SendAlertDigestInput struct {
	Now time.Time
}

// SendAlertDigestOutput represents the output of the digest run.
type SendAlertDigestOutput struct {
	Queued  int
	Skipped int
}

// SendAlertDigestUseCase computes each household's alerts and enqueues a
// digest email for the ones with critical alerts. It runs from the daily
// scheduler.
type SendAlertDigestUseCase struct {
	userRepo             adapter.UserRepository
	cardRepo             adapter.CardRepository
	serviceRepo          adapter.ServiceRepository
	scheduledPaymentRepo adapter.ScheduledPaymentRepository
	instanceRepo         adapter.PaymentInstanceRepository
	emailService         adapter.EmailService
}

// NewSendAlertDigestUseCase creates a new SendAlertDigestUseCase instance.
func NewSendAlertDigestUseCase(
	userRepo adapter.UserRepository,
	cardRepo adapter.CardRepository,
	serviceRepo adapter.ServiceRepository,
	scheduledPaymentRepo adapter.ScheduledPaymentRepository,
	instanceRepo adapter.PaymentInstanceRepository,
	emailService adapter.EmailService,
) *SendAlertDigestUseCase {
	return &SendAlertDigestUseCase{
		userRepo:             userRepo,
		cardRepo:             cardRepo,
		serviceRepo:          serviceRepo,
		scheduledPaymentRepo: scheduledPaymentRepo,
		instanceRepo:         instanceRepo,
		emailService:         emailService,
	}
}

// Execute runs one digest pass over every user. Users who opted out of alert
// emails and households without critical alerts are skipped. A failure for
// one user is logged and does not abort the pass.
func (uc *SendAlertDigestUseCase) Execute(ctx context.Context, input SendAlertDigestInput) (*SendAlertDigestOutput, error) {
	now := input.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	users, err := uc.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	out := &SendAlertDigestOutput{}
	for _, user := range users {
		if !user.AlertEmails {
			out.Skipped++
			continue
		}

		critical, err := uc.criticalAlerts(ctx, user, now)
		if err != nil {
			slog.Error("alert digest computation failed", "user_id", user.ID, "error", err)
			out.Skipped++
			continue
		}
		if len(critical) == 0 {
			out.Skipped++
			continue
		}

		if err := uc.emailService.QueueAlertDigest(ctx, user, critical); err != nil {
			slog.Error("alert digest enqueue failed", "user_id", user.ID, "error", err)
			out.Skipped++
			continue
		}
		out.Queued++
	}

	slog.Info("alert digest pass finished", "queued", out.Queued, "skipped", out.Skipped)
	return out, nil
}

func (uc *SendAlertDigestUseCase) criticalAlerts(ctx context.Context, user *entity.User, now time.Time) ([]entity.SmartAlert, error) {
	cards, err := uc.cardRepo.FindByHousehold(ctx, user.HouseholdID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cards: %w", err)
	}
	services, err := uc.serviceRepo.FindByHousehold(ctx, user.HouseholdID)
	if err != nil {
		return nil, fmt.Errorf("failed to load services: %w", err)
	}
	templates, err := uc.scheduledPaymentRepo.FindActiveByHousehold(ctx, user.HouseholdID)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	instances, err := uc.instanceRepo.FindByHousehold(ctx, user.HouseholdID)
	if err != nil {
		return nil, fmt.Errorf("failed to load instances: %w", err)
	}

	snapshot := BuildSnapshot(cards, services, templates, instances, now)

	var critical []entity.SmartAlert
	for _, a := range snapshot.Alerts {
		if a.Severity == entity.AlertSeverityCritical {
			critical = append(critical, a)
		}
	}
	return critical, nil
}
