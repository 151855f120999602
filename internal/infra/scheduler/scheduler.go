// Package scheduler runs the recurring background jobs.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/payment-tracker/backend/config"
	"github.com/payment-tracker/backend/internal/application/adapter"
	"github.com/payment-tracker/backend/internal/application/usecase/dashboard"
	"github.com/payment-tracker/backend/internal/application/usecase/payment"
)

// Scheduler wires the daily cron jobs: instance generation for every
// household and the alert digest emails.
type Scheduler struct {
	cron        *cron.Cron
	cfg         *config.SchedulerConfig
	userRepo    adapter.UserRepository
	generate    *payment.GenerateInstancesUseCase
	alertDigest *dashboard.SendAlertDigestUseCase
}

// New creates a scheduler with the configured cron specs. Jobs run in UTC.
func New(
	cfg *config.SchedulerConfig,
	userRepo adapter.UserRepository,
	generate *payment.GenerateInstancesUseCase,
	alertDigest *dashboard.SendAlertDigestUseCase,
) *Scheduler {
	return &Scheduler{
		cron:        cron.New(cron.WithLocation(time.UTC)),
		cfg:         cfg,
		userRepo:    userRepo,
		generate:    generate,
		alertDigest: alertDigest,
	}
}

// Start registers the jobs and starts the cron loop. It returns an error if a
// configured spec does not parse.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.GenerateSpec, s.runGeneration); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(s.cfg.AlertDigestSpec, s.runAlertDigest); err != nil {
		return err
	}

	s.cron.Start()
	slog.Info("Scheduler started",
		"generate_spec", s.cfg.GenerateSpec,
		"alert_digest_spec", s.cfg.AlertDigestSpec,
	)
	return nil
}

// Stop stops the cron loop and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	slog.Info("Scheduler stopped")
}

// runGeneration materializes due instances for every household. Generation is
// idempotent, so overlapping with a manual /generate call is harmless.
func (s *Scheduler) runGeneration() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	households, err := s.listHouseholds(ctx)
	if err != nil {
		slog.Error("Instance generation pass failed to list households", "error", err)
		return
	}

	now := time.Now().UTC()
	created, skipped := 0, 0
	for _, householdID := range households {
		out, err := s.generate.Execute(ctx, payment.GenerateInstancesInput{
			HouseholdID: householdID,
			Now:         now,
		})
		if err != nil {
			slog.Error("Instance generation failed for household",
				"household_id", householdID,
				"error", err,
			)
			continue
		}
		created += out.Created
		skipped += out.Skipped
	}

	slog.Info("Instance generation pass completed",
		"households", len(households),
		"created", created,
		"skipped", skipped,
	)
}

// runAlertDigest queues the daily alert digest emails.
func (s *Scheduler) runAlertDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	out, err := s.alertDigest.Execute(ctx, dashboard.SendAlertDigestInput{
		Now: time.Now().UTC(),
	})
	if err != nil {
		slog.Error("Alert digest pass failed", "error", err)
		return
	}

	slog.Info("Alert digest pass completed",
		"queued", out.Queued,
		"skipped", out.Skipped,
	)
}

// listHouseholds returns the distinct household IDs across all users.
func (s *Scheduler) listHouseholds(ctx context.Context) ([]uuid.UUID, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{}, len(users))
	households := make([]uuid.UUID, 0, len(users))
	for _, user := range users {
		if _, ok := seen[user.HouseholdID]; ok {
			continue
		}
		seen[user.HouseholdID] = struct{}{}
		households = append(households, user.HouseholdID)
	}
	return households, nil
}
