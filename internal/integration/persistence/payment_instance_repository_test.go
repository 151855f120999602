package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/payment-tracker/backend/internal/application/adapter"
	"github.com/payment-tracker/backend/internal/domain/entity"
	domainerror "github.com/payment-tracker/backend/internal/domain/error"
)

func newTestInstance(householdID uuid.UUID, description string, dueDate time.Time, amount int64) *entity.PaymentInstance {
	return entity.NewPaymentInstance(
		householdID,
		description,
		dueDate,
		decimal.NewFromInt(amount),
		entity.PaymentTypeService,
	)
}

func TestPaymentInstanceRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewPaymentInstanceRepository(newTestDB(t))
	householdID := uuid.New()

	t.Run("create and find by id", func(t *testing.T) {
		instance := newTestInstance(householdID, "Electricity April", date(2025, 4, 10), 320)

		if err := repo.Create(ctx, instance); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}

		found, err := repo.FindByID(ctx, instance.ID)
		if err != nil {
			t.Fatalf("FindByID returned error: %v", err)
		}
		if found.Description != "Electricity April" {
			t.Errorf("expected description Electricity April, got %s", found.Description)
		}
		if found.Status != entity.InstanceStatusPending {
			t.Errorf("expected pending status, got %s", found.Status)
		}
		if !found.Amount.Equal(decimal.NewFromInt(320)) {
			t.Errorf("expected amount 320, got %s", found.Amount)
		}
	})

	t.Run("find by id returns not found sentinel", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		if !errors.Is(err, domainerror.ErrInstanceNotFound) {
			t.Errorf("expected ErrInstanceNotFound, got %v", err)
		}
	})

	t.Run("update persists partial payments", func(t *testing.T) {
		instance := newTestInstance(householdID, "Internet", date(2025, 4, 15), 1000)
		if err := repo.Create(ctx, instance); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}

		instance.ApplyPartialPayment(decimal.NewFromInt(400), date(2025, 4, 12), "first half")
		if err := repo.Update(ctx, instance); err != nil {
			t.Fatalf("Update returned error: %v", err)
		}

		found, err := repo.FindByID(ctx, instance.ID)
		if err != nil {
			t.Fatalf("FindByID returned error: %v", err)
		}
		if found.Status != entity.InstanceStatusPartial {
			t.Errorf("expected partial status, got %s", found.Status)
		}
		if len(found.PartialPayments) != 1 {
			t.Fatalf("expected 1 partial payment, got %d", len(found.PartialPayments))
		}
		if !found.PartialPayments[0].Amount.Equal(decimal.NewFromInt(400)) {
			t.Errorf("expected partial amount 400, got %s", found.PartialPayments[0].Amount)
		}
		if found.RemainingAmount == nil || !found.RemainingAmount.Equal(decimal.NewFromInt(600)) {
			t.Errorf("expected remaining 600, got %v", found.RemainingAmount)
		}

		// A second update with the same partial must not duplicate it.
		found.ApplyPartialPayment(decimal.NewFromInt(600), date(2025, 4, 20), "second half")
		if err := repo.Update(ctx, found); err != nil {
			t.Fatalf("Update returned error: %v", err)
		}

		final, err := repo.FindByID(ctx, instance.ID)
		if err != nil {
			t.Fatalf("FindByID returned error: %v", err)
		}
		if final.Status != entity.InstanceStatusPaid {
			t.Errorf("expected paid status, got %s", final.Status)
		}
		if len(final.PartialPayments) != 2 {
			t.Errorf("expected 2 partial payments, got %d", len(final.PartialPayments))
		}
	})

	t.Run("find by filter", func(t *testing.T) {
		filterHousehold := uuid.New()
		cardID := uuid.New()

		early := newTestInstance(filterHousehold, "Rent", date(2025, 5, 1), 2000)
		late := newTestInstance(filterHousehold, "Water", date(2025, 5, 20), 150)
		paid := newTestInstance(filterHousehold, "Gas", date(2025, 5, 10), 90)
		paid.MarkPaid(date(2025, 5, 9))
		carded := newTestInstance(filterHousehold, "Card bill", date(2025, 5, 25), 800)
		carded.PaymentType = entity.PaymentTypeCard
		carded.CardID = &cardID

		for _, pi := range []*entity.PaymentInstance{early, late, paid, carded} {
			if err := repo.Create(ctx, pi); err != nil {
				t.Fatalf("Create returned error: %v", err)
			}
		}

		t.Run("by household ordered by due date", func(t *testing.T) {
			instances, err := repo.FindByFilter(ctx, adapter.InstanceFilter{HouseholdID: filterHousehold})
			if err != nil {
				t.Fatalf("FindByFilter returned error: %v", err)
			}
			if len(instances) != 4 {
				t.Fatalf("expected 4 instances, got %d", len(instances))
			}
			for i := 1; i < len(instances); i++ {
				if instances[i].DueDate.Before(instances[i-1].DueDate) {
					t.Errorf("instances not ordered by due date")
				}
			}
		})

		t.Run("by status", func(t *testing.T) {
			status := entity.InstanceStatusPaid
			instances, err := repo.FindByFilter(ctx, adapter.InstanceFilter{
				HouseholdID: filterHousehold,
				Status:      &status,
			})
			if err != nil {
				t.Fatalf("FindByFilter returned error: %v", err)
			}
			if len(instances) != 1 || instances[0].Description != "Gas" {
				t.Errorf("expected only the paid Gas instance, got %d instances", len(instances))
			}
		})

		t.Run("by date range", func(t *testing.T) {
			start := date(2025, 5, 5)
			end := date(2025, 5, 21)
			instances, err := repo.FindByFilter(ctx, adapter.InstanceFilter{
				HouseholdID: filterHousehold,
				StartDate:   &start,
				EndDate:     &end,
			})
			if err != nil {
				t.Fatalf("FindByFilter returned error: %v", err)
			}
			if len(instances) != 2 {
				t.Errorf("expected 2 instances in range, got %d", len(instances))
			}
		})

		t.Run("by card", func(t *testing.T) {
			instances, err := repo.FindByFilter(ctx, adapter.InstanceFilter{
				HouseholdID: filterHousehold,
				CardID:      &cardID,
			})
			if err != nil {
				t.Fatalf("FindByFilter returned error: %v", err)
			}
			if len(instances) != 1 || instances[0].Description != "Card bill" {
				t.Errorf("expected only the card instance, got %d instances", len(instances))
			}
		})
	})

	t.Run("find by template", func(t *testing.T) {
		templateID := uuid.New()
		generated := newTestInstance(householdID, "Generated", date(2025, 6, 1), 100)
		generated.ScheduledPaymentID = &templateID
		if err := repo.Create(ctx, generated); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}

		instances, err := repo.FindByTemplate(ctx, templateID)
		if err != nil {
			t.Fatalf("FindByTemplate returned error: %v", err)
		}
		if len(instances) != 1 || instances[0].ID != generated.ID {
			t.Errorf("expected the generated instance, got %d instances", len(instances))
		}
	})

	t.Run("delete hides instance from lookups", func(t *testing.T) {
		instance := newTestInstance(householdID, "Doomed", date(2025, 7, 1), 50)
		if err := repo.Create(ctx, instance); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}

		if err := repo.Delete(ctx, instance.ID); err != nil {
			t.Fatalf("Delete returned error: %v", err)
		}

		_, err := repo.FindByID(ctx, instance.ID)
		if !errors.Is(err, domainerror.ErrInstanceNotFound) {
			t.Errorf("expected ErrInstanceNotFound after delete, got %v", err)
		}
	})
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
