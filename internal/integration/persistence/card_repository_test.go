package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/payment-tracker/backend/internal/domain/entity"
	domainerror "github.com/payment-tracker/backend/internal/domain/error"
)

func newTestCard(householdID uuid.UUID, name, bank string) *entity.Card {
	return entity.NewCard(
		householdID,
		name, bank, "Alice",
		entity.CardTypePhysical,
		15, 25,
		decimal.NewFromInt(5000), decimal.NewFromInt(3000),
	)
}

func TestCardRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCardRepository(newTestDB(t))
	householdID := uuid.New()

	t.Run("create and find by id", func(t *testing.T) {
		card := newTestCard(householdID, "Visa Gold", "Acme Bank")
		card.PhysicalCards = []string{"1234", "5678"}

		if err := repo.Create(ctx, card); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}

		found, err := repo.FindByID(ctx, card.ID)
		if err != nil {
			t.Fatalf("FindByID returned error: %v", err)
		}
		if found.Name != "Visa Gold" {
			t.Errorf("expected name Visa Gold, got %s", found.Name)
		}
		if found.HouseholdID != householdID {
			t.Errorf("expected household %s, got %s", householdID, found.HouseholdID)
		}
		if !found.CreditLimit.Equal(decimal.NewFromInt(5000)) {
			t.Errorf("expected credit limit 5000, got %s", found.CreditLimit)
		}
		if !found.CurrentBalance.Equal(decimal.NewFromInt(2000)) {
			t.Errorf("expected balance 2000, got %s", found.CurrentBalance)
		}
		if len(found.PhysicalCards) != 2 || found.PhysicalCards[0] != "1234" {
			t.Errorf("expected physical cards [1234 5678], got %v", found.PhysicalCards)
		}
	})

	t.Run("find by id returns not found sentinel", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		if !errors.Is(err, domainerror.ErrCardNotFound) {
			t.Errorf("expected ErrCardNotFound, got %v", err)
		}
	})

	t.Run("find by household excludes other households", func(t *testing.T) {
		other := newTestCard(uuid.New(), "Other", "Other Bank")
		if err := repo.Create(ctx, other); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}

		cards, err := repo.FindByHousehold(ctx, householdID)
		if err != nil {
			t.Fatalf("FindByHousehold returned error: %v", err)
		}
		for _, c := range cards {
			if c.HouseholdID != householdID {
				t.Errorf("found card from another household: %s", c.ID)
			}
		}
	})

	t.Run("find all sorts by bank then name", func(t *testing.T) {
		if err := repo.Create(ctx, newTestCard(householdID, "Alpha", "Zeta Bank")); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		if err := repo.Create(ctx, newTestCard(householdID, "Beta", "Acme Bank")); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}

		cards, err := repo.FindAll(ctx)
		if err != nil {
			t.Fatalf("FindAll returned error: %v", err)
		}
		for i := 1; i < len(cards); i++ {
			prev, cur := cards[i-1], cards[i]
			if prev.BankName > cur.BankName {
				t.Errorf("cards not sorted by bank: %s before %s", prev.BankName, cur.BankName)
			}
			if prev.BankName == cur.BankName && prev.Name > cur.Name {
				t.Errorf("cards not sorted by name within bank: %s before %s", prev.Name, cur.Name)
			}
		}
	})

	t.Run("update persists credit changes", func(t *testing.T) {
		card := newTestCard(householdID, "Updatable", "Acme Bank")
		if err := repo.Create(ctx, card); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}

		card.SetAvailableCredit(decimal.NewFromInt(1200))
		if err := repo.Update(ctx, card); err != nil {
			t.Fatalf("Update returned error: %v", err)
		}

		found, err := repo.FindByID(ctx, card.ID)
		if err != nil {
			t.Fatalf("FindByID returned error: %v", err)
		}
		if !found.AvailableCredit.Equal(decimal.NewFromInt(1200)) {
			t.Errorf("expected available credit 1200, got %s", found.AvailableCredit)
		}
		if !found.CurrentBalance.Equal(decimal.NewFromInt(3800)) {
			t.Errorf("expected balance 3800, got %s", found.CurrentBalance)
		}
	})

	t.Run("delete hides card from lookups", func(t *testing.T) {
		card := newTestCard(householdID, "Doomed", "Acme Bank")
		if err := repo.Create(ctx, card); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}

		if err := repo.Delete(ctx, card.ID); err != nil {
			t.Fatalf("Delete returned error: %v", err)
		}

		_, err := repo.FindByID(ctx, card.ID)
		if !errors.Is(err, domainerror.ErrCardNotFound) {
			t.Errorf("expected ErrCardNotFound after delete, got %v", err)
		}
	})
}
