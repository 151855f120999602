package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a member of a household. All cards, services, and payments
// are scoped to the household, not the individual user, so everyone in the
// household sees the same data.
type User struct {
	ID           uuid.UUID
	HouseholdID  uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	AlertEmails  bool // receive the daily critical-alert digest
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new User in a fresh household.
func NewUser(email, name, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		HouseholdID:  uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		AlertEmails:  true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
