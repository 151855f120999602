// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/payment-tracker/backend/internal/application/adapter"
	"github.com/payment-tracker/backend/internal/domain/entity"
	domainerror "github.com/payment-tracker/backend/internal/domain/error"
	"github.com/payment-tracker/backend/internal/integration/persistence/model"
)

// scheduledPaymentRepository implements the adapter.ScheduledPaymentRepository interface.
type scheduledPaymentRepository struct {
	db *gorm.DB
}

// NewScheduledPaymentRepository creates a new scheduled payment repository instance.
func NewScheduledPaymentRepository(db *gorm.DB) adapter.ScheduledPaymentRepository {
	return &scheduledPaymentRepository{
		db: db,
	}
}

// Create creates a new scheduled payment template in the database.
func (r *scheduledPaymentRepository) Create(ctx context.Context, payment *entity.ScheduledPayment) error {
	paymentModel := model.ScheduledPaymentFromEntity(payment)
	result := r.db.WithContext(ctx).Create(paymentModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a template by its ID.
func (r *scheduledPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ScheduledPayment, error) {
	var paymentModel model.ScheduledPaymentModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&paymentModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrScheduledPaymentNotFound
		}
		return nil, result.Error
	}
	return paymentModel.ToEntity(), nil
}

// FindByHousehold retrieves all templates for a household.
func (r *scheduledPaymentRepository) FindByHousehold(ctx context.Context, householdID uuid.UUID) ([]*entity.ScheduledPayment, error) {
	return r.find(ctx, r.db.WithContext(ctx).Where("household_id = ?", householdID))
}

// FindActiveByHousehold retrieves only active templates for a household.
func (r *scheduledPaymentRepository) FindActiveByHousehold(ctx context.Context, householdID uuid.UUID) ([]*entity.ScheduledPayment, error) {
	return r.find(ctx, r.db.WithContext(ctx).
		Where("household_id = ?", householdID).
		Where("is_active = ?", true))
}

func (r *scheduledPaymentRepository) find(_ context.Context, query *gorm.DB) ([]*entity.ScheduledPayment, error) {
	var models []model.ScheduledPaymentModel
	result := query.Order("created_at ASC").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	payments := make([]*entity.ScheduledPayment, len(models))
	for i := range models {
		payments[i] = models[i].ToEntity()
	}
	return payments, nil
}

// Update updates an existing template in the database.
func (r *scheduledPaymentRepository) Update(ctx context.Context, payment *entity.ScheduledPayment) error {
	paymentModel := model.ScheduledPaymentFromEntity(payment)
	result := r.db.WithContext(ctx).Save(paymentModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete soft-deletes a template.
func (r *scheduledPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.ScheduledPaymentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	return nil
}
