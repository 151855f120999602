// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/payment-tracker/backend/internal/application/adapter"
	"github.com/payment-tracker/backend/internal/domain/entity"
	domainerror "github.com/payment-tracker/backend/internal/domain/error"
	"github.com/payment-tracker/backend/internal/integration/persistence/model"
)

// paymentInstanceRepository implements the adapter.PaymentInstanceRepository interface.
type paymentInstanceRepository struct {
	db *gorm.DB
}

// NewPaymentInstanceRepository creates a new payment instance repository instance.
func NewPaymentInstanceRepository(db *gorm.DB) adapter.PaymentInstanceRepository {
	return &paymentInstanceRepository{
		db: db,
	}
}

// Create creates a new payment instance in the database.
func (r *paymentInstanceRepository) Create(ctx context.Context, instance *entity.PaymentInstance) error {
	instanceModel := model.PaymentInstanceFromEntity(instance)
	result := r.db.WithContext(ctx).Create(instanceModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a payment instance with its partial payments by ID.
func (r *paymentInstanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.PaymentInstance, error) {
	var instanceModel model.PaymentInstanceModel
	result := r.db.WithContext(ctx).
		Preload("PartialPayments").
		Where("id = ?", id).
		First(&instanceModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrInstanceNotFound
		}
		return nil, result.Error
	}
	return instanceModel.ToEntity(), nil
}

// FindByFilter retrieves payment instances matching the given filter,
// ordered by due date ascending.
func (r *paymentInstanceRepository) FindByFilter(ctx context.Context, filter adapter.InstanceFilter) ([]*entity.PaymentInstance, error) {
	query := r.db.WithContext(ctx).Where("household_id = ?", filter.HouseholdID)

	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.StartDate != nil {
		query = query.Where("due_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("due_date <= ?", *filter.EndDate)
	}
	if filter.CardID != nil {
		query = query.Where("card_id = ?", *filter.CardID)
	}
	if filter.ServiceID != nil {
		query = query.Where("service_id = ?", *filter.ServiceID)
	}

	return r.find(query)
}

// FindByHousehold retrieves all payment instances for a household.
func (r *paymentInstanceRepository) FindByHousehold(ctx context.Context, householdID uuid.UUID) ([]*entity.PaymentInstance, error) {
	return r.find(r.db.WithContext(ctx).Where("household_id = ?", householdID))
}

// FindByTemplate retrieves all instances generated from a scheduled payment template.
func (r *paymentInstanceRepository) FindByTemplate(ctx context.Context, scheduledPaymentID uuid.UUID) ([]*entity.PaymentInstance, error) {
	return r.find(r.db.WithContext(ctx).Where("scheduled_payment_id = ?", scheduledPaymentID))
}

func (r *paymentInstanceRepository) find(query *gorm.DB) ([]*entity.PaymentInstance, error) {
	var models []model.PaymentInstanceModel
	result := query.
		Preload("PartialPayments").
		Order("due_date ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	instances := make([]*entity.PaymentInstance, len(models))
	for i := range models {
		instances[i] = models[i].ToEntity()
	}
	return instances, nil
}

// Update updates a payment instance and upserts its partial payments.
func (r *paymentInstanceRepository) Update(ctx context.Context, instance *entity.PaymentInstance) error {
	instanceModel := model.PaymentInstanceFromEntity(instance)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("PartialPayments").Save(instanceModel).Error; err != nil {
			return err
		}
		// Partial payments are append-only; Clauses OnConflict keeps
		// re-saving an instance idempotent.
		if len(instanceModel.PartialPayments) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&instanceModel.PartialPayments).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete soft-deletes a payment instance.
func (r *paymentInstanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.PaymentInstanceModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	return nil
}
