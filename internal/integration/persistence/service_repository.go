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

// serviceRepository implements the adapter.ServiceRepository interface.
type serviceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a new service repository instance.
func NewServiceRepository(db *gorm.DB) adapter.ServiceRepository {
	return &serviceRepository{
		db: db,
	}
}

// Create creates a new service and its lines in the database.
func (r *serviceRepository) Create(ctx context.Context, service *entity.Service) error {
	serviceModel := model.ServiceFromEntity(service)
	result := r.db.WithContext(ctx).Create(serviceModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a service with its lines by ID.
func (r *serviceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	var serviceModel model.ServiceModel
	result := r.db.WithContext(ctx).
		Preload("Lines").
		Where("id = ?", id).
		First(&serviceModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrServiceNotFound
		}
		return nil, result.Error
	}
	return serviceModel.ToEntity(), nil
}

// FindByHousehold retrieves all services with lines for a household.
func (r *serviceRepository) FindByHousehold(ctx context.Context, householdID uuid.UUID) ([]*entity.Service, error) {
	var models []model.ServiceModel
	result := r.db.WithContext(ctx).
		Preload("Lines").
		Where("household_id = ?", householdID).
		Order("name ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	services := make([]*entity.Service, len(models))
	for i := range models {
		services[i] = models[i].ToEntity()
	}
	return services, nil
}

// Update updates an existing service in the database. Lines are managed
// through their own operations and are not touched here.
func (r *serviceRepository) Update(ctx context.Context, service *entity.Service) error {
	serviceModel := model.ServiceFromEntity(service)
	result := r.db.WithContext(ctx).Omit("Lines").Save(serviceModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete soft-deletes a service and its lines.
func (r *serviceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.ServiceLineModel{}, "service_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.ServiceModel{}, "id = ?", id).Error
	})
}

// CreateLine adds a line to an existing service.
func (r *serviceRepository) CreateLine(ctx context.Context, line *entity.ServiceLine) error {
	lineModel := model.ServiceLineFromEntity(line)
	result := r.db.WithContext(ctx).Create(lineModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindLineByID retrieves a single service line by its ID.
func (r *serviceRepository) FindLineByID(ctx context.Context, id uuid.UUID) (*entity.ServiceLine, error) {
	var lineModel model.ServiceLineModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&lineModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrServiceLineNotFound
		}
		return nil, result.Error
	}
	return lineModel.ToEntity(), nil
}

// UpdateLine updates an existing service line.
func (r *serviceRepository) UpdateLine(ctx context.Context, line *entity.ServiceLine) error {
	lineModel := model.ServiceLineFromEntity(line)
	result := r.db.WithContext(ctx).Save(lineModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// DeleteLine soft-deletes a service line.
func (r *serviceRepository) DeleteLine(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.ServiceLineModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	return nil
}
