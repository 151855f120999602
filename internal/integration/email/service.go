// Package email provides email sending functionality.
package email

import (
	"context"
	"fmt"

	"github.com/payment-tracker/backend/internal/application/adapter"
	"github.com/payment-tracker/backend/internal/domain/entity"
)

// Service handles email queueing operations.
type Service struct {
	queue adapter.EmailQueueRepository
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository) *Service {
	return &Service{
		queue: queue,
	}
}

// QueueAlertDigest queues a digest email listing the household's critical
// alerts for the given user.
func (s *Service) QueueAlertDigest(ctx context.Context, user *entity.User, alerts []entity.SmartAlert) error {
	subject := fmt.Sprintf("You have %d critical payment alerts", len(alerts))
	if len(alerts) == 1 {
		subject = "You have 1 critical payment alert"
	}

	alertData := make([]map[string]interface{}, 0, len(alerts))
	for _, alert := range alerts {
		alertData = append(alertData, map[string]interface{}{
			"title":       alert.Title,
			"description": alert.Description,
		})
	}

	templateData := map[string]interface{}{
		"user_name":   user.Name,
		"alert_count": len(alerts),
		"alerts":      alertData,
	}

	job := entity.NewEmailJob(
		entity.TemplateAlertDigest,
		user.Email,
		user.Name,
		subject,
		templateData,
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return fmt.Errorf("failed to queue alert digest: %w", err)
	}

	return nil
}

// Ensure Service implements adapter.EmailService.
var _ adapter.EmailService = (*Service)(nil)
