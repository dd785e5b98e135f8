package support

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/freightdeck/freightdeck/internal/shared"
	"github.com/freightdeck/freightdeck/jobs"
)

// Ticket is a support request. Tickets are relayed to the support inbox
// and never stored.
type Ticket struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Subject       string `json:"subject" validate:"required"`
	Message       string `json:"message" validate:"required"`
	Category      string `json:"category" validate:"required"`
	OtherCategory string `json:"otherCategory"`
}

// EmailEnqueuer submits email tasks to the background queue.
type EmailEnqueuer interface {
	EnqueueSendEmail(ctx context.Context, payload jobs.SendEmailPayload) (*asynq.TaskInfo, error)
}

// Service relays support tickets to the support inbox.
type Service struct {
	enqueuer EmailEnqueuer
	inbox    string
	logger   *slog.Logger
}

func NewService(enqueuer EmailEnqueuer, inbox string, logger *slog.Logger) *Service {
	return &Service{enqueuer: enqueuer, inbox: inbox, logger: logger}
}

// Submit queues the ticket for delivery and returns a reference the
// requester can quote in follow-ups.
func (s *Service) Submit(ctx context.Context, t Ticket) (string, error) {
	category := t.Category
	if strings.EqualFold(category, "other") {
		if strings.TrimSpace(t.OtherCategory) == "" {
			return "", fmt.Errorf("%w: otherCategory is required when category is other", shared.ErrValidation)
		}
		category = t.OtherCategory
	}

	reference := uuid.NewString()
	body := fmt.Sprintf(
		"Reference: %s\nFrom: %s <%s>\nCategory: %s\n\n%s",
		reference, t.Name, t.Email, category, t.Message)

	if _, err := s.enqueuer.EnqueueSendEmail(ctx, jobs.SendEmailPayload{
		To:      s.inbox,
		Subject: fmt.Sprintf("[support] %s", t.Subject),
		Body:    body,
	}); err != nil {
		return "", err
	}
	s.logger.Info("support ticket queued", "reference", reference, "category", category)
	return reference, nil
}
