package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/hibiken/asynq"

	"github.com/freightdeck/freightdeck/internal/dashboard"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeSendEmail is the task type for sending transactional emails.
	TaskTypeSendEmail = "mail:send"
	// TaskTypeDashboardWarmup drops stale dashboard cache versions on a schedule.
	TaskTypeDashboardWarmup = "dashboard:warmup"
)

// SendEmailPayload describes the information required to send an email.
type SendEmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NewSendEmailTask constructs an Asynq task.
func NewSendEmailTask(payload SendEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendEmail, data), nil
}

// NewDashboardWarmupTask constructs the scheduled cache refresh task.
func NewDashboardWarmupTask() *asynq.Task {
	return asynq.NewTask(TaskTypeDashboardWarmup, nil)
}

// Mailer relays email through a plain SMTP endpoint.
type Mailer struct {
	addr string
	from string
	auth smtp.Auth
}

// NewMailer constructs a Mailer. Auth may be nil for relays that accept
// unauthenticated local delivery (Mailpit in development).
func NewMailer(addr, from string, auth smtp.Auth) *Mailer {
	return &Mailer{addr: addr, from: from, auth: auth}
}

// Send delivers one message.
func (m *Mailer) Send(to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")
	return smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg))
}

// EmailTaskHandler processes TaskTypeSendEmail tasks.
type EmailTaskHandler struct {
	mailer *Mailer
	logger *slog.Logger
}

func NewEmailTaskHandler(mailer *Mailer, logger *slog.Logger) *EmailTaskHandler {
	return &EmailTaskHandler{mailer: mailer, logger: logger}
}

// Handle delivers the queued email. A malformed payload is dropped
// rather than retried.
func (h *EmailTaskHandler) Handle(_ context.Context, t *asynq.Task) error {
	var payload SendEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if err := h.mailer.Send(payload.To, payload.Subject, payload.Body); err != nil {
		return fmt.Errorf("send email to %s: %w", payload.To, err)
	}
	h.logger.Info("email sent", "to", payload.To, "subject", payload.Subject)
	return nil
}

// DashboardWarmupHandler invalidates cached dashboard summaries so the
// next request after a quiet period recomputes from live data.
type DashboardWarmupHandler struct {
	cache  *dashboard.Cache
	logger *slog.Logger
}

func NewDashboardWarmupHandler(cache *dashboard.Cache, logger *slog.Logger) *DashboardWarmupHandler {
	return &DashboardWarmupHandler{cache: cache, logger: logger}
}

func (h *DashboardWarmupHandler) Handle(ctx context.Context, _ *asynq.Task) error {
	if err := h.cache.Bump(ctx); err != nil {
		return err
	}
	h.logger.Info("dashboard cache version bumped")
	return nil
}
