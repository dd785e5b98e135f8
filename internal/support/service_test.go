package support

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"

	"github.com/freightdeck/freightdeck/internal/shared"
	"github.com/freightdeck/freightdeck/jobs"
)

type fakeEnqueuer struct {
	payloads []jobs.SendEmailPayload
}

func (f *fakeEnqueuer) EnqueueSendEmail(_ context.Context, payload jobs.SendEmailPayload) (*asynq.TaskInfo, error) {
	f.payloads = append(f.payloads, payload)
	return &asynq.TaskInfo{}, nil
}

func newTestService(enqueuer EmailEnqueuer) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(enqueuer, "support@freightdeck.in", logger)
}

func TestSubmitQueuesEmailWithReference(t *testing.T) {
	enqueuer := &fakeEnqueuer{}
	svc := newTestService(enqueuer)

	ref, err := svc.Submit(context.Background(), Ticket{
		Name:     "Asha",
		Email:    "asha@example.com",
		Subject:  "Billing mismatch",
		Message:  "Invoice total does not match the settlement page.",
		Category: "billing",
	})
	require.NoError(t, err)
	require.NotEmpty(t, ref)
	require.Len(t, enqueuer.payloads, 1)

	sent := enqueuer.payloads[0]
	require.Equal(t, "support@freightdeck.in", sent.To)
	require.Equal(t, "[support] Billing mismatch", sent.Subject)
	require.Contains(t, sent.Body, ref)
	require.Contains(t, sent.Body, "asha@example.com")
	require.Contains(t, sent.Body, "billing")
}

func TestSubmitOtherCategoryRequiresDetail(t *testing.T) {
	svc := newTestService(&fakeEnqueuer{})

	_, err := svc.Submit(context.Background(), Ticket{
		Name:     "Asha",
		Email:    "asha@example.com",
		Subject:  "Question",
		Message:  "A question not covered by the listed categories.",
		Category: "other",
	})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestSubmitOtherCategoryUsesDetail(t *testing.T) {
	enqueuer := &fakeEnqueuer{}
	svc := newTestService(enqueuer)

	_, err := svc.Submit(context.Background(), Ticket{
		Name:          "Asha",
		Email:         "asha@example.com",
		Subject:       "Question",
		Message:       "A question not covered by the listed categories.",
		Category:      "Other",
		OtherCategory: "driver onboarding",
	})
	require.NoError(t, err)
	require.Contains(t, enqueuer.payloads[0].Body, "driver onboarding")
}
