package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"property-backend/internal/models"
	"property-backend/internal/notify"
)

type failingNotifier struct{ calls int }

func (n *failingNotifier) Send(context.Context, string, string, string) error {
	n.calls++
	return errors.New("relay refused")
}

func TestSendEmailRejectsMalformedAddress(t *testing.T) {
	n := notify.NewMockNotifier(nil, nil)
	svc := NewAlertService(nil, nil, nil, n, nil, nil)

	for _, to := range []string{"a b@c.d", "user@", "a@b.c,d@e.f", "@example.com"} {
		err := svc.SendEmail(context.Background(), &models.SendEmailRequest{ToEmail: to, Subject: "s", Message: "m"})
		assert.Equal(t, "to_email", fieldOf(t, err), to)
	}
	assert.Empty(t, n.Messages())
}

func TestSendEmailDelivers(t *testing.T) {
	n := notify.NewMockNotifier(nil, nil)
	svc := NewAlertService(nil, nil, nil, n, nil, nil)

	require.NoError(t, svc.SendEmail(context.Background(), &models.SendEmailRequest{
		ToEmail: " owner@example.com ", Subject: "Hello", Message: "Body",
	}))
	msgs := n.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "owner@example.com", msgs[0].To)
}

func TestSendEmailFailureWithoutLogger(t *testing.T) {
	n := &failingNotifier{}
	svc := NewAlertService(nil, nil, nil, n, nil, nil)

	err := svc.SendEmail(context.Background(), &models.SendEmailRequest{ToEmail: "a@b.co", Subject: "s", Message: "m"})
	require.Error(t, err)
	var ve *ValidationError
	assert.False(t, errors.As(err, &ve))
	assert.Equal(t, 1, n.calls)
	assert.Equal(t, []int{5, 1}, svc.DefaultLeadDays)
}

func TestRunRejectsNegativeDays(t *testing.T) {
	svc := NewAlertService(nil, nil, nil, nil, []int{5, 1}, nil)
	_, err := svc.Run(context.Background(), []int{3, -1}, "")
	assert.Equal(t, "alert_days", fieldOf(t, err))

	_, err = svc.Run(context.Background(), []int{1}, "22/10/2026")
	assert.Equal(t, "date", fieldOf(t, err))
}
