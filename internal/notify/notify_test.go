package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"property-backend/internal/models"
)

type mockLogRepo struct {
	mock.Mock
}

func (m *mockLogRepo) Create(ctx context.Context, entry *models.NotificationLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func TestMockNotifierRecordsAndLogs(t *testing.T) {
	repo := new(mockLogRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(e *models.NotificationLog) bool {
		return e.Recipient == "owner@example.com" && e.Status == models.NotificationStatusSent
	})).Return(nil).Once()

	n := NewMockNotifier(repo, nil)
	require.NoError(t, n.Send(context.Background(), "owner@example.com", "Hello", "Body"))

	msgs := n.Messages()
	require.Len(t, msgs, 1)
	require.Equal(t, "Hello", msgs[0].Subject)
	repo.AssertExpectations(t)
}

func TestInvalidRecipientIsLoggedAsFailed(t *testing.T) {
	repo := new(mockLogRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(e *models.NotificationLog) bool {
		return e.Status == models.NotificationStatusFailed && e.ErrorMessage != ""
	})).Return(nil).Once()

	n := NewMockNotifier(repo, nil)
	require.Error(t, n.Send(context.Background(), "not-an-address", "Hello", "Body"))
	require.Empty(t, n.Messages())
	repo.AssertExpectations(t)
}

func TestLogFailureDoesNotFailSend(t *testing.T) {
	repo := new(mockLogRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

	n := NewMockNotifier(repo, nil)
	require.NoError(t, n.Send(context.Background(), "a@b.co", "s", "b"))
	repo.AssertExpectations(t)
}

func TestValidateAddress(t *testing.T) {
	for _, ok := range []string{"a@b.co", "first.last@example.com"} {
		require.NoError(t, ValidateAddress(ok), ok)
	}
	for _, bad := range []string{"", "@example.com", "user@", "a b@c.d", "a@b.c,d@e.f"} {
		require.Error(t, ValidateAddress(bad), bad)
	}
}

func TestSMTPNotifierRejectsBadAddressWithoutLogger(t *testing.T) {
	repo := new(mockLogRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

	n := NewSMTPNotifier(SMTPConfig{Host: "localhost", Port: 25, From: "no-reply@example.com"}, repo, nil)
	require.NotNil(t, n.log)
	require.Error(t, n.Send(context.Background(), "user@", "s", "b"))
	repo.AssertExpectations(t)
}
