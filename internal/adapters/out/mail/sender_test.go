package mail

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewSender_FallsBackToLogClient(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s := NewSender("", "Portfolio", zap.New(core))

	_, ok := s.(*LogClient)
	require.True(t, ok)
	require.NoError(t, s.Send(context.Background(), "site@example.com", "me@example.com", "Hi", "body"))

	entries := logs.FilterMessage("mail (not sent)").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "me@example.com", entries[0].ContextMap()["to"])
	assert.Equal(t, 1, logs.FilterMessage("SENDGRID_API_KEY is empty; contact messages will only be logged").Len())
}

func TestNewSender_SendGridWhenKeySet(t *testing.T) {
	s := NewSender("SG.key", "Portfolio", nil)
	_, ok := s.(*SendGridClient)
	assert.True(t, ok)
}

func TestSendGridClient_RejectsMissingAddresses(t *testing.T) {
	c := NewSendGridClient("SG.key", "Portfolio", nil)
	ctx := context.Background()

	assert.ErrorContains(t, c.Send(ctx, "", "to@example.com", "s", "b"), "from address is empty")
	assert.ErrorContains(t, c.Send(ctx, "from@example.com", "", "s", "b"), "to address is empty")
	assert.ErrorContains(t, NewSendGridClient("", "", nil).Send(ctx, "a@b.c", "d@e.f", "s", "b"), "api key is empty")
}
