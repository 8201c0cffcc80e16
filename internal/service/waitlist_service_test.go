package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"workflow-hub-be/internal/dto"
	"workflow-hub-be/internal/model"
	"workflow-hub-be/internal/pkg/serverutils"
	"workflow-hub-be/pkg/events"
	"workflow-hub-be/pkg/secretbox"
	"workflow-hub-be/pkg/trial"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	sent []string
	err  error
}

func (m *fakeMailer) SendWaitlistConfirmation(toEmail string) error {
	m.sent = append(m.sent, toEmail)
	return m.err
}

func newWaitlistFixture(t *testing.T, gate trial.Gate) (*testEnv, IWaitlistService, *fakeMailer, *secretbox.Box) {
	t.Helper()
	env := newTestEnv(t)
	keys, err := secretbox.New("test-secret")
	require.NoError(t, err)
	mail := &fakeMailer{}
	return env, NewWaitlistService(env.uow, keys, mail, gate, env.log, env.publisher), mail, keys
}

func TestWaitlistJoinWithEmail(t *testing.T) {
	env, svc, mail, _ := newWaitlistFixture(t, nil)

	res, err := svc.Join(context.Background(), &dto.JoinWaitlistRequest{Email: " ada@example.com "}, "10.0.0.9")
	require.NoError(t, err)
	assert.True(t, res.HasEmail)
	assert.False(t, res.HasApiKey)

	var rows []model.WaitlistEntry
	require.NoError(t, env.db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "10.0.0.9", rows[0].IpAddress)
	require.NotNil(t, rows[0].Email)
	assert.Equal(t, "ada@example.com", *rows[0].Email)
	assert.Nil(t, rows[0].ApiKey)

	assert.Equal(t, []string{"ada@example.com"}, mail.sent)
	assert.Equal(t, []string{events.TypeWaitlistJoined}, env.publisher.types())
	assert.NotContains(t, env.publisher.events[0].Payload(), "api_key")
}

func TestWaitlistJoinSealsAPIKey(t *testing.T) {
	env, svc, mail, keys := newWaitlistFixture(t, nil)

	res, err := svc.Join(context.Background(), &dto.JoinWaitlistRequest{ApiKey: "sk-live-123456"}, "10.0.0.9")
	require.NoError(t, err)
	assert.True(t, res.HasApiKey)
	assert.Empty(t, mail.sent)

	var row model.WaitlistEntry
	require.NoError(t, env.db.First(&row).Error)
	assert.True(t, row.Apikey)
	require.NotNil(t, row.ApiKey)
	assert.NotEqual(t, "sk-live-123456", *row.ApiKey)

	plain, err := keys.Open(*row.ApiKey)
	require.NoError(t, err)
	assert.Equal(t, "sk-live-123456", plain)
}

func TestWaitlistJoinNeedsEmailOrKey(t *testing.T) {
	_, svc, _, _ := newWaitlistFixture(t, nil)

	_, err := svc.Join(context.Background(), &dto.JoinWaitlistRequest{}, "10.0.0.9")
	var appErr *serverutils.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 400, appErr.StatusCode())
}

func TestWaitlistJoinMailFailureIsNotFatal(t *testing.T) {
	_, svc, mail, _ := newWaitlistFixture(t, nil)
	mail.err = errors.New("smtp down")

	_, err := svc.Join(context.Background(), &dto.JoinWaitlistRequest{Email: "ada@example.com"}, "10.0.0.9")
	assert.NoError(t, err)
}

func TestWaitlistStatus(t *testing.T) {
	ends := time.Now().Add(5 * time.Minute)
	gate := &fixedGate{status: trial.Status{FirstSeen: time.Now(), EndsAt: ends}}
	_, svc, _, _ := newWaitlistFixture(t, gate)
	ctx := context.Background()

	res, err := svc.Status(ctx, "10.0.0.9")
	require.NoError(t, err)
	assert.False(t, res.OnWaitlist)
	assert.False(t, res.TrialExpired)
	require.NotNil(t, res.TrialEndsAt)
	assert.WithinDuration(t, ends, *res.TrialEndsAt, time.Second)

	_, err = svc.Join(ctx, &dto.JoinWaitlistRequest{ApiKey: "sk-live-123456"}, "10.0.0.9")
	require.NoError(t, err)

	res, err = svc.Status(ctx, "10.0.0.9")
	require.NoError(t, err)
	assert.True(t, res.OnWaitlist)
	assert.True(t, res.HasApiKey)
	assert.Nil(t, res.TrialEndsAt)
	assert.Equal(t, 1, gate.peeked)
	assert.Zero(t, gate.checked)
}

func TestWaitlistStatusDoesNotStartTrial(t *testing.T) {
	gate := &fixedGate{unseen: true}
	_, svc, _, _ := newWaitlistFixture(t, gate)

	res, err := svc.Status(context.Background(), "10.0.0.7")
	require.NoError(t, err)
	assert.False(t, res.TrialExpired)
	assert.Nil(t, res.TrialEndsAt)
	assert.Equal(t, 1, gate.peeked)
	assert.Zero(t, gate.checked)
}

func TestWaitlistStatusWithRealGate(t *testing.T) {
	gate := trial.NewMemoryGate(10 * time.Minute)
	_, svc, _, _ := newWaitlistFixture(t, gate)
	ctx := context.Background()

	res, err := svc.Status(ctx, "10.0.0.8")
	require.NoError(t, err)
	assert.Nil(t, res.TrialEndsAt)

	_, err = gate.Check(ctx, "10.0.0.8")
	require.NoError(t, err)

	res, err = svc.Status(ctx, "10.0.0.8")
	require.NoError(t, err)
	assert.False(t, res.TrialExpired)
	require.NotNil(t, res.TrialEndsAt)
}
