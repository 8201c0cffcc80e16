package trial

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func TestMemoryGate(t *testing.T) {
	c := &clock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	g := NewMemoryGate(10 * time.Minute)
	g.now = c.now
	ctx := context.Background()

	st, err := g.Check(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, st.Expired)
	assert.Equal(t, c.t.Add(10*time.Minute), st.EndsAt)

	c.t = c.t.Add(9 * time.Minute)
	st, _ = g.Check(ctx, "1.2.3.4")
	assert.False(t, st.Expired)

	c.t = c.t.Add(2 * time.Minute)
	st, _ = g.Check(ctx, "1.2.3.4")
	assert.True(t, st.Expired)

	st, _ = g.Check(ctx, "5.6.7.8")
	assert.False(t, st.Expired, "other visitors start their own window")
}

func TestMemoryGatePeekDoesNotStartWindow(t *testing.T) {
	c := &clock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	g := NewMemoryGate(10 * time.Minute)
	g.now = c.now
	ctx := context.Background()

	_, ok, err := g.Peek(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, ok)

	c.t = c.t.Add(time.Hour)
	st, err := g.Check(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, st.Expired, "window starts at the first check, not the first peek")

	c.t = c.t.Add(11 * time.Minute)
	st, ok, err = g.Peek(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, st.Expired)
}

func TestZeroWindowNeverExpires(t *testing.T) {
	first := time.Unix(0, 0)
	assert.False(t, statusFor(first, first.Add(1000*time.Hour), 0).Expired)
}

func TestRedisGate(t *testing.T) {
	if testing.Short() {
		t.Skip("needs docker")
	}
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	defer func() {
		if err := container.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{Addr: endpoint})
	defer rdb.Close()

	c := &clock{t: time.Now()}
	g := NewRedisGate(rdb, time.Minute)
	g.now = c.now

	st, err := g.Check(ctx, "9.9.9.9")
	require.NoError(t, err)
	assert.False(t, st.Expired)

	c.t = c.t.Add(2 * time.Minute)
	st, err = g.Check(ctx, "9.9.9.9")
	require.NoError(t, err)
	assert.True(t, st.Expired)

	st, ok, err := g.Peek(ctx, "9.9.9.9")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, st.Expired)

	_, ok, err = g.Peek(ctx, "8.8.8.8")
	require.NoError(t, err)
	assert.False(t, ok)
	exists, err := rdb.Exists(ctx, "trial:first_seen:8.8.8.8").Result()
	require.NoError(t, err)
	assert.Zero(t, exists, "peek must not start the window")
}
