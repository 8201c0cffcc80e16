package service

import (
	"context"
	"testing"
	"time"

	"workflow-hub-be/internal/pkg/logger"
	"workflow-hub-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCatalog struct {
	ICatalogService
	invalidated chan struct{}
}

func (c *countingCatalog) Invalidate() {
	c.invalidated <- struct{}{}
}

func TestConsumerInvalidatesCatalogOnImport(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cat := &countingCatalog{invalidated: make(chan struct{}, 4)}
	consumer := NewConsumerService(pubSub, "catalog-events", cat, logger.NewNopLogger())
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService(pubSub, "catalog-events")
	require.NoError(t, publisher.Publish(ctx, events.NewWaitlistJoined("1.2.3.4", true, false)))
	require.NoError(t, publisher.Publish(ctx, events.NewCatalogImported(1, 2)))

	select {
	case <-cat.invalidated:
	case <-time.After(2 * time.Second):
		t.Fatal("catalog was not invalidated")
	}

	select {
	case <-cat.invalidated:
		t.Fatal("non-import event invalidated the catalog")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSanitizeDurable(t *testing.T) {
	assert.Equal(t, "api-7f_pod_local", sanitizeDurable("api-7f.pod.local"))
}
