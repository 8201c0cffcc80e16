// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"fmt"
	"os"

	"workflow-hub-be/internal/pkg/logger"
	"workflow-hub-be/pkg/events"
	pktNats "workflow-hub-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const consumerModule = "ConsumerService"

// IConsumerService keeps the catalog cache in step with imports made by this
// process (watermill) and by other instances (NATS).
type IConsumerService interface {
	Consume(ctx context.Context) error
	SubscribeRemote(sub *pktNats.Subscriber) error
}

type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	catalog   ICatalogService
	logger    logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	catalog ICatalogService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		catalog:   catalog,
		logger:    log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	// Unknown events are acked and ignored; nothing here is worth a redelivery.
	defer msg.Ack()

	if msg.Metadata.Get(eventTypeMetadata) != events.TypeCatalogImported {
		return
	}

	cs.catalog.Invalidate()
	cs.logger.Debug(consumerModule, "Catalog cache invalidated", map[string]interface{}{"message_id": msg.UUID})
}

// SubscribeRemote listens for imports made by other instances. The durable
// name is per host so every instance gets its own copy of each event.
func (cs *consumerService) SubscribeRemote(sub *pktNats.Subscriber) error {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "local"
	}
	durable := fmt.Sprintf("catalog-cache-%s", sanitizeDurable(host))

	return sub.Subscribe(events.TypeCatalogImported, durable, func(ctx context.Context, event events.Event) error {
		cs.catalog.Invalidate()
		cs.logger.Info(consumerModule, "Catalog cache invalidated by remote import", event.Payload())
		return nil
	})
}

// sanitizeDurable keeps only characters NATS accepts in consumer names.
func sanitizeDurable(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
