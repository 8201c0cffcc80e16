package service

import (
	"context"
	"encoding/json"
	"time"

	"workflow-hub-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const eventTypeMetadata = "event_type"

// IPublisherService puts domain events on the in-process bus.
type IPublisherService interface {
	events.Publisher
}

type publisherService struct {
	pubSub    *gochannel.GoChannel
	topicName string
}

func NewPublisherService(pubSub *gochannel.GoChannel, topicName string) IPublisherService {
	return &publisherService{
		pubSub:    pubSub,
		topicName: topicName,
	}
}

type eventMessage struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func (ps *publisherService) Publish(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(eventMessage{
		Type:       event.EventType(),
		Data:       event.Payload(),
		OccurredAt: event.Timestamp(),
	})
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(eventTypeMetadata, event.EventType())
	msg.SetContext(ctx)

	return ps.pubSub.Publish(ps.topicName, msg)
}
