package pubsub

import (
	"context"
	"fmt"

	"cloud.google.com/go/pubsub"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// New connects to Pub/Sub and publishes every event on topicID. Without a
// projectID events are encoded and logged but never sent.
func New(ctx context.Context, projectID string, topicID string) (PubSubClient, error) {
	if projectID == "" {
		log.Warn("GCP_PROJECT not set, match events will not be published")
		return disabled{}, nil
	}
	pubSubC, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}
	topic := pubSubC.Topic(topicID)
	teardown := func() {
		topic.Stop()
		pubSubC.Close()
	}

	return &client{
		client:   pubSubC,
		topic:    topic,
		teardown: teardown,
	}, nil
}

func (c *client) SendMessage(event EventType, data any) error {
	ctx := context.Background()
	msgpackData, err := msgpack.Marshal(data)
	if err != nil {
		log.Error("MessagePack marshal error", "error", err)
		return err
	}
	message := &pubsub.Message{
		Data:       msgpackData,
		Attributes: map[string]string{AttributeEvent: string(event)},
	}
	result := c.topic.Publish(ctx, message)
	serverID, err := result.Get(ctx)
	if err != nil {
		log.Error("Failed to publish message", "error", err, "topic", c.topic.ID(), "event", event)
		return err
	}
	log.Info("SendMessage", "serverID", serverID, "event", event)
	return nil
}

func (c *client) ProcessMessage(data []byte, returnValue any) error {
	return decode(data, returnValue)
}

func (c *client) Close() {
	c.teardown()
}

// disabled stands in when no Google Cloud project is configured.
type disabled struct{}

func (disabled) SendMessage(event EventType, data any) error {
	if _, err := msgpack.Marshal(data); err != nil {
		log.Error("MessagePack marshal error", "error", err)
		return err
	}
	log.Debug("Pub/Sub disabled, dropping event", "event", event)
	return nil
}

func (disabled) ProcessMessage(data []byte, returnValue any) error {
	return decode(data, returnValue)
}

func (disabled) Close() {}

func decode(data []byte, returnValue any) error {
	// Unmarshal the MessagePack data into the provided pointer struct
	err := msgpack.Unmarshal(data, returnValue)
	if err != nil {
		log.Error("MessagePack unmarshal error", "error", err)
		return err
	}
	return nil
}
