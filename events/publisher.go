package events

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	Logger "github.com/streamtube-app/streamtube/utils/log"
)

// NewEventBus creates the shared in-process bus both publisher and
// subscribers attach to.
func NewEventBus() *gochannel.GoChannel {
	return gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
}

type Publisher struct {
	bus *gochannel.GoChannel
}

func NewPublisher(bus *gochannel.GoChannel) *Publisher {
	return &Publisher{bus: bus}
}

// publish marshals the payload and drops it onto the bus. Marshal failures
// and publish failures are logged, never propagated: a lost event must not
// fail the request that produced it.
func (p *Publisher) publish(topic string, payload interface{}) {
	if p == nil || p.bus == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		Logger.Log.Warn("fail to marshal event for topic ", topic, ": ", err)
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	if err := p.bus.Publish(topic, msg); err != nil {
		Logger.Log.Warn("fail to publish event to topic ", topic, ": ", err)
	}
}

func (p *Publisher) VideoPublished(e VideoPublishedEvent) { p.publish(TopicVideoPublished, e) }

func (p *Publisher) VideoDeleted(e VideoDeletedEvent) { p.publish(TopicVideoDeleted, e) }

func (p *Publisher) CommentAdded(e CommentAddedEvent) { p.publish(TopicCommentAdded, e) }

func (p *Publisher) TweetCreated(e TweetCreatedEvent) { p.publish(TopicTweetCreated, e) }

func (p *Publisher) SubscriptionToggled(e SubscriptionToggledEvent) {
	p.publish(TopicSubscriptionToggled, e)
}

// StartActivityLogger subscribes to every domain topic and logs the raw
// payloads. It returns after wiring the subscriptions; consumption runs until
// ctx is cancelled.
func StartActivityLogger(ctx context.Context, bus *gochannel.GoChannel) error {
	topics := []string{
		TopicVideoPublished,
		TopicVideoDeleted,
		TopicCommentAdded,
		TopicTweetCreated,
		TopicSubscriptionToggled,
	}
	for _, topic := range topics {
		messages, err := bus.Subscribe(ctx, topic)
		if err != nil {
			return err
		}
		go func(topic string, messages <-chan *message.Message) {
			for msg := range messages {
				Logger.Log.Info("event ", topic, ": ", string(msg.Payload))
				msg.Ack()
			}
		}(topic, messages)
	}
	return nil
}
