package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPublisherDeliversEvents(t *testing.T) {
	bus := NewEventBus()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	messages, err := bus.Subscribe(ctx, TopicCommentAdded)
	require.NoError(t, err)

	publisher := NewPublisher(bus)
	publisher.CommentAdded(CommentAddedEvent{
		CommentId: "c1",
		VideoId:   "v1",
		OwnerId:   "u1",
		CreatedAt: time.Now(),
	})

	select {
	case msg := <-messages:
		var event CommentAddedEvent
		require.NoError(t, json.Unmarshal(msg.Payload, &event))
		require.Equal(t, "c1", event.CommentId)
		require.Equal(t, "v1", event.VideoId)
		msg.Ack()
	case <-time.After(5 * time.Second):
		t.Fatal("no event delivered")
	}
}

// Publishing must never fail the request that produced the event, even when
// the bus is gone entirely.
func TestPublisherIsFireAndForget(t *testing.T) {
	var nilPublisher *Publisher
	nilPublisher.VideoPublished(VideoPublishedEvent{VideoId: "v"})

	publisher := NewPublisher(nil)
	publisher.VideoDeleted(VideoDeletedEvent{VideoId: "v"})
}
