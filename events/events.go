// Package events publishes domain events onto an in-process event bus. The
// stream feeds downstream consumers (activity logging today, the
// recommendation pipeline's export tomorrow); publishing is fire and forget
// and never fails a user request.
package events

import "time"

const (
	TopicVideoPublished      = "video.published"
	TopicVideoDeleted        = "video.deleted"
	TopicCommentAdded        = "comment.added"
	TopicTweetCreated        = "tweet.created"
	TopicSubscriptionToggled = "subscription.toggled"
)

type VideoPublishedEvent struct {
	VideoId     string    `json:"videoId"`
	OwnerId     string    `json:"ownerId"`
	Title       string    `json:"title"`
	PublishedAt time.Time `json:"publishedAt"`
}

type VideoDeletedEvent struct {
	VideoId   string    `json:"videoId"`
	OwnerId   string    `json:"ownerId"`
	DeletedAt time.Time `json:"deletedAt"`
}

type CommentAddedEvent struct {
	CommentId string    `json:"commentId"`
	VideoId   string    `json:"videoId"`
	OwnerId   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
}

type TweetCreatedEvent struct {
	TweetId   string    `json:"tweetId"`
	OwnerId   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
}

type SubscriptionToggledEvent struct {
	SubscriberId string    `json:"subscriberId"`
	ChannelId    string    `json:"channelId"`
	Subscribed   bool      `json:"subscribed"`
	ToggledAt    time.Time `json:"toggledAt"`
}
