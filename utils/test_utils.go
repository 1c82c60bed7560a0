package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/streamtube-app/streamtube/model"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Seeding helpers shared by package tests. They write directly through the
// store so tests can arrange state without going through the API surface.

func TestCreateUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := &model.User{
		Id:       uuid.New().String(),
		Username: username,
		Email:    username + "@example.com",
		FullName: "Test " + username,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestCreateVideo(t *testing.T, db *gorm.DB, ownerId string, title string, views int64, published bool) *model.Video {
	t.Helper()
	video := &model.Video{
		Id:           uuid.New().String(),
		Title:        title,
		Description:  "description of " + title,
		VideoUrl:     "https://media.example.com/v/" + title,
		ThumbnailUrl: "https://media.example.com/t/" + title,
		Duration:     "1:00",
		Views:        views,
		IsPublished:  published,
		OwnerID:      ownerId,
	}
	require.NoError(t, db.Create(video).Error)
	return video
}

func TestCreateComment(t *testing.T, db *gorm.DB, videoId string, ownerId string, content string) *model.Comment {
	t.Helper()
	comment := &model.Comment{
		Id:      uuid.New().String(),
		Content: content,
		VideoID: videoId,
		OwnerID: ownerId,
	}
	require.NoError(t, db.Create(comment).Error)
	return comment
}

func TestCreateTweet(t *testing.T, db *gorm.DB, ownerId string, content string) *model.Tweet {
	t.Helper()
	tweet := &model.Tweet{
		Id:      uuid.New().String(),
		Content: content,
		OwnerID: ownerId,
	}
	require.NoError(t, db.Create(tweet).Error)
	return tweet
}

func TestCreateVideoLike(t *testing.T, db *gorm.DB, videoId string, userId string) *model.Like {
	t.Helper()
	like := &model.Like{Id: uuid.New().String(), LikedByID: userId, VideoID: &videoId}
	require.NoError(t, db.Create(like).Error)
	return like
}

func TestCreateCommentLike(t *testing.T, db *gorm.DB, commentId string, userId string) *model.Like {
	t.Helper()
	like := &model.Like{Id: uuid.New().String(), LikedByID: userId, CommentID: &commentId}
	require.NoError(t, db.Create(like).Error)
	return like
}

func TestCreateTweetLike(t *testing.T, db *gorm.DB, tweetId string, userId string) *model.Like {
	t.Helper()
	like := &model.Like{Id: uuid.New().String(), LikedByID: userId, TweetID: &tweetId}
	require.NoError(t, db.Create(like).Error)
	return like
}

func TestCreateSubscription(t *testing.T, db *gorm.DB, subscriberId string, channelId string) *model.Subscription {
	t.Helper()
	sub := &model.Subscription{
		Id:           uuid.New().String(),
		SubscriberID: subscriberId,
		ChannelID:    channelId,
	}
	require.NoError(t, db.Create(sub).Error)
	return sub
}
