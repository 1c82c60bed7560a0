package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/streamtube-app/streamtube/events"
	"github.com/streamtube-app/streamtube/model"
	"github.com/streamtube-app/streamtube/pagination"
	"gorm.io/gorm"
)

// TweetView is one enriched tweet as it appears in API responses.
type TweetView struct {
	model.Tweet
	Owner      pagination.Owner `json:"owner"`
	LikesCount int64            `json:"likesCount"`
	IsLiked    bool             `json:"isLiked"`
}

func (h *Handler) enrichTweets(tweets []model.Tweet, viewerId string) ([]TweetView, error) {
	ids := make([]string, len(tweets))
	ownerIds := make([]string, len(tweets))
	for i, tweet := range tweets {
		ids[i] = tweet.Id
		ownerIds[i] = tweet.OwnerID
	}

	owners, err := pagination.Owners(h.DB, ownerIds)
	if err != nil {
		return nil, errInternal(err, "failed to resolve tweet owners")
	}
	counts, err := pagination.LikeCounts(h.DB, pagination.LikeTargetTweet, ids)
	if err != nil {
		return nil, errInternal(err, "failed to count tweet likes")
	}
	liked, err := pagination.LikedSet(h.DB, pagination.LikeTargetTweet, ids, viewerId)
	if err != nil {
		return nil, errInternal(err, "failed to resolve viewer likes")
	}

	views := make([]TweetView, len(tweets))
	for i, tweet := range tweets {
		views[i] = TweetView{
			Tweet:      tweet,
			Owner:      owners[tweet.OwnerID],
			LikesCount: counts[tweet.Id],
			IsLiked:    liked[tweet.Id],
		}
	}
	return views, nil
}

// GetUserTweets serves one page of a channel's tweets, newest first. A
// malformed cursor falls back to the first page.
func (h *Handler) GetUserTweets(c *gin.Context) {
	user, err := h.getUserByUsername(c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}

	limit, err := parseLimit(c)
	if err != nil {
		respondError(c, err)
		return
	}

	spec := pagination.NewQuerySpec().
		WhereEq("owner_id", user.Id).
		OrderBy(pagination.NewestFirst).
		Limit(limit).
		Cursor(lenientCursor(c))

	page, err := pagination.Paginate[model.Tweet](h.DB, spec)
	if err != nil {
		respondError(c, pageError(err, "failed to load tweets"))
		return
	}

	views, err := h.enrichTweets(page.Items, currentUserId(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, views, page.HasMore, page.NextCursor, page.TotalCount)
}

// CreateTweet posts a tweet on the caller's own channel.
func (h *Handler) CreateTweet(c *gin.Context) {
	userId := currentUserId(c)

	var body contentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, errValidation("invalid request body"))
		return
	}
	if err := validateContent(body.Content); err != nil {
		respondError(c, err)
		return
	}

	tweet := model.Tweet{
		Id:      uuid.New().String(),
		Content: body.Content,
		OwnerID: userId,
	}
	if err := h.DB.Create(&tweet).Error; err != nil {
		respondError(c, errInternal(err, "failed to create tweet"))
		return
	}

	h.Events.TweetCreated(events.TweetCreatedEvent{
		TweetId:   tweet.Id,
		OwnerId:   userId,
		CreatedAt: tweet.CreatedAt,
	})

	respondData(c, http.StatusCreated, tweet, "tweet created successfully")
}

func (h *Handler) getTweet(tweetId string) (*model.Tweet, error) {
	var tweet model.Tweet
	err := h.DB.Where("id = ?", tweetId).First(&tweet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errNotFound("tweet not found")
	}
	if err != nil {
		return nil, errInternal(err, "failed to load tweet")
	}
	return &tweet, nil
}

// UpdateTweet edits a tweet's content. Only the owner may edit.
func (h *Handler) UpdateTweet(c *gin.Context) {
	tweet, err := h.getTweet(c.Param("tweetId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if tweet.OwnerID != currentUserId(c) {
		respondError(c, errForbidden("you don't have permission to update this tweet"))
		return
	}

	var body contentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, errValidation("invalid request body"))
		return
	}
	if err := validateContent(body.Content); err != nil {
		respondError(c, err)
		return
	}

	tweet.Content = body.Content
	tweet.UpdatedAt = time.Now()
	if err := h.DB.Save(tweet).Error; err != nil {
		respondError(c, errInternal(err, "failed to update tweet"))
		return
	}
	respondData(c, http.StatusOK, tweet, "tweet updated successfully")
}

// DeleteTweet removes a tweet. Only the owner may delete.
func (h *Handler) DeleteTweet(c *gin.Context) {
	tweet, err := h.getTweet(c.Param("tweetId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if tweet.OwnerID != currentUserId(c) {
		respondError(c, errForbidden("you don't have permission to delete this tweet"))
		return
	}
	if err := h.DB.Delete(tweet).Error; err != nil {
		respondError(c, errInternal(err, "failed to delete tweet"))
		return
	}
	respondData(c, http.StatusOK, nil, "tweet deleted successfully")
}
