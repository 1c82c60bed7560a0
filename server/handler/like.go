package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/streamtube-app/streamtube/model"
	"github.com/streamtube-app/streamtube/pagination"
	"gorm.io/gorm"
)

// toggleLike flips the viewer's like on one target row. The like table's
// unique index on (liker, target) makes the toggle idempotent under races:
// a duplicate insert fails and the like stays singular.
func (h *Handler) toggleLike(c *gin.Context, like model.Like) {
	query := h.DB.Where("liked_by_id = ?", like.LikedByID)
	switch {
	case like.VideoID != nil:
		query = query.Where("video_id = ?", *like.VideoID)
	case like.CommentID != nil:
		query = query.Where("comment_id = ?", *like.CommentID)
	case like.TweetID != nil:
		query = query.Where("tweet_id = ?", *like.TweetID)
	}

	var existing model.Like
	err := query.First(&existing).Error
	switch {
	case err == nil:
		if err := h.DB.Delete(&existing).Error; err != nil {
			respondError(c, errInternal(err, "failed to remove like"))
			return
		}
		respondData(c, http.StatusOK, gin.H{"isLiked": false}, "like removed")
	case errors.Is(err, gorm.ErrRecordNotFound):
		like.Id = uuid.New().String()
		if err := h.DB.Create(&like).Error; err != nil {
			respondError(c, errInternal(err, "failed to create like"))
			return
		}
		respondData(c, http.StatusOK, gin.H{"isLiked": true}, "like added")
	default:
		respondError(c, errInternal(err, "failed to resolve like"))
	}
}

// ToggleVideoLike likes or un-likes a video for the caller.
func (h *Handler) ToggleVideoLike(c *gin.Context) {
	userId := currentUserId(c)
	video, err := h.getVideo(c.Param("videoId"), userId)
	if err != nil {
		respondError(c, err)
		return
	}
	h.toggleLike(c, model.Like{LikedByID: userId, VideoID: &video.Id})
}

// ToggleCommentLike likes or un-likes a comment for the caller.
func (h *Handler) ToggleCommentLike(c *gin.Context) {
	comment, err := h.getComment(c.Param("commentId"))
	if err != nil {
		respondError(c, err)
		return
	}
	h.toggleLike(c, model.Like{LikedByID: currentUserId(c), CommentID: &comment.Id})
}

// ToggleTweetLike likes or un-likes a tweet for the caller.
func (h *Handler) ToggleTweetLike(c *gin.Context) {
	tweet, err := h.getTweet(c.Param("tweetId"))
	if err != nil {
		respondError(c, err)
		return
	}
	h.toggleLike(c, model.Like{LikedByID: currentUserId(c), TweetID: &tweet.Id})
}

// GetLikedVideos serves one page of the videos the caller liked, newest
// first by the video's insert order.
func (h *Handler) GetLikedVideos(c *gin.Context) {
	userId := currentUserId(c)

	limit, err := parseLimit(c)
	if err != nil {
		respondError(c, err)
		return
	}

	spec := pagination.NewQuerySpec().
		WhereEq("is_published", true).
		OrderBy(pagination.NewestFirst).
		Limit(limit).
		Cursor(lenientCursor(c))

	scoped := h.DB.
		Joins("JOIN likes ON likes.video_id = videos.id AND likes.liked_by_id = ?", userId)

	page, err := pagination.Paginate[model.Video](scoped, spec)
	if err != nil {
		respondError(c, pageError(err, "failed to load liked videos"))
		return
	}

	views, err := h.enrichVideos(page.Items, userId)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, views, page.HasMore, page.NextCursor, page.TotalCount)
}
