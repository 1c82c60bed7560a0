package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/streamtube-app/streamtube/events"
	"github.com/streamtube-app/streamtube/model"
	"github.com/streamtube-app/streamtube/pagination"
	"gorm.io/gorm"
)

const maxContentLength = 280

// CommentView is one enriched comment as it appears in API responses.
type CommentView struct {
	model.Comment
	Owner      pagination.Owner `json:"owner"`
	LikesCount int64            `json:"likesCount"`
	IsLiked    bool             `json:"isLiked"`
}

type contentBody struct {
	Content string `json:"content"`
}

func validateContent(content string) error {
	// The limit counts characters, not bytes, so multi-byte text is not
	// penalized.
	if strings.TrimSpace(content) == "" || utf8.RuneCountInString(content) > maxContentLength {
		return errValidation("content is required and should be less than 280 characters")
	}
	return nil
}

// enrichComments attaches owner projections, like counts and the viewer's
// like status to a page of comments, preserving order.
func (h *Handler) enrichComments(comments []model.Comment, viewerId string) ([]CommentView, error) {
	ids := make([]string, len(comments))
	ownerIds := make([]string, len(comments))
	for i, comment := range comments {
		ids[i] = comment.Id
		ownerIds[i] = comment.OwnerID
	}

	owners, err := pagination.Owners(h.DB, ownerIds)
	if err != nil {
		return nil, errInternal(err, "failed to resolve comment owners")
	}
	counts, err := pagination.LikeCounts(h.DB, pagination.LikeTargetComment, ids)
	if err != nil {
		return nil, errInternal(err, "failed to count comment likes")
	}
	liked, err := pagination.LikedSet(h.DB, pagination.LikeTargetComment, ids, viewerId)
	if err != nil {
		return nil, errInternal(err, "failed to resolve viewer likes")
	}

	views := make([]CommentView, len(comments))
	for i, comment := range comments {
		views[i] = CommentView{
			Comment:    comment,
			Owner:      owners[comment.OwnerID],
			LikesCount: counts[comment.Id],
			IsLiked:    liked[comment.Id],
		}
	}
	return views, nil
}

// GetVideoComments serves one page of a video's comments, newest first.
// A malformed cursor falls back to the first page.
func (h *Handler) GetVideoComments(c *gin.Context) {
	viewerId := currentUserId(c)
	video, err := h.getVideo(c.Param("videoId"), viewerId)
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
		WhereEq("video_id", video.Id).
		OrderBy(pagination.NewestFirst).
		Limit(limit).
		Cursor(lenientCursor(c))

	page, err := pagination.Paginate[model.Comment](h.DB, spec)
	if err != nil {
		respondError(c, pageError(err, "failed to load comments"))
		return
	}

	views, err := h.enrichComments(page.Items, viewerId)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, views, page.HasMore, page.NextCursor, page.TotalCount)
}

// AddComment creates a comment on a video.
func (h *Handler) AddComment(c *gin.Context) {
	userId := currentUserId(c)
	video, err := h.getVideo(c.Param("videoId"), userId)
	if err != nil {
		respondError(c, err)
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

	comment := model.Comment{
		Id:      uuid.New().String(),
		Content: body.Content,
		VideoID: video.Id,
		OwnerID: userId,
	}
	if err := h.DB.Create(&comment).Error; err != nil {
		respondError(c, errInternal(err, "failed to create comment"))
		return
	}

	h.Events.CommentAdded(events.CommentAddedEvent{
		CommentId: comment.Id,
		VideoId:   video.Id,
		OwnerId:   userId,
		CreatedAt: comment.CreatedAt,
	})

	respondData(c, http.StatusCreated, comment, "comment created successfully")
}

func (h *Handler) getComment(commentId string) (*model.Comment, error) {
	var comment model.Comment
	err := h.DB.Where("id = ?", commentId).First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errNotFound("comment not found")
	}
	if err != nil {
		return nil, errInternal(err, "failed to load comment")
	}
	return &comment, nil
}

// GetComment serves one comment with its owner and like data resolved.
func (h *Handler) GetComment(c *gin.Context) {
	comment, err := h.getComment(c.Param("commentId"))
	if err != nil {
		respondError(c, err)
		return
	}
	views, err := h.enrichComments([]model.Comment{*comment}, currentUserId(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, views[0], "comment fetched")
}

// UpdateComment edits a comment's content. Only the owner may edit.
func (h *Handler) UpdateComment(c *gin.Context) {
	comment, err := h.getComment(c.Param("commentId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if comment.OwnerID != currentUserId(c) {
		respondError(c, errForbidden("you don't have permission to update this comment"))
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

	comment.Content = body.Content
	comment.UpdatedAt = time.Now()
	if err := h.DB.Save(comment).Error; err != nil {
		respondError(c, errInternal(err, "failed to update comment"))
		return
	}
	respondData(c, http.StatusOK, comment, "comment updated successfully")
}

// DeleteComment removes a comment. Only the owner may delete.
func (h *Handler) DeleteComment(c *gin.Context) {
	comment, err := h.getComment(c.Param("commentId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if comment.OwnerID != currentUserId(c) {
		respondError(c, errForbidden("you don't have permission to delete this comment"))
		return
	}
	if err := h.DB.Delete(comment).Error; err != nil {
		respondError(c, errInternal(err, "failed to delete comment"))
		return
	}
	respondData(c, http.StatusOK, nil, "comment deleted successfully")
}
