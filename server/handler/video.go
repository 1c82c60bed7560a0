package handler

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/streamtube-app/streamtube/events"
	"github.com/streamtube-app/streamtube/model"
	"github.com/streamtube-app/streamtube/pagination"
	Logger "github.com/streamtube-app/streamtube/utils/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VideoView is one enriched video as it appears in list responses.
type VideoView struct {
	model.Video
	Owner      pagination.Owner `json:"owner"`
	LikesCount int64            `json:"likesCount"`
	IsLiked    bool             `json:"isLiked"`
}

// VideoDetail is the aggregated single-video payload. On top of the list
// fields it resolves the owner's subscriber count and whether the viewer
// subscribes to the channel.
type VideoDetail struct {
	VideoView
	SubscriberCount int64 `json:"subscriberCount"`
	IsSubscribed    bool  `json:"isSubscribed"`
}

// mediaMeta is the persisted shape of Video.MediaMetadata. It keeps the raw
// store keys so deletion can address the objects directly.
type mediaMeta struct {
	VideoKey     string `json:"videoKey"`
	ThumbnailKey string `json:"thumbnailKey"`
	UploadId     string `json:"uploadId"`
	VideoSize    int64  `json:"videoSize"`
}

func (h *Handler) enrichVideos(videos []model.Video, viewerId string) ([]VideoView, error) {
	ids := make([]string, len(videos))
	ownerIds := make([]string, len(videos))
	for i, video := range videos {
		ids[i] = video.Id
		ownerIds[i] = video.OwnerID
	}

	owners, err := pagination.Owners(h.DB, ownerIds)
	if err != nil {
		return nil, errInternal(err, "failed to resolve video owners")
	}
	counts, err := pagination.LikeCounts(h.DB, pagination.LikeTargetVideo, ids)
	if err != nil {
		return nil, errInternal(err, "failed to count video likes")
	}
	liked, err := pagination.LikedSet(h.DB, pagination.LikeTargetVideo, ids, viewerId)
	if err != nil {
		return nil, errInternal(err, "failed to resolve viewer likes")
	}

	views := make([]VideoView, len(videos))
	for i, video := range videos {
		views[i] = VideoView{
			Video:      video,
			Owner:      owners[video.OwnerID],
			LikesCount: counts[video.Id],
			IsLiked:    liked[video.Id],
		}
	}
	return views, nil
}

func parseSortOrder(c *gin.Context) (pagination.Order, error) {
	switch c.DefaultQuery("sortBy", "newest") {
	case "newest":
		return pagination.NewestFirst, nil
	case "oldest":
		return pagination.OldestFirst, nil
	case "views":
		return pagination.MostViewed, nil
	default:
		return 0, errValidation("invalid sortBy, expected newest, oldest or views")
	}
}

// GetAllVideos serves one page of the published catalog, optionally filtered
// by a search term and re-sorted. A malformed cursor falls back to the first
// page.
func (h *Handler) GetAllVideos(c *gin.Context) {
	limit, err := parseLimit(c)
	if err != nil {
		respondError(c, err)
		return
	}
	order, err := parseSortOrder(c)
	if err != nil {
		respondError(c, err)
		return
	}

	spec := pagination.NewQuerySpec().
		WhereEq("is_published", true).
		OrderBy(order).
		Limit(limit).
		Cursor(lenientCursor(c))
	if query := strings.TrimSpace(c.Query("query")); query != "" {
		spec.Search(query, "title", "description")
	}

	page, err := pagination.Paginate[model.Video](h.DB, spec)
	if err != nil {
		respondError(c, pageError(err, "failed to load videos"))
		return
	}

	views, err := h.enrichVideos(page.Items, currentUserId(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, views, page.HasMore, page.NextCursor, page.TotalCount)
}

// GetChannelVideos serves one page of a channel's videos, newest first. The
// channel page cursor references a concrete video, so a malformed or
// mismatched token is a client error, not a silent reset.
func (h *Handler) GetChannelVideos(c *gin.Context) {
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
	cursor, err := strictCursor(c)
	if err != nil {
		respondError(c, err)
		return
	}

	spec := pagination.NewQuerySpec().
		WhereEq("owner_id", user.Id).
		OrderBy(pagination.NewestFirst).
		Limit(limit).
		Cursor(cursor)
	if user.Id != currentUserId(c) {
		spec.WhereEq("is_published", true)
	}

	page, err := pagination.Paginate[model.Video](h.DB, spec)
	if err != nil {
		respondError(c, pageError(err, "failed to load channel videos"))
		return
	}

	views, err := h.enrichVideos(page.Items, currentUserId(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, views, page.HasMore, page.NextCursor, page.TotalCount)
}

// progressReader reports whole-percent progress of one multipart upload into
// the progress store while the media store drains it.
type progressReader struct {
	inner   io.Reader
	total   int64
	read    int64
	lastPct int
	store   *uploadProgress
}

type uploadProgress struct {
	handler  *Handler
	uploadId string
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.inner.Read(b)
	p.read += int64(n)
	if p.total > 0 && p.store != nil {
		pct := int(p.read * 100 / p.total)
		if pct > p.lastPct {
			p.lastPct = pct
			p.store.set(pct)
		}
	}
	return n, err
}

func (u *uploadProgress) set(percent int) {
	if u.handler.Progress == nil {
		return
	}
	if err := u.handler.Progress.SetProgress(u.uploadId, percent); err != nil {
		Logger.Log.Warn("fail to record upload progress: ", err)
	}
}

func (h *Handler) saveUpload(header *multipart.FileHeader, uploadId string) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	var body io.Reader = file
	if uploadId != "" {
		body = &progressReader{
			inner: file,
			total: header.Size,
			store: &uploadProgress{handler: h, uploadId: uploadId},
		}
	}
	return h.Media.Save(header.Filename, body)
}

// PublishVideo ingests one multipart upload: the video file, its thumbnail,
// title and description. The response includes the upload id the client used
// for progress polling.
func (h *Handler) PublishVideo(c *gin.Context) {
	userId := currentUserId(c)

	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		respondError(c, errValidation("title is required"))
		return
	}

	videoHeader, err := c.FormFile("videoFile")
	if err != nil {
		respondError(c, errValidation("videoFile is required"))
		return
	}
	thumbHeader, err := c.FormFile("thumbnail")
	if err != nil {
		respondError(c, errValidation("thumbnail is required"))
		return
	}

	uploadId := c.PostForm("uploadId")
	if uploadId == "" {
		uploadId = uuid.New().String()
	}

	videoKey, err := h.saveUpload(videoHeader, uploadId)
	if err != nil {
		respondError(c, errInternal(err, "failed to store video file"))
		return
	}
	thumbKey, err := h.saveUpload(thumbHeader, "")
	if err != nil {
		respondError(c, errInternal(err, "failed to store thumbnail"))
		return
	}
	if h.Progress != nil {
		if err := h.Progress.ClearProgress(uploadId); err != nil {
			Logger.Log.Warn("fail to clear upload progress: ", err)
		}
	}

	meta, err := json.Marshal(mediaMeta{
		VideoKey:     videoKey,
		ThumbnailKey: thumbKey,
		UploadId:     uploadId,
		VideoSize:    videoHeader.Size,
	})
	if err != nil {
		respondError(c, errInternal(err, "failed to encode media metadata"))
		return
	}

	video := model.Video{
		Id:            uuid.New().String(),
		Title:         title,
		Description:   c.PostForm("description"),
		VideoUrl:      h.Media.GetUrlFromKey(videoKey),
		ThumbnailUrl:  h.Media.GetUrlFromKey(thumbKey),
		Duration:      c.PostForm("duration"),
		IsPublished:   true,
		OwnerID:       userId,
		MediaMetadata: datatypes.JSON(meta),
	}
	if err := h.DB.Create(&video).Error; err != nil {
		respondError(c, errInternal(err, "failed to create video"))
		return
	}

	h.Events.VideoPublished(events.VideoPublishedEvent{
		VideoId:     video.Id,
		OwnerId:     userId,
		Title:       video.Title,
		PublishedAt: video.CreatedAt,
	})

	respondData(c, http.StatusCreated, gin.H{
		"video":    video,
		"uploadId": uploadId,
	}, "video published successfully")
}

// GetVideoById serves the aggregated video detail, counts the view and
// records the watch in the viewer's history.
func (h *Handler) GetVideoById(c *gin.Context) {
	viewerId := currentUserId(c)
	video, err := h.getVideo(c.Param("videoId"), viewerId)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.DB.Model(video).
		UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
		respondError(c, errInternal(err, "failed to count view"))
		return
	}
	video.Views++

	if viewerId != "" {
		history := model.WatchHistory{
			UserID:    viewerId,
			VideoID:   video.Id,
			WatchedAt: time.Now(),
		}
		err := h.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"watched_at"}),
		}).Create(&history).Error
		if err != nil {
			Logger.Log.Warn("fail to record watch history: ", err)
		}
	}

	views, err := h.enrichVideos([]model.Video{*video}, viewerId)
	if err != nil {
		respondError(c, err)
		return
	}

	subCounts, err := pagination.SubscriberCounts(h.DB, []string{video.OwnerID})
	if err != nil {
		respondError(c, errInternal(err, "failed to count subscribers"))
		return
	}
	detail := VideoDetail{
		VideoView:       views[0],
		SubscriberCount: subCounts[video.OwnerID],
	}
	if viewerId != "" {
		var n int64
		err := h.DB.Model(&model.Subscription{}).
			Where("subscriber_id = ? AND channel_id = ?", viewerId, video.OwnerID).
			Count(&n).Error
		if err != nil {
			respondError(c, errInternal(err, "failed to resolve subscription"))
			return
		}
		detail.IsSubscribed = n > 0
	}

	respondData(c, http.StatusOK, detail, "video fetched")
}

// UpdateVideo edits title and description. Only the owner may edit.
func (h *Handler) UpdateVideo(c *gin.Context) {
	userId := currentUserId(c)
	video, err := h.getVideo(c.Param("videoId"), userId)
	if err != nil {
		respondError(c, err)
		return
	}
	if video.OwnerID != userId {
		respondError(c, errForbidden("you don't have permission to update this video"))
		return
	}

	var body struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, errValidation("invalid request body"))
		return
	}
	if body.Title != nil {
		if strings.TrimSpace(*body.Title) == "" {
			respondError(c, errValidation("title cannot be empty"))
			return
		}
		video.Title = *body.Title
	}
	if body.Description != nil {
		video.Description = *body.Description
	}
	video.UpdatedAt = time.Now()
	if err := h.DB.Save(video).Error; err != nil {
		respondError(c, errInternal(err, "failed to update video"))
		return
	}
	respondData(c, http.StatusOK, video, "video updated successfully")
}

// DeleteVideo removes a video together with its stored media. Only the owner
// may delete.
func (h *Handler) DeleteVideo(c *gin.Context) {
	userId := currentUserId(c)
	video, err := h.getVideo(c.Param("videoId"), userId)
	if err != nil {
		respondError(c, err)
		return
	}
	if video.OwnerID != userId {
		respondError(c, errForbidden("you don't have permission to delete this video"))
		return
	}

	if err := h.DB.Delete(video).Error; err != nil {
		respondError(c, errInternal(err, "failed to delete video"))
		return
	}

	// Media cleanup is best effort, the row is already gone.
	var meta mediaMeta
	if err := json.Unmarshal(video.MediaMetadata, &meta); err == nil {
		if meta.VideoKey != "" {
			if err := h.Media.Delete(meta.VideoKey); err != nil {
				Logger.Log.Warn("fail to delete video object: ", err)
			}
		}
		if meta.ThumbnailKey != "" {
			if err := h.Media.Delete(meta.ThumbnailKey); err != nil {
				Logger.Log.Warn("fail to delete thumbnail object: ", err)
			}
		}
	}

	h.Events.VideoDeleted(events.VideoDeletedEvent{
		VideoId:   video.Id,
		OwnerId:   userId,
		DeletedAt: time.Now(),
	})

	respondData(c, http.StatusOK, nil, "video deleted successfully")
}

// TogglePublishStatus flips a video between published and hidden. Only the
// owner may toggle.
func (h *Handler) TogglePublishStatus(c *gin.Context) {
	userId := currentUserId(c)
	video, err := h.getVideo(c.Param("videoId"), userId)
	if err != nil {
		respondError(c, err)
		return
	}
	if video.OwnerID != userId {
		respondError(c, errForbidden("you don't have permission to update this video"))
		return
	}

	video.IsPublished = !video.IsPublished
	if err := h.DB.Model(video).
		UpdateColumn("is_published", video.IsPublished).Error; err != nil {
		respondError(c, errInternal(err, "failed to toggle publish status"))
		return
	}
	respondData(c, http.StatusOK, gin.H{"isPublished": video.IsPublished}, "publish status toggled")
}
