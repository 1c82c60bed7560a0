package handler

import (
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
	"github.com/streamtube-app/streamtube/model"
	"github.com/streamtube-app/streamtube/pagination"
	Logger "github.com/streamtube-app/streamtube/utils/log"
)

// ChannelProfile is the public channel page payload: the user projection
// plus the aggregates derived from the subscription table. The copy from
// the model goes through an explicit allowlist of fields, sensitive columns
// have no counterpart here.
type ChannelProfile struct {
	Id                string    `json:"id"`
	CreatedAt         time.Time `json:"createdAt"`
	Username          string    `json:"username"`
	FullName          string    `json:"fullName"`
	AvatarUrl         string    `json:"avatarUrl"`
	CoverImageUrl     string    `json:"coverImageUrl"`
	SubscriberCount   int64     `json:"subscriberCount"`
	SubscribedToCount int64     `json:"subscribedToCount"`
	IsSubscribed      bool      `json:"isSubscribed"`
}

// HistoryEntry is one watched video with the time of the most recent watch.
type HistoryEntry struct {
	VideoView
	WatchedAt time.Time `json:"watchedAt"`
}

// GetChannelProfile serves a channel page by username.
func (h *Handler) GetChannelProfile(c *gin.Context) {
	user, err := h.getUserByUsername(c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}

	var profile ChannelProfile
	if err := copier.Copy(&profile, user); err != nil {
		respondError(c, errInternal(err, "failed to project channel profile"))
		return
	}

	subCounts, err := pagination.SubscriberCounts(h.DB, []string{user.Id})
	if err != nil {
		respondError(c, errInternal(err, "failed to count subscribers"))
		return
	}
	profile.SubscriberCount = subCounts[user.Id]

	err = h.DB.Model(&model.Subscription{}).
		Where("subscriber_id = ?", user.Id).
		Count(&profile.SubscribedToCount).Error
	if err != nil {
		respondError(c, errInternal(err, "failed to count subscriptions"))
		return
	}

	if viewerId := currentUserId(c); viewerId != "" && viewerId != user.Id {
		var n int64
		err := h.DB.Model(&model.Subscription{}).
			Where("subscriber_id = ? AND channel_id = ?", viewerId, user.Id).
			Count(&n).Error
		if err != nil {
			respondError(c, errInternal(err, "failed to resolve subscription"))
			return
		}
		profile.IsSubscribed = n > 0
	}

	respondData(c, http.StatusOK, profile, "channel fetched")
}

// UpdateAccountDetails edits the caller's display name and email. The
// username is the stable channel handle and cannot change here.
func (h *Handler) UpdateAccountDetails(c *gin.Context) {
	userId := currentUserId(c)

	var body struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, errValidation("invalid request body"))
		return
	}
	body.FullName = strings.TrimSpace(body.FullName)
	body.Email = strings.TrimSpace(body.Email)
	if body.FullName == "" || body.Email == "" {
		respondError(c, errValidation("fullName and email are required"))
		return
	}

	user, err := h.getUserById(userId)
	if err != nil {
		respondError(c, err)
		return
	}
	user.FullName = body.FullName
	user.Email = body.Email
	if err := h.DB.Save(user).Error; err != nil {
		respondError(c, errInternal(err, "failed to update account details"))
		return
	}
	respondData(c, http.StatusOK, user, "account details updated")
}

// UpdateAvatar replaces the caller's profile image.
func (h *Handler) UpdateAvatar(c *gin.Context) {
	h.updateUserImage(c, "avatar")
}

// UpdateCoverImage replaces the caller's channel banner.
func (h *Handler) UpdateCoverImage(c *gin.Context) {
	h.updateUserImage(c, "coverImage")
}

func (h *Handler) updateUserImage(c *gin.Context, field string) {
	userId := currentUserId(c)

	header, err := c.FormFile(field)
	if err != nil {
		respondError(c, errValidation(field+" is required"))
		return
	}
	key, err := h.saveUpload(header, "")
	if err != nil {
		respondError(c, errInternal(err, "failed to store "+field))
		return
	}

	user, err := h.getUserById(userId)
	if err != nil {
		respondError(c, err)
		return
	}

	var old string
	url := h.Media.GetUrlFromKey(key)
	if field == "avatar" {
		old = user.AvatarUrl
		user.AvatarUrl = url
	} else {
		old = user.CoverImageUrl
		user.CoverImageUrl = url
	}
	if err := h.DB.Save(user).Error; err != nil {
		respondError(c, errInternal(err, "failed to update "+field))
		return
	}

	// Best-effort cleanup of the replaced object. The media key is the
	// last segment of the stored url.
	if old != "" {
		if oldKey := path.Base(old); oldKey != "." && oldKey != "/" {
			if err := h.Media.Delete(oldKey); err != nil {
				Logger.Log.Warn("fail to delete old "+field+": ", err)
			}
		}
	}

	respondData(c, http.StatusOK, user, field+" updated")
}

// GetWatchHistory lists the caller's watched videos, most recent watch
// first. Re-watches surface once, at their latest position.
func (h *Handler) GetWatchHistory(c *gin.Context) {
	userId := currentUserId(c)

	limit, err := parseLimit(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if limit > pagination.MaxLimit {
		limit = pagination.MaxLimit
	}

	var entries []model.WatchHistory
	err = h.DB.Where("user_id = ?", userId).
		Order("watched_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		respondError(c, errInternal(err, "failed to load watch history"))
		return
	}
	if len(entries) == 0 {
		respondData(c, http.StatusOK, []HistoryEntry{}, "watch history fetched")
		return
	}

	videoIds := make([]string, len(entries))
	watchedAt := make(map[string]time.Time, len(entries))
	for i, e := range entries {
		videoIds[i] = e.VideoID
		watchedAt[e.VideoID] = e.WatchedAt
	}

	var videos []model.Video
	if err := h.DB.Where("id IN ?", videoIds).Find(&videos).Error; err != nil {
		respondError(c, errInternal(err, "failed to load watched videos"))
		return
	}
	views, err := h.enrichVideos(videos, userId)
	if err != nil {
		respondError(c, err)
		return
	}

	byId := make(map[string]VideoView, len(views))
	for _, v := range views {
		byId[v.Id] = v
	}
	out := make([]HistoryEntry, 0, len(entries))
	for _, e := range entries {
		view, ok := byId[e.VideoID]
		if !ok {
			continue
		}
		out = append(out, HistoryEntry{VideoView: view, WatchedAt: watchedAt[e.VideoID]})
	}
	respondData(c, http.StatusOK, out, "watch history fetched")
}
