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

// ToggleSubscription subscribes the caller to a channel, or unsubscribes if
// already subscribed. Subscribing to one's own channel is rejected.
func (h *Handler) ToggleSubscription(c *gin.Context) {
	userId := currentUserId(c)
	channel, err := h.getUserByUsername(c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	if channel.Id == userId {
		respondError(c, errValidation("you cannot subscribe to your own channel"))
		return
	}

	var existing model.Subscription
	err = h.DB.Where("subscriber_id = ? AND channel_id = ?", userId, channel.Id).
		First(&existing).Error
	var subscribed bool
	switch {
	case err == nil:
		if err := h.DB.Delete(&existing).Error; err != nil {
			respondError(c, errInternal(err, "failed to unsubscribe"))
			return
		}
		subscribed = false
	case errors.Is(err, gorm.ErrRecordNotFound):
		sub := model.Subscription{
			Id:           uuid.New().String(),
			SubscriberID: userId,
			ChannelID:    channel.Id,
		}
		if err := h.DB.Create(&sub).Error; err != nil {
			respondError(c, errInternal(err, "failed to subscribe"))
			return
		}
		subscribed = true
	default:
		respondError(c, errInternal(err, "failed to resolve subscription"))
		return
	}

	h.Events.SubscriptionToggled(events.SubscriptionToggledEvent{
		SubscriberId: userId,
		ChannelId:    channel.Id,
		Subscribed:   subscribed,
		ToggledAt:    time.Now(),
	})

	respondData(c, http.StatusOK, gin.H{"isSubscribed": subscribed}, "subscription toggled")
}

// GetChannelSubscribers lists the users subscribed to a channel, projected
// through the owner allowlist.
func (h *Handler) GetChannelSubscribers(c *gin.Context) {
	channel, err := h.getUserByUsername(c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}

	var subscriberIds []string
	err = h.DB.Model(&model.Subscription{}).
		Where("channel_id = ?", channel.Id).
		Order("created_at DESC").
		Pluck("subscriber_id", &subscriberIds).Error
	if err != nil {
		respondError(c, errInternal(err, "failed to load subscribers"))
		return
	}

	owners, err := pagination.Owners(h.DB, subscriberIds)
	if err != nil {
		respondError(c, errInternal(err, "failed to resolve subscribers"))
		return
	}
	out := make([]pagination.Owner, len(subscriberIds))
	for i, id := range subscriberIds {
		out[i] = owners[id]
	}
	respondData(c, http.StatusOK, out, "subscribers fetched")
}

// GetSubscribedChannels lists the channels the caller subscribes to.
func (h *Handler) GetSubscribedChannels(c *gin.Context) {
	userId := currentUserId(c)

	var channelIds []string
	err := h.DB.Model(&model.Subscription{}).
		Where("subscriber_id = ?", userId).
		Order("created_at DESC").
		Pluck("channel_id", &channelIds).Error
	if err != nil {
		respondError(c, errInternal(err, "failed to load subscriptions"))
		return
	}

	owners, err := pagination.Owners(h.DB, channelIds)
	if err != nil {
		respondError(c, errInternal(err, "failed to resolve channels"))
		return
	}
	out := make([]pagination.Owner, len(channelIds))
	for i, id := range channelIds {
		out[i] = owners[id]
	}
	respondData(c, http.StatusOK, out, "subscribed channels fetched")
}
