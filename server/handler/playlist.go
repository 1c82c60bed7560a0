package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/streamtube-app/streamtube/model"
	"gorm.io/gorm"
)

type playlistBody struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreatePlaylist creates an empty playlist owned by the caller.
func (h *Handler) CreatePlaylist(c *gin.Context) {
	var body playlistBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, errValidation("invalid request body"))
		return
	}
	if strings.TrimSpace(body.Name) == "" {
		respondError(c, errValidation("name is required"))
		return
	}

	playlist := model.Playlist{
		Id:          uuid.New().String(),
		Name:        body.Name,
		Description: body.Description,
		OwnerID:     currentUserId(c),
	}
	if err := h.DB.Create(&playlist).Error; err != nil {
		respondError(c, errInternal(err, "failed to create playlist"))
		return
	}
	respondData(c, http.StatusCreated, playlist, "playlist created successfully")
}

// GetMyPlaylists lists the caller's playlists, newest first.
func (h *Handler) GetMyPlaylists(c *gin.Context) {
	var playlists []model.Playlist
	err := h.DB.Where("owner_id = ?", currentUserId(c)).
		Order("created_at DESC").
		Find(&playlists).Error
	if err != nil {
		respondError(c, errInternal(err, "failed to load playlists"))
		return
	}
	respondData(c, http.StatusOK, playlists, "playlists fetched")
}

func (h *Handler) getPlaylist(playlistId string, withVideos bool) (*model.Playlist, error) {
	var playlist model.Playlist
	query := h.DB
	if withVideos {
		query = query.Preload("Videos")
	}
	err := query.Where("id = ?", playlistId).First(&playlist).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errNotFound("playlist not found")
	}
	if err != nil {
		return nil, errInternal(err, "failed to load playlist")
	}
	return &playlist, nil
}

// GetPlaylist serves one playlist with its videos.
func (h *Handler) GetPlaylist(c *gin.Context) {
	playlist, err := h.getPlaylist(c.Param("playlistId"), true)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, playlist, "playlist fetched")
}

// UpdatePlaylist edits name and description. Only the owner may edit.
func (h *Handler) UpdatePlaylist(c *gin.Context) {
	playlist, err := h.getPlaylist(c.Param("playlistId"), false)
	if err != nil {
		respondError(c, err)
		return
	}
	if playlist.OwnerID != currentUserId(c) {
		respondError(c, errForbidden("you don't have permission to update this playlist"))
		return
	}

	var body playlistBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, errValidation("invalid request body"))
		return
	}
	if strings.TrimSpace(body.Name) == "" {
		respondError(c, errValidation("name is required"))
		return
	}

	playlist.Name = body.Name
	playlist.Description = body.Description
	playlist.UpdatedAt = time.Now()
	if err := h.DB.Save(playlist).Error; err != nil {
		respondError(c, errInternal(err, "failed to update playlist"))
		return
	}
	respondData(c, http.StatusOK, playlist, "playlist updated successfully")
}

// DeletePlaylist removes a playlist, leaving its videos untouched. Only the
// owner may delete.
func (h *Handler) DeletePlaylist(c *gin.Context) {
	playlist, err := h.getPlaylist(c.Param("playlistId"), false)
	if err != nil {
		respondError(c, err)
		return
	}
	if playlist.OwnerID != currentUserId(c) {
		respondError(c, errForbidden("you don't have permission to delete this playlist"))
		return
	}
	if err := h.DB.Select("Videos").Delete(playlist).Error; err != nil {
		respondError(c, errInternal(err, "failed to delete playlist"))
		return
	}
	respondData(c, http.StatusOK, nil, "playlist deleted successfully")
}

// AddVideoToPlaylist appends a video to a playlist. Only the owner may
// modify the playlist's content.
func (h *Handler) AddVideoToPlaylist(c *gin.Context) {
	userId := currentUserId(c)
	playlist, err := h.getPlaylist(c.Param("playlistId"), false)
	if err != nil {
		respondError(c, err)
		return
	}
	if playlist.OwnerID != userId {
		respondError(c, errForbidden("you don't have permission to modify this playlist"))
		return
	}
	video, err := h.getVideo(c.Param("videoId"), userId)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.DB.Model(playlist).Association("Videos").Append(video); err != nil {
		respondError(c, errInternal(err, "failed to add video to playlist"))
		return
	}
	respondData(c, http.StatusOK, nil, "video added to playlist")
}

// RemoveVideoFromPlaylist removes a video from a playlist.
func (h *Handler) RemoveVideoFromPlaylist(c *gin.Context) {
	userId := currentUserId(c)
	playlist, err := h.getPlaylist(c.Param("playlistId"), false)
	if err != nil {
		respondError(c, err)
		return
	}
	if playlist.OwnerID != userId {
		respondError(c, errForbidden("you don't have permission to modify this playlist"))
		return
	}
	video, err := h.getVideo(c.Param("videoId"), userId)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.DB.Model(playlist).Association("Videos").Delete(video); err != nil {
		respondError(c, errInternal(err, "failed to remove video from playlist"))
		return
	}
	respondData(c, http.StatusOK, nil, "video removed from playlist")
}
