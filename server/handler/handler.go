// Package handler implements the REST surface of the platform. Handlers
// validate input, drive the pagination engine and the aggregation joins, and
// translate store failures into the API error taxonomy; they never leak raw
// driver errors to clients.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/streamtube-app/streamtube/events"
	"github.com/streamtube-app/streamtube/media"
	"github.com/streamtube-app/streamtube/model"
	"github.com/streamtube-app/streamtube/pagination"
	"github.com/streamtube-app/streamtube/server/middlewares"
	"github.com/streamtube-app/streamtube/utils"
	Logger "github.com/streamtube-app/streamtube/utils/log"
	"gorm.io/gorm"
)

type Handler struct {
	DB       *gorm.DB
	Media    media.Store
	Events   *events.Publisher
	Progress *utils.UploadProgressStore
}

func New(db *gorm.DB, store media.Store, publisher *events.Publisher, progress *utils.UploadProgressStore) *Handler {
	return &Handler{
		DB:       db,
		Media:    store,
		Events:   publisher,
		Progress: progress,
	}
}

// apiError is the taxonomy every failure is translated into before leaving
// the handler layer: validation (400), unauthorized (401), forbidden (403),
// not found (404), infrastructure (500).
type apiError struct {
	status  int
	message string
	cause   error
}

func (e *apiError) Error() string { return e.message }

func (e *apiError) Unwrap() error { return e.cause }

func errValidation(message string) *apiError {
	return &apiError{status: http.StatusBadRequest, message: message}
}

func errNotFound(message string) *apiError {
	return &apiError{status: http.StatusNotFound, message: message}
}

func errForbidden(message string) *apiError {
	return &apiError{status: http.StatusForbidden, message: message}
}

func errInternal(cause error, message string) *apiError {
	return &apiError{status: http.StatusInternalServerError, message: message, cause: cause}
}

// respondError writes the error envelope. Infrastructure causes are logged
// server side; the client only ever sees the sanitized message.
func respondError(c *gin.Context, err error) {
	var apiErr *apiError
	if !errors.As(err, &apiErr) {
		apiErr = errInternal(err, "internal server error")
	}
	if apiErr.cause != nil {
		Logger.Log.Error(apiErr.message, ": ", apiErr.cause)
	}
	c.JSON(apiErr.status, gin.H{
		"statusCode": apiErr.status,
		"message":    apiErr.message,
	})
}

func respondData(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, gin.H{
		"statusCode": status,
		"data":       data,
		"message":    message,
	})
}

// respondPage writes the pagination envelope: items, hasMore, nextCursor,
// and totalCount on the first page only.
func respondPage(c *gin.Context, items interface{}, hasMore bool, nextCursor *string, totalCount *int64) {
	res := gin.H{
		"items":      items,
		"hasMore":    hasMore,
		"nextCursor": nextCursor,
	}
	if totalCount != nil {
		res["totalCount"] = *totalCount
	}
	c.JSON(http.StatusOK, res)
}

func currentUserId(c *gin.Context) string {
	return middlewares.CurrentUserId(c)
}

// parseLimit reads the limit query param. Absent means default; present but
// non-numeric or non-positive is a validation error. The ceiling is enforced
// later by the paginator.
func parseLimit(c *gin.Context) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return pagination.DefaultLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, errValidation("invalid limit")
	}
	return limit, nil
}

// lenientCursor decodes the cursor query param, falling back to first-page
// semantics when the token is malformed. List endpoints whose cursor is a
// pure position token use this policy.
func lenientCursor(c *gin.Context) *pagination.Cursor {
	token := c.Query("cursor")
	if token == "" {
		return nil
	}
	cursor, err := pagination.Decode(token)
	if err != nil {
		return nil
	}
	return &cursor
}

// strictCursor decodes the cursor query param and reports a malformed token
// as a validation error. Endpoints whose cursor references a concrete entity
// (the channel videos listing) use this policy.
func strictCursor(c *gin.Context) (*pagination.Cursor, error) {
	token := c.Query("cursor")
	if token == "" {
		return nil, nil
	}
	cursor, err := pagination.Decode(token)
	if err != nil {
		return nil, errValidation("invalid cursor")
	}
	return &cursor, nil
}

// pageError translates a pagination failure. A cursor that decoded but does
// not match the requested sort order is the client's mistake, not an
// infrastructure fault.
func pageError(err error, message string) error {
	if errors.Is(err, pagination.ErrInvalidCursor) {
		return errValidation("invalid cursor")
	}
	return errInternal(err, message)
}

// getVideo loads a video or reports 404. Unpublished videos are only visible
// to their owner.
func (h *Handler) getVideo(videoId string, viewerId string) (*model.Video, error) {
	var video model.Video
	err := h.DB.Where("id = ?", videoId).First(&video).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errNotFound("video not found")
	}
	if err != nil {
		return nil, errInternal(err, "failed to load video")
	}
	if !video.IsPublished && video.OwnerID != viewerId {
		return nil, errNotFound("video not found")
	}
	return &video, nil
}

func (h *Handler) getUserById(userId string) (*model.User, error) {
	var user model.User
	err := h.DB.Where("id = ?", userId).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errNotFound("user not found")
	}
	if err != nil {
		return nil, errInternal(err, "failed to load user")
	}
	return &user, nil
}

func (h *Handler) getUserByUsername(username string) (*model.User, error) {
	var user model.User
	err := h.DB.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errNotFound("user not found")
	}
	if err != nil {
		return nil, errInternal(err, "failed to load user")
	}
	return &user, nil
}
