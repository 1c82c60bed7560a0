package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetUploadProgress serves the recorded progress of one in-flight upload.
// An upload the store has never seen reports zero percent rather than 404,
// the client may poll before the first chunk lands.
func (h *Handler) GetUploadProgress(c *gin.Context) {
	if h.Progress == nil {
		respondError(c, errNotFound("upload progress tracking is not enabled"))
		return
	}
	percent, found, err := h.Progress.GetProgress(c.Param("uploadId"))
	if err != nil {
		respondError(c, errInternal(err, "failed to load upload progress"))
		return
	}
	respondData(c, http.StatusOK, gin.H{
		"uploadId": c.Param("uploadId"),
		"percent":  percent,
		"tracked":  found,
	}, "upload progress fetched")
}
