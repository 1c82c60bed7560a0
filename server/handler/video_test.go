package handler

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/streamtube-app/streamtube/media"
	"github.com/streamtube-app/streamtube/model"
	"github.com/streamtube-app/streamtube/utils"
	"github.com/stretchr/testify/require"
)

func itemTitles(page pageResponse) []string {
	out := make([]string, len(page.Items))
	for i, item := range page.Items {
		out[i] = item["title"].(string)
	}
	return out
}

func TestGetAllVideosCatalog(t *testing.T) {
	router, db, _ := newTestServer(t)
	owner := utils.TestCreateUser(t, db, "owner")
	for i := 1; i <= 5; i++ {
		utils.TestCreateVideo(t, db, owner.Id, fmt.Sprintf("v%d", i), int64(i*10), true)
	}
	utils.TestCreateVideo(t, db, owner.Id, "draft", 0, false)

	w := doRequest(t, router, http.MethodGet, "/api/v1/videos?limit=4", "", nil)
	page := decodePage(t, w)
	require.Equal(t, []string{"v5", "v4", "v3", "v2"}, itemTitles(page))
	require.True(t, page.HasMore)
	require.EqualValues(t, 5, *page.TotalCount)

	w = doRequest(t, router, http.MethodGet, "/api/v1/videos?limit=4&cursor="+*page.NextCursor, "", nil)
	page = decodePage(t, w)
	require.Equal(t, []string{"v1"}, itemTitles(page))
	require.False(t, page.HasMore)
}

func TestGetAllVideosSearchAndSort(t *testing.T) {
	router, db, _ := newTestServer(t)
	owner := utils.TestCreateUser(t, db, "owner")
	utils.TestCreateVideo(t, db, owner.Id, "Go basics", 100, true)
	utils.TestCreateVideo(t, db, owner.Id, "Advanced go", 300, true)
	utils.TestCreateVideo(t, db, owner.Id, "Rust basics", 200, true)

	w := doRequest(t, router, http.MethodGet, "/api/v1/videos?query=go&sortBy=views", "", nil)
	page := decodePage(t, w)
	require.Equal(t, []string{"Advanced go", "Go basics"}, itemTitles(page))

	w = doRequest(t, router, http.MethodGet, "/api/v1/videos?sortBy=bogus", "", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

// The most-viewed cursor carries the compound (views, seq) position, so a
// walk across equal view counts neither skips nor repeats.
func TestGetAllVideosMostViewedWalk(t *testing.T) {
	router, db, _ := newTestServer(t)
	owner := utils.TestCreateUser(t, db, "owner")
	utils.TestCreateVideo(t, db, owner.Id, "a", 100, true)
	utils.TestCreateVideo(t, db, owner.Id, "b", 100, true)
	utils.TestCreateVideo(t, db, owner.Id, "c", 100, true)

	w := doRequest(t, router, http.MethodGet, "/api/v1/videos?sortBy=views&limit=2", "", nil)
	page := decodePage(t, w)
	require.Equal(t, []string{"c", "b"}, itemTitles(page))

	w = doRequest(t, router, http.MethodGet, "/api/v1/videos?sortBy=views&limit=2&cursor="+*page.NextCursor, "", nil)
	page = decodePage(t, w)
	require.Equal(t, []string{"a"}, itemTitles(page))
	require.False(t, page.HasMore)
}

// A cursor minted under one sort order cannot resume a session under
// another; the shape mismatch is the client's error.
func TestGetAllVideosCursorShapeMismatch(t *testing.T) {
	router, db, _ := newTestServer(t)
	owner := utils.TestCreateUser(t, db, "owner")
	utils.TestCreateVideo(t, db, owner.Id, "v1", 0, true)
	utils.TestCreateVideo(t, db, owner.Id, "v2", 0, true)

	w := doRequest(t, router, http.MethodGet, "/api/v1/videos?limit=1", "", nil)
	page := decodePage(t, w)
	require.NotNil(t, page.NextCursor)

	w = doRequest(t, router, http.MethodGet, "/api/v1/videos?sortBy=views&limit=1&cursor="+*page.NextCursor, "", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

// The channel videos cursor references a concrete position; a malformed
// token is a client error rather than a silent reset.
func TestGetChannelVideosStrictCursor(t *testing.T) {
	router, db, _ := newTestServer(t)
	owner := utils.TestCreateUser(t, db, "owner")
	utils.TestCreateVideo(t, db, owner.Id, "v1", 0, true)

	w := doRequest(t, router, http.MethodGet, "/api/v1/videos/channel/owner?cursor=%21%21garbage", "", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/v1/videos/channel/owner", "", nil)
	page := decodePage(t, w)
	require.Equal(t, []string{"v1"}, itemTitles(page))
}

// Drafts appear on the channel page only for the channel's own view.
func TestGetChannelVideosDraftVisibility(t *testing.T) {
	router, db, _ := newTestServer(t)
	owner := utils.TestCreateUser(t, db, "owner")
	utils.TestCreateVideo(t, db, owner.Id, "published", 0, true)
	utils.TestCreateVideo(t, db, owner.Id, "draft", 0, false)

	w := doRequest(t, router, http.MethodGet, "/api/v1/videos/channel/owner", "", nil)
	page := decodePage(t, w)
	require.Equal(t, []string{"published"}, itemTitles(page))

	w = doRequest(t, router, http.MethodGet, "/api/v1/videos/channel/owner", signTestToken(t, owner.Id), nil)
	page = decodePage(t, w)
	require.Equal(t, []string{"draft", "published"}, itemTitles(page))
}

func TestGetVideoByIdAggregatesAndCountsView(t *testing.T) {
	router, db, _ := newTestServer(t)
	owner := utils.TestCreateUser(t, db, "owner")
	fan := utils.TestCreateUser(t, db, "fan")
	video := utils.TestCreateVideo(t, db, owner.Id, "v", 10, true)
	utils.TestCreateVideoLike(t, db, video.Id, fan.Id)
	utils.TestCreateSubscription(t, db, fan.Id, owner.Id)

	w := doRequest(t, router, http.MethodGet, "/api/v1/videos/"+video.Id, signTestToken(t, fan.Id), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decodeData(t, w)
	require.EqualValues(t, 11, data["views"])
	require.EqualValues(t, 1, data["likesCount"])
	require.Equal(t, true, data["isLiked"])
	require.Equal(t, true, data["isSubscribed"])
	require.EqualValues(t, 1, data["subscriberCount"])
	require.Equal(t, "owner", data["owner"].(map[string]interface{})["username"])

	var history model.WatchHistory
	require.NoError(t, db.First(&history, "user_id = ? AND video_id = ?", fan.Id, video.Id).Error)
	first := history.WatchedAt

	// Re-watching refreshes the history entry instead of duplicating it.
	w = doRequest(t, router, http.MethodGet, "/api/v1/videos/"+video.Id, signTestToken(t, fan.Id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var count int64
	require.NoError(t, db.Model(&model.WatchHistory{}).Where("user_id = ?", fan.Id).Count(&count).Error)
	require.EqualValues(t, 1, count)
	require.NoError(t, db.First(&history, "user_id = ? AND video_id = ?", fan.Id, video.Id).Error)
	require.False(t, history.WatchedAt.Before(first))
}

func TestGetVideoByIdDraftHiddenFromOthers(t *testing.T) {
	router, db, _ := newTestServer(t)
	owner := utils.TestCreateUser(t, db, "owner")
	other := utils.TestCreateUser(t, db, "other")
	draft := utils.TestCreateVideo(t, db, owner.Id, "draft", 0, false)

	w := doRequest(t, router, http.MethodGet, "/api/v1/videos/"+draft.Id, signTestToken(t, other.Id), nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/v1/videos/"+draft.Id, signTestToken(t, owner.Id), nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func multipartUpload(t *testing.T, fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	for key, data := range files {
		part, err := writer.CreateFormFile(key, key+".bin")
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return buf, writer.FormDataContentType()
}

func TestPublishVideo(t *testing.T) {
	router, db, h := newTestServer(t)
	owner := utils.TestCreateUser(t, db, "owner")
	token := signTestToken(t, owner.Id)

	body, contentType := multipartUpload(t,
		map[string]string{"title": "my upload", "description": "desc"},
		map[string][]byte{"videoFile": []byte("video-bytes"), "thumbnail": []byte("thumb-bytes")},
	)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/videos", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var video model.Video
	require.NoError(t, db.First(&video, "owner_id = ?", owner.Id).Error)
	require.Equal(t, "my upload", video.Title)
	require.True(t, video.IsPublished)
	require.NotEmpty(t, video.VideoUrl)
	require.NotEmpty(t, video.ThumbnailUrl)

	// Both files landed in the media store.
	fake := h.Media.(*media.FakeStore)
	require.Len(t, fake.Files, 2)
}

func TestPublishVideoValidation(t *testing.T) {
	router, db, _ := newTestServer(t)
	owner := utils.TestCreateUser(t, db, "owner")
	token := signTestToken(t, owner.Id)

	// Missing title
	body, contentType := multipartUpload(t,
		map[string]string{},
		map[string][]byte{"videoFile": []byte("v"), "thumbnail": []byte("t")},
	)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/videos", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Missing video file
	body, contentType = multipartUpload(t,
		map[string]string{"title": "x"},
		map[string][]byte{"thumbnail": []byte("t")},
	)
	req = httptest.NewRequest(http.MethodPost, "/api/v1/videos", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateDeleteToggleVideo(t *testing.T) {
	router, db, _ := newTestServer(t)
	owner := utils.TestCreateUser(t, db, "owner")
	intruder := utils.TestCreateUser(t, db, "intruder")
	video := utils.TestCreateVideo(t, db, owner.Id, "v", 0, true)
	path := "/api/v1/videos/" + video.Id

	title := "renamed"
	w := doRequest(t, router, http.MethodPatch, path, signTestToken(t, intruder.Id), map[string]string{"title": title})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, router, http.MethodPatch, path, signTestToken(t, owner.Id), map[string]string{"title": title})
	require.Equal(t, http.StatusOK, w.Code)
	var updated model.Video
	require.NoError(t, db.First(&updated, "id = ?", video.Id).Error)
	require.Equal(t, title, updated.Title)

	w = doRequest(t, router, http.MethodPatch, "/api/v1/videos/toggle/publish/"+video.Id, signTestToken(t, owner.Id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, db.First(&updated, "id = ?", video.Id).Error)
	require.False(t, updated.IsPublished)

	w = doRequest(t, router, http.MethodDelete, path, signTestToken(t, owner.Id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	err := db.First(&updated, "id = ?", video.Id).Error
	require.Error(t, err)
}
