package handler

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/streamtube-app/streamtube/model"
	"github.com/streamtube-app/streamtube/utils"
	"github.com/stretchr/testify/require"
)

func TestGetUserTweetsPaginationWalk(t *testing.T) {
	router, db, _ := newTestServer(t)
	owner := utils.TestCreateUser(t, db, "poster")
	for i := 1; i <= 3; i++ {
		utils.TestCreateTweet(t, db, owner.Id, fmt.Sprintf("t%d", i))
	}

	w := doRequest(t, router, http.MethodGet, "/api/v1/tweets/user/poster?limit=2", "", nil)
	page := decodePage(t, w)
	require.Equal(t, []string{"t3", "t2"}, itemContents(page))
	require.True(t, page.HasMore)
	require.EqualValues(t, 3, *page.TotalCount)

	w = doRequest(t, router, http.MethodGet, "/api/v1/tweets/user/poster?limit=2&cursor="+*page.NextCursor, "", nil)
	page = decodePage(t, w)
	require.Equal(t, []string{"t1"}, itemContents(page))
	require.False(t, page.HasMore)
}

func TestGetUserTweetsUnknownUser(t *testing.T) {
	router, _, _ := newTestServer(t)
	w := doRequest(t, router, http.MethodGet, "/api/v1/tweets/user/nobody", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateTweetValidation(t *testing.T) {
	router, db, _ := newTestServer(t)
	owner := utils.TestCreateUser(t, db, "poster")
	token := signTestToken(t, owner.Id)

	w := doRequest(t, router, http.MethodPost, "/api/v1/tweets", token, contentBody{Content: "hello world"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doRequest(t, router, http.MethodPost, "/api/v1/tweets", token, contentBody{Content: strings.Repeat("y", 281)})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/v1/tweets", token, contentBody{Content: ""})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	require.NoError(t, db.Model(&model.Tweet{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestUpdateDeleteTweetOwnership(t *testing.T) {
	router, db, _ := newTestServer(t)
	owner := utils.TestCreateUser(t, db, "poster")
	intruder := utils.TestCreateUser(t, db, "intruder")
	tweet := utils.TestCreateTweet(t, db, owner.Id, "original")
	path := "/api/v1/tweets/" + tweet.Id

	w := doRequest(t, router, http.MethodPatch, path, signTestToken(t, intruder.Id), contentBody{Content: "hijacked"})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, router, http.MethodPatch, path, signTestToken(t, owner.Id), contentBody{Content: "edited"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodDelete, path, signTestToken(t, owner.Id), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&model.Tweet{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}
