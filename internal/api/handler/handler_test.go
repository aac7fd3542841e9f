package handler_test

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"

	"vidverse/internal/api/dto"
	"vidverse/internal/api/middleware"
	"vidverse/internal/model"
	"vidverse/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthcheckEnvelope(t *testing.T) {
	s := newServer(t)
	w, env := s.do(http.MethodGet, "/api/v1/healthcheck", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", env.Message)
	assert.True(t, env.Success)
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	s := newServer(t)

	w, env := s.do(http.MethodGet, "/api/v1/users/current-user", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized request", env.Message)
	assert.False(t, env.Success)

	w, _ = s.do(http.MethodGet, "/api/v1/users/current-user", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestInvalidPathIDs(t *testing.T) {
	s := newServer(t)
	u := testutil.CreateUser(t, s.db, "alice")
	tok := s.token(u.ID)

	cases := []struct {
		method, path, message string
	}{
		{http.MethodGet, "/api/v1/videos/abc", "Invalid video id"},
		{http.MethodGet, "/api/v1/videos/-3", "Invalid video id"},
		{http.MethodPost, "/api/v1/likes/toggle/c/1x", "Invalid comment id"},
		{http.MethodPost, "/api/v1/subscriptions/c/zero", "Invalid channel id"},
		{http.MethodPatch, "/api/v1/playlist/add/oops/1", "Invalid video id"},
		{http.MethodPatch, "/api/v1/playlist/add/1/oops", "Invalid playlist id"},
		{http.MethodDelete, "/api/v1/tweets/0", "Invalid tweet id"},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w, env := s.do(tc.method, tc.path, tok, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.message, env.Message)
			assert.Equal(t, "null", string(env.Data))
		})
	}
}

func TestRegisterLoginLogout(t *testing.T) {
	s := newServer(t)

	req := multipartRequest(t, http.MethodPost, "/api/v1/users/register",
		map[string]string{"username": "Bob", "email": "bob@example.com", "fullName": "Bob B", "password": "secret"},
		map[string]string{"avatar": "bob.png"})
	w, env := s.serve(req)
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	user := decode[dto.UserInfo](t, env.Data)
	assert.Equal(t, "bob", user.Username)

	req = multipartRequest(t, http.MethodPost, "/api/v1/users/register",
		map[string]string{"username": "bob", "email": "other@example.com", "fullName": "B", "password": "x"},
		map[string]string{"avatar": "b.png"})
	w, env = s.serve(req)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "User with email or username already exists", env.Message)

	req = multipartRequest(t, http.MethodPost, "/api/v1/users/register",
		map[string]string{"username": "carl", "email": "carl@example.com", "fullName": "C", "password": "x"}, nil)
	w, env = s.serve(req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Avatar file is required", env.Message)

	w, env = s.do(http.MethodPost, "/api/v1/users/login", "", dto.LoginRequest{Username: "bob", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env = s.do(http.MethodPost, "/api/v1/users/login", "", dto.LoginRequest{Username: "bob", Password: "secret"})
	require.Equal(t, http.StatusOK, w.Code)
	login := decode[dto.LoginData](t, env.Data)
	require.NotEmpty(t, login.AccessToken)

	cookies := map[string]*http.Cookie{}
	for _, c := range w.Result().Cookies() {
		cookies[c.Name] = c
	}
	require.Contains(t, cookies, middleware.AccessTokenCookie)
	require.Contains(t, cookies, middleware.RefreshTokenCookie)
	assert.True(t, cookies[middleware.AccessTokenCookie].HttpOnly)

	// cookie 与 Bearer 都可认证
	req = httptestRequest(http.MethodGet, "/api/v1/users/current-user")
	req.AddCookie(cookies[middleware.AccessTokenCookie])
	w, env = s.serve(req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "bob", decode[dto.UserInfo](t, env.Data).Username)

	w, _ = s.do(http.MethodPost, "/api/v1/users/logout", login.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = s.do(http.MethodGet, "/api/v1/users/current-user", login.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid access token", env.Message)

	w, _ = s.do(http.MethodPost, "/api/v1/users/refresh-token", "", dto.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestChannelProfileEndpoint(t *testing.T) {
	s := newServer(t)
	u := testutil.CreateUser(t, s.db, "creator")
	viewer := testutil.CreateUser(t, s.db, "viewer")
	for _, name := range []string{"a", "b"} {
		testutil.Subscribe(t, s.db, testutil.CreateUser(t, s.db, name), u)
	}
	testutil.Subscribe(t, s.db, viewer, u)
	testutil.Subscribe(t, s.db, u, viewer)

	w, env := s.do(http.MethodGet, "/api/v1/users/c/creator", s.token(viewer.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	p := decode[dto.ChannelProfile](t, env.Data)
	assert.Equal(t, int64(3), p.SubscribersCount)
	assert.Equal(t, int64(1), p.ChannelSubscriptionCount)
	assert.True(t, p.IsSubscribed)

	w, env = s.do(http.MethodGet, "/api/v1/users/c/creator", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[dto.ChannelProfile](t, env.Data).IsSubscribed)

	w, env = s.do(http.MethodGet, "/api/v1/users/c/nobody", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Channel does not exist", env.Message)
}

func TestVideoListPagination(t *testing.T) {
	s := newServer(t)
	u := testutil.CreateUser(t, s.db, "maker")
	for i := 0; i < 5; i++ {
		testutil.CreateVideo(t, s.db, u, fmt.Sprintf("video-%d", i))
	}

	w, env := s.do(http.MethodGet, fmt.Sprintf("/api/v1/videos?page=1&limit=2&userId=%d", u.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[dto.Page[dto.VideoInfo]](t, env.Data)
	assert.Equal(t, int64(5), page.Total)
	assert.Equal(t, int64(3), page.TotalPages)
	assert.Equal(t, 2, page.Limit)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "video-4", page.Items[0].Title)

	w, env = s.do(http.MethodGet, "/api/v1/videos?limit=1000", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 100, decode[dto.Page[dto.VideoInfo]](t, env.Data).Limit)

	w, env = s.do(http.MethodGet, fmt.Sprintf("/api/v1/videos?page=%d&limit=2", int64(1)<<62), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[dto.Page[dto.VideoInfo]](t, env.Data).Items)

	w, env = s.do(http.MethodGet, "/api/v1/videos/search?q=video-3", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), decode[dto.Page[dto.VideoInfo]](t, env.Data).Total)

	w, _ = s.do(http.MethodGet, "/api/v1/videos/search", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPublishVideoEndpoint(t *testing.T) {
	s := newServer(t)
	u := testutil.CreateUser(t, s.db, "maker")

	req := multipartRequest(t, http.MethodPost, "/api/v1/videos",
		map[string]string{"title": "Hello", "description": "World"},
		map[string]string{"videoFile": "clip.mp4", "thumbnail": "thumb.jpg"})
	req.Header.Set("Authorization", "Bearer "+s.token(u.ID))
	w, env := s.serve(req)
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	info := decode[dto.VideoInfo](t, env.Data)
	assert.Equal(t, "Hello", info.Title)
	assert.True(t, strings.Contains(info.VideoFile, "/videos/"))

	req = multipartRequest(t, http.MethodPost, "/api/v1/videos",
		map[string]string{"title": "Hello", "description": "World"},
		map[string]string{"thumbnail": "thumb.jpg"})
	req.Header.Set("Authorization", "Bearer "+s.token(u.ID))
	w, env = s.serve(req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Video file is required", env.Message)
}

func TestOwnershipIsolationOverHTTP(t *testing.T) {
	s := newServer(t)
	owner := testutil.CreateUser(t, s.db, "owner")
	intruder := testutil.CreateUser(t, s.db, "intruder")
	v := testutil.CreateVideo(t, s.db, owner, "mine")
	c := testutil.CreateComment(t, s.db, owner, v, "hello")
	p := testutil.CreatePlaylist(t, s.db, owner, "list")
	bad := s.token(intruder.ID)

	title := "stolen"
	w, env := s.do(http.MethodPatch, fmt.Sprintf("/api/v1/videos/%d", v.ID), bad, dto.VideoUpdateRequest{Title: &title})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Video not found", env.Message)

	w, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/videos/%d", v.ID), bad, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = s.do(http.MethodPatch, fmt.Sprintf("/api/v1/comments/c/%d", c.ID), bad, dto.ContentRequest{Content: "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Comment not found", env.Message)

	w, env = s.do(http.MethodPatch, fmt.Sprintf("/api/v1/playlist/add/%d/%d", v.ID, p.ID), bad, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Playlist not found", env.Message)

	var count int64
	require.NoError(t, s.db.Model(&model.PlaylistVideo{}).Count(&count).Error)
	assert.Zero(t, count)

	var stored model.Video
	require.NoError(t, s.db.First(&stored, v.ID).Error)
	assert.Equal(t, "mine", stored.Title)
}

func TestPlaylistPreconditionsOverHTTP(t *testing.T) {
	s := newServer(t)
	u := testutil.CreateUser(t, s.db, "owner")
	v := testutil.CreateVideo(t, s.db, u, "clip")
	p := testutil.CreatePlaylist(t, s.db, u, "list")
	tok := s.token(u.ID)

	w, env := s.do(http.MethodPatch, fmt.Sprintf("/api/v1/playlist/add/%d/%d", 999, 998), tok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Video not found", env.Message)

	w, env = s.do(http.MethodPatch, fmt.Sprintf("/api/v1/playlist/add/%d/%d", v.ID, 998), tok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Playlist not found", env.Message)

	w, env = s.do(http.MethodPatch, fmt.Sprintf("/api/v1/playlist/add/%d/%d", v.ID, p.ID), tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int64{v.ID}, decode[dto.PlaylistInfo](t, env.Data).VideoIDs)

	w, env = s.do(http.MethodPatch, fmt.Sprintf("/api/v1/playlist/add/%d/%d", v.ID, p.ID), tok, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Video already exists in playlist", env.Message)

	w, _ = s.do(http.MethodPatch, fmt.Sprintf("/api/v1/playlist/remove/%d/%d", v.ID, p.ID), tok, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = s.do(http.MethodPatch, fmt.Sprintf("/api/v1/playlist/remove/%d/%d", v.ID, p.ID), tok, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Video does not exist in playlist", env.Message)
}

func TestToggleEndpoints(t *testing.T) {
	s := newServer(t)
	u := testutil.CreateUser(t, s.db, "fan")
	star := testutil.CreateUser(t, s.db, "star")
	v := testutil.CreateVideo(t, s.db, star, "clip")
	tok := s.token(u.ID)

	for i, want := range []bool{true, false, true} {
		w, env := s.do(http.MethodPost, fmt.Sprintf("/api/v1/likes/toggle/v/%d", v.ID), tok, nil)
		require.Equal(t, http.StatusOK, w.Code, i)
		assert.Equal(t, want, decode[map[string]bool](t, env.Data)["isLiked"])
	}

	w, env := s.do(http.MethodPost, fmt.Sprintf("/api/v1/subscriptions/c/%d", u.ID), tok, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "You cannot subscribe to your own channel", env.Message)

	w, _ = s.do(http.MethodPost, "/api/v1/subscriptions/c/4242", tok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 并发切换后至多一条订阅记录
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptestRequest(http.MethodPost, fmt.Sprintf("/api/v1/subscriptions/c/%d", star.ID))
			req.Header.Set("Authorization", "Bearer "+tok)
			serveQuiet(s, req)
		}()
	}
	wg.Wait()

	var count int64
	require.NoError(t, s.db.Model(&model.Subscription{}).Count(&count).Error)
	assert.LessOrEqual(t, count, int64(1))
}
