package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"vidverse/internal/api/dto"
	"vidverse/internal/api/handler"
	"vidverse/internal/api/middleware"
	"vidverse/internal/api/router"
	"vidverse/internal/config"
	"vidverse/internal/repository"
	"vidverse/internal/service"
	"vidverse/internal/testutil"
	"vidverse/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memStorage struct {
	mu  sync.Mutex
	seq int
}

func (m *memStorage) Upload(_ context.Context, folder, filename string, r io.Reader, _ int64, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, _ = io.Copy(io.Discard, r)
	m.seq++
	return fmt.Sprintf("http://media.local/vidverse-media/%s/%d-%s", folder, m.seq, filename), nil
}

func (m *memStorage) Delete(context.Context, string) error { return nil }

func (m *memStorage) Bucket() string { return "vidverse-media" }

func (m *memStorage) ObjectFromURL(string) (string, bool) { return "", false }

type memBlacklist struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func (b *memBlacklist) Revoke(_ context.Context, jti string, _ time.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.revoked[jti] = true
	return nil
}

func (b *memBlacklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.revoked[jti], nil
}

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
}

type server struct {
	t      *testing.T
	db     *gorm.DB
	engine *gin.Engine
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.Set(&config.Config{
		JWT: config.JWTConfig{
			AccessSecret:      "test-access",
			AccessExpireMins:  15,
			RefreshSecret:     "test-refresh",
			RefreshExpireDays: 1,
		},
		Upload:     config.UploadConfig{MaxVideoMB: 10, MaxImageMB: 1},
		Pagination: config.PaginationConfig{DefaultLimit: 10, MaxLimit: 100},
	})

	dto.SetPageLimits(10, 100)

	db := testutil.NewDB(t)
	storage := &memStorage{}
	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)

	authService := service.NewAuthService(userRepo, storage, &memBlacklist{revoked: map[string]bool{}})
	videoService := service.NewVideoService(videoRepo, userRepo, likeRepo, storage, nil, nil)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Recovery())
	router.Setup(r, &router.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		User:         handler.NewUserHandler(service.NewUserService(userRepo, storage)),
		Video:        handler.NewVideoHandler(videoService),
		Search:       handler.NewSearchHandler(service.NewSearchService(videoRepo, nil)),
		Comment:      handler.NewCommentHandler(service.NewCommentService(commentRepo, videoRepo)),
		Like:         handler.NewLikeHandler(service.NewLikeService(likeRepo, videoRepo, commentRepo, tweetRepo)),
		Subscription: handler.NewSubscriptionHandler(service.NewSubscriptionService(repository.NewSubscriptionRepository(db), userRepo)),
		Playlist:     handler.NewPlaylistHandler(service.NewPlaylistService(playlistRepo, videoRepo, userRepo)),
		Tweet:        handler.NewTweetHandler(service.NewTweetService(tweetRepo, userRepo)),
		Dashboard:    handler.NewDashboardHandler(service.NewDashboardService(videoRepo, nil, 0)),
	}, authService)

	return &server{t: t, db: db, engine: r}
}

// token 为种子用户直接签发 access token
func (s *server) token(userID int64) string {
	s.t.Helper()
	tok, err := utils.GenerateAccessToken(userID)
	require.NoError(s.t, err)
	return tok
}

func (s *server) serve(req *http.Request) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	require.Equal(s.t, w.Code, env.StatusCode)
	require.Equal(s.t, w.Code < 400, env.Success)
	return w, env
}

// do 发送 JSON 请求，token 为空表示匿名
func (s *server) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return s.serve(req)
}

// multipartRequest 构造表单请求，files 的值为文件名
func multipartRequest(t *testing.T, method, path string, fields, files map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for field, name := range files {
		fw, err := mw.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("binary"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func httptestRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

// serveQuiet 并发场景使用，不在 goroutine 中调用 require
func serveQuiet(s *server, req *http.Request) int {
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w.Code
}
