package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"vidverse/internal/config"
	infraKafka "vidverse/internal/infra/kafka"
	"vidverse/internal/model"
	"vidverse/internal/repository"
	"vidverse/internal/testutil"

	"gorm.io/gorm"
)

const fakeBase = "http://media.local/vidverse-media/"

type fakeStorage struct {
	mu       sync.Mutex
	seq      int
	uploaded []string
	deleted  []string
	failOn   string
}

func (f *fakeStorage) Upload(_ context.Context, folder, filename string, r io.Reader, _ int64, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn != "" && f.failOn == folder {
		return "", errors.New("minio unavailable")
	}
	_, _ = io.Copy(io.Discard, r)
	f.seq++
	url := fmt.Sprintf("%s%s/%d-%s", fakeBase, folder, f.seq, filename)
	f.uploaded = append(f.uploaded, url)
	return url, nil
}

func (f *fakeStorage) Delete(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, url)
	return nil
}

func (f *fakeStorage) Bucket() string { return "vidverse-media" }

func (f *fakeStorage) ObjectFromURL(url string) (string, bool) {
	if !strings.HasPrefix(url, fakeBase) {
		return "", false
	}
	return strings.TrimPrefix(url, fakeBase), true
}

type fakePublisher struct {
	events []*infraKafka.VideoUploaded
	err    error
}

func (f *fakePublisher) PublishVideoUploaded(_ context.Context, evt *infraKafka.VideoUploaded) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, evt)
	return nil
}

type fakeIndexer struct {
	indexed map[int64]model.Video
	deleted []int64
	ids     []int64
	err     error
}

func newFakeIndexer() *fakeIndexer {
	return &fakeIndexer{indexed: map[int64]model.Video{}}
}

func (f *fakeIndexer) IndexVideo(_ context.Context, v *model.Video) error {
	f.indexed[v.ID] = *v
	return nil
}

func (f *fakeIndexer) DeleteVideo(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	delete(f.indexed, id)
	return nil
}

func (f *fakeIndexer) SearchVideos(_ context.Context, _ string, _, _ int) ([]int64, int64, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.ids, int64(len(f.ids)), nil
}

func (f *fakeIndexer) BulkIndexVideos(_ context.Context, videos []model.Video) (int, int, error) {
	if f.err != nil {
		return 0, len(videos), f.err
	}
	for _, v := range videos {
		f.indexed[v.ID] = v
	}
	return len(videos), 0, nil
}

type fakeBlacklist struct {
	revoked map[string]time.Time
}

func (f *fakeBlacklist) Revoke(_ context.Context, jti string, exp time.Time) error {
	f.revoked[jti] = exp
	return nil
}

func (f *fakeBlacklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, ok := f.revoked[jti]
	return ok, nil
}

type fakeCache struct {
	data map[string][]byte
	sets int
}

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeCache) Set(_ context.Context, key string, val []byte, _ time.Duration) error {
	f.data[key] = val
	f.sets++
	return nil
}

// env 一个测试用的完整服务集合
type env struct {
	db        *gorm.DB
	storage   *fakeStorage
	publisher *fakePublisher
	indexer   *fakeIndexer
	blacklist *fakeBlacklist

	auth         *AuthService
	users        *UserService
	videos       *VideoService
	comments     *CommentService
	tweets       *TweetService
	likes        *LikeService
	subs         *SubscriptionService
	playlists    *PlaylistService
	search       *SearchService
	dashboard    *DashboardService
	cache        *fakeCache
	videoRepo    *repository.VideoRepository
	playlistRepo *repository.PlaylistRepository
}

func newEnv(t *testing.T) *env {
	t.Helper()
	config.Set(&config.Config{JWT: config.JWTConfig{
		AccessSecret:      "test-access",
		AccessExpireMins:  15,
		RefreshSecret:     "test-refresh",
		RefreshExpireDays: 1,
	}})

	db := testutil.NewDB(t)
	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)

	e := &env{
		db:           db,
		storage:      &fakeStorage{},
		publisher:    &fakePublisher{},
		indexer:      newFakeIndexer(),
		blacklist:    &fakeBlacklist{revoked: map[string]time.Time{}},
		cache:        &fakeCache{data: map[string][]byte{}},
		videoRepo:    videoRepo,
		playlistRepo: playlistRepo,
	}
	e.auth = NewAuthService(userRepo, e.storage, e.blacklist)
	e.users = NewUserService(userRepo, e.storage)
	e.videos = NewVideoService(videoRepo, userRepo, likeRepo, e.storage, e.publisher, e.indexer)
	e.comments = NewCommentService(commentRepo, videoRepo)
	e.tweets = NewTweetService(tweetRepo, userRepo)
	e.likes = NewLikeService(likeRepo, videoRepo, commentRepo, tweetRepo)
	e.subs = NewSubscriptionService(subRepo, userRepo)
	e.playlists = NewPlaylistService(playlistRepo, videoRepo, userRepo)
	e.search = NewSearchService(videoRepo, e.indexer)
	e.dashboard = NewDashboardService(videoRepo, e.cache, time.Minute)
	return e
}

func file(name string) *File {
	return &File{Name: name, Size: 4, ContentType: "application/octet-stream", Body: strings.NewReader("data")}
}
