package service

import (
	"context"
	"testing"

	"vidverse/internal/api/dto"
	infraKafka "vidverse/internal/infra/kafka"
	"vidverse/internal/model"
	"vidverse/internal/testutil"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestPublishVideo(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, e.db, "maker")

	_, err := e.videos.Publish(ctx, owner.ID, &dto.VideoPublishRequest{Title: "t"}, file("v.mp4"), file("t.jpg"))
	assert.ErrorIs(t, err, ErrTitleDescRequired)

	_, err = e.videos.Publish(ctx, owner.ID, &dto.VideoPublishRequest{Title: "t", Description: "d"}, nil, file("t.jpg"))
	assert.ErrorIs(t, err, ErrVideoFileRequired)

	_, err = e.videos.Publish(ctx, owner.ID, &dto.VideoPublishRequest{Title: "t", Description: "d"}, file("v.mp4"), nil)
	assert.ErrorIs(t, err, ErrThumbnailRequired)

	info, err := e.videos.Publish(ctx, owner.ID, &dto.VideoPublishRequest{Title: " Intro ", Description: "first"}, file("v.mp4"), file("t.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "Intro", info.Title)
	assert.True(t, info.IsPublished)
	assert.Zero(t, info.Duration)
	require.NotNil(t, info.Owner)
	assert.Equal(t, "maker", info.Owner.Username)

	require.Len(t, e.publisher.events, 1)
	evt := e.publisher.events[0]
	assert.Equal(t, info.ID, evt.VideoID)
	assert.Equal(t, "vidverse-media", evt.Bucket)
	assert.Contains(t, evt.ObjectName, "videos/")

	assert.Contains(t, e.indexer.indexed, info.ID)
}

func TestPublishSurvivesBrokerFailure(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, e.db, "maker")
	e.publisher.err = errors.New("broker down")

	info, err := e.videos.Publish(ctx, owner.ID, &dto.VideoPublishRequest{Title: "t", Description: "d"}, file("v.mp4"), file("t.jpg"))
	require.NoError(t, err)
	assert.NotZero(t, info.ID)
}

func TestPublishUploadFailureCleansUp(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, e.db, "maker")
	e.storage.failOn = "thumbnails"

	_, err := e.videos.Publish(ctx, owner.ID, &dto.VideoPublishRequest{Title: "t", Description: "d"}, file("v.mp4"), file("t.jpg"))
	assert.ErrorIs(t, err, ErrUploadFailed)
	require.Len(t, e.storage.uploaded, 1)
	assert.Equal(t, e.storage.uploaded, e.storage.deleted)

	var count int64
	require.NoError(t, e.db.Model(&model.Video{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGetVideo(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, e.db, "maker")
	viewer := testutil.CreateUser(t, e.db, "viewer")
	v := testutil.CreateVideo(t, e.db, owner, "clip")

	_, err := e.likes.ToggleVideoLike(ctx, viewer.ID, v.ID)
	require.NoError(t, err)

	d, err := e.videos.Get(ctx, v.ID, viewer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), d.Views)
	assert.Equal(t, int64(1), d.LikesCount)
	assert.True(t, d.IsLiked)
	require.NotNil(t, d.Owner)
	assert.Equal(t, owner.ID, d.Owner.ID)

	d, err = e.videos.Get(ctx, v.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), d.Views)
	assert.False(t, d.IsLiked)

	_, err = e.videos.Get(ctx, 9999, viewer.ID)
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestUnpublishedVideoVisibleOnlyToOwner(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, e.db, "maker")
	other := testutil.CreateUser(t, e.db, "other")
	v := testutil.CreateVideo(t, e.db, owner, "draft")

	info, err := e.videos.TogglePublishStatus(ctx, owner.ID, v.ID)
	require.NoError(t, err)
	assert.False(t, info.IsPublished)

	_, err = e.videos.Get(ctx, v.ID, other.ID)
	assert.ErrorIs(t, err, ErrVideoNotFound)
	_, err = e.videos.Get(ctx, v.ID, 0)
	assert.ErrorIs(t, err, ErrVideoNotFound)

	d, err := e.videos.Get(ctx, v.ID, owner.ID)
	require.NoError(t, err)
	assert.False(t, d.IsPublished)

	page, err := e.videos.List(ctx, &dto.VideoListQuery{})
	require.NoError(t, err)
	assert.Zero(t, page.Total)
}

func TestVideoOwnershipIsolation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, e.db, "maker")
	intruder := testutil.CreateUser(t, e.db, "intruder")
	v := testutil.CreateVideo(t, e.db, owner, "mine")

	_, err := e.videos.Update(ctx, intruder.ID, v.ID, &dto.VideoUpdateRequest{Title: strPtr("hacked")}, nil)
	assert.ErrorIs(t, err, ErrVideoNotFound)

	_, err = e.videos.TogglePublishStatus(ctx, intruder.ID, v.ID)
	assert.ErrorIs(t, err, ErrVideoNotFound)

	err = e.videos.Delete(ctx, intruder.ID, v.ID)
	assert.ErrorIs(t, err, ErrVideoNotFound)

	var stored model.Video
	require.NoError(t, e.db.First(&stored, v.ID).Error)
	assert.Equal(t, "mine", stored.Title)
	assert.True(t, stored.IsPublished)
	assert.Empty(t, e.storage.deleted)
}

func TestUpdateVideo(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, e.db, "maker")
	v := testutil.CreateVideo(t, e.db, owner, "old")

	_, err := e.videos.Update(ctx, owner.ID, v.ID, &dto.VideoUpdateRequest{Title: strPtr("  ")}, nil)
	assert.ErrorIs(t, err, ErrNoFieldsToUpdate)

	info, err := e.videos.Update(ctx, owner.ID, v.ID, &dto.VideoUpdateRequest{Title: strPtr("new")}, file("n.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "new", info.Title)
	assert.Equal(t, "old description", info.Description)
	assert.Contains(t, info.Thumbnail, "thumbnails/")
	assert.Equal(t, []string{v.Thumbnail}, e.storage.deleted)
	assert.Equal(t, "new", e.indexer.indexed[v.ID].Title)
}

func TestDeleteVideo(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, e.db, "maker")
	v := testutil.CreateVideo(t, e.db, owner, "bye")

	require.NoError(t, e.videos.Delete(ctx, owner.ID, v.ID))
	assert.ElementsMatch(t, []string{v.VideoFile, v.Thumbnail}, e.storage.deleted)
	assert.Equal(t, []int64{v.ID}, e.indexer.deleted)

	_, err := e.videos.Get(ctx, v.ID, owner.ID)
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestListVideosPagination(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, e.db, "maker")
	other := testutil.CreateUser(t, e.db, "other")
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		testutil.CreateVideo(t, e.db, owner, title)
	}
	testutil.CreateVideo(t, e.db, other, "x")

	page, err := e.videos.List(ctx, &dto.VideoListQuery{PageQuery: dto.PageQuery{Page: 1, Limit: 2}, UserID: &owner.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	assert.Equal(t, int64(3), page.TotalPages)
	assert.Len(t, page.Items, 2)

	page, err = e.videos.List(ctx, &dto.VideoListQuery{PageQuery: dto.PageQuery{Page: 3, Limit: 2}, UserID: &owner.ID})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)

	page, err = e.videos.List(ctx, &dto.VideoListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(6), page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Limit)

	ghost := int64(4242)
	_, err = e.videos.List(ctx, &dto.VideoListQuery{UserID: &ghost})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestHandleVideoProbed(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, e.db, "maker")
	v := testutil.CreateVideo(t, e.db, owner, "probe")

	require.NoError(t, e.videos.HandleVideoProbed(ctx, &infraKafka.VideoProbed{VideoID: v.ID, Duration: "12.5"}))
	var stored model.Video
	require.NoError(t, e.db.First(&stored, v.ID).Error)
	assert.InDelta(t, 12.5, stored.Duration, 1e-9)

	// 失败、非法时长、视频已删除都只记录，不返回错误
	assert.NoError(t, e.videos.HandleVideoProbed(ctx, &infraKafka.VideoProbed{VideoID: v.ID, Error: "ffprobe exited 1"}))
	assert.NoError(t, e.videos.HandleVideoProbed(ctx, &infraKafka.VideoProbed{VideoID: v.ID, Duration: "abc"}))
	assert.NoError(t, e.videos.HandleVideoProbed(ctx, &infraKafka.VideoProbed{VideoID: 9999, Duration: "3"}))

	require.NoError(t, e.db.First(&stored, v.ID).Error)
	assert.InDelta(t, 12.5, stored.Duration, 1e-9)
}
