package service

import (
	"context"
	"strconv"
	"testing"

	"vidverse/internal/api/dto"
	"vidverse/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePlaylist(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := testutil.CreateUser(t, e.db, "lister")
	v := testutil.CreateVideo(t, e.db, u, "first")

	_, err := e.playlists.Create(ctx, u.ID, &dto.PlaylistCreateRequest{Name: "n"})
	assert.ErrorIs(t, err, ErrPlaylistNameRequired)

	_, err = e.playlists.Create(ctx, u.ID, &dto.PlaylistCreateRequest{Name: "n", Description: "d", VideoID: "abc"})
	assert.ErrorIs(t, err, ErrInvalidVideoID)

	_, err = e.playlists.Create(ctx, u.ID, &dto.PlaylistCreateRequest{Name: "n", Description: "d", VideoID: "777"})
	assert.ErrorIs(t, err, ErrVideoNotFound)

	p, err := e.playlists.Create(ctx, u.ID, &dto.PlaylistCreateRequest{Name: "n", Description: "d", VideoID: strconv.FormatInt(v.ID, 10)})
	require.NoError(t, err)
	assert.Equal(t, []int64{v.ID}, p.VideoIDs)
	assert.Equal(t, int64(1), p.VideoCount)

	empty, err := e.playlists.Create(ctx, u.ID, &dto.PlaylistCreateRequest{Name: "e", Description: "d"})
	require.NoError(t, err)
	assert.Empty(t, empty.VideoIDs)

	list, err := e.playlists.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = e.playlists.ListByUser(ctx, 31337)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestPlaylistAddVideoPreconditions(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := testutil.CreateUser(t, e.db, "lister")
	v := testutil.CreateVideo(t, e.db, u, "clip")
	p := testutil.CreatePlaylist(t, e.db, u, "mix")

	// 视频不存在优先于播放列表不存在
	_, err := e.playlists.AddVideo(ctx, u.ID, 999, 888)
	assert.ErrorIs(t, err, ErrVideoNotFound)

	_, err = e.playlists.AddVideo(ctx, u.ID, 999, v.ID)
	assert.ErrorIs(t, err, ErrPlaylistNotFound)

	info, err := e.playlists.AddVideo(ctx, u.ID, p.ID, v.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{v.ID}, info.VideoIDs)

	_, err = e.playlists.AddVideo(ctx, u.ID, p.ID, v.ID)
	assert.ErrorIs(t, err, ErrVideoAlreadyInList)

	info, err = e.playlists.RemoveVideo(ctx, u.ID, p.ID, v.ID)
	require.NoError(t, err)
	assert.Empty(t, info.VideoIDs)

	_, err = e.playlists.RemoveVideo(ctx, u.ID, p.ID, v.ID)
	assert.ErrorIs(t, err, ErrVideoNotInList)
}

func TestPlaylistMembershipOrder(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := testutil.CreateUser(t, e.db, "lister")
	a := testutil.CreateVideo(t, e.db, u, "a")
	b := testutil.CreateVideo(t, e.db, u, "b")
	c := testutil.CreateVideo(t, e.db, u, "c")
	p := testutil.CreatePlaylist(t, e.db, u, "mix")

	for _, v := range []int64{b.ID, a.ID, c.ID} {
		_, err := e.playlists.AddVideo(ctx, u.ID, p.ID, v)
		require.NoError(t, err)
	}
	_, err := e.videos.TogglePublishStatus(ctx, u.ID, c.ID)
	require.NoError(t, err)

	detail, err := e.playlists.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, detail.Videos, 2)
	assert.Equal(t, b.ID, detail.Videos[0].ID)
	assert.Equal(t, a.ID, detail.Videos[1].ID)
	assert.Equal(t, 2, detail.VideoCount)
	require.NotNil(t, detail.Owner)
	assert.Equal(t, "lister", detail.Owner.Username)

	// 列表、详情与写操作返回的视频数一致，下架视频仍保留在条目中
	lists, err := e.playlists.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, int64(detail.VideoCount), lists[0].VideoCount)
	assert.Equal(t, []int64{b.ID, a.ID, c.ID}, lists[0].VideoIDs)

	title := "mix v2"
	updated, err := e.playlists.Update(ctx, u.ID, p.ID, &dto.PlaylistUpdateRequest{Name: &title})
	require.NoError(t, err)
	assert.Equal(t, int64(detail.VideoCount), updated.VideoCount)

	_, err = e.playlists.Get(ctx, 12345)
	assert.ErrorIs(t, err, ErrPlaylistNotFound)
}

func TestPlaylistOwnershipIsolation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, e.db, "owner")
	intruder := testutil.CreateUser(t, e.db, "intruder")
	v := testutil.CreateVideo(t, e.db, owner, "clip")
	w := testutil.CreateVideo(t, e.db, owner, "other")
	p := testutil.CreatePlaylist(t, e.db, owner, "mine")

	_, err := e.playlists.AddVideo(ctx, owner.ID, p.ID, v.ID)
	require.NoError(t, err)

	_, err = e.playlists.AddVideo(ctx, intruder.ID, p.ID, w.ID)
	assert.ErrorIs(t, err, ErrPlaylistNotFound)

	_, err = e.playlists.RemoveVideo(ctx, intruder.ID, p.ID, v.ID)
	assert.ErrorIs(t, err, ErrPlaylistNotFound)

	_, err = e.playlists.Update(ctx, intruder.ID, p.ID, &dto.PlaylistUpdateRequest{Name: strPtr("stolen")})
	assert.ErrorIs(t, err, ErrPlaylistNotFound)

	assert.ErrorIs(t, e.playlists.Delete(ctx, intruder.ID, p.ID), ErrPlaylistNotFound)

	detail, err := e.playlists.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "mine", detail.Name)
	require.Len(t, detail.Videos, 1)
	assert.Equal(t, v.ID, detail.Videos[0].ID)

	updated, err := e.playlists.Update(ctx, owner.ID, p.ID, &dto.PlaylistUpdateRequest{Name: strPtr("renamed")})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)

	_, err = e.playlists.Update(ctx, owner.ID, p.ID, &dto.PlaylistUpdateRequest{})
	assert.ErrorIs(t, err, ErrNoFieldsToUpdate)

	require.NoError(t, e.playlists.Delete(ctx, owner.ID, p.ID))
	_, err = e.playlists.Get(ctx, p.ID)
	assert.ErrorIs(t, err, ErrPlaylistNotFound)
}
