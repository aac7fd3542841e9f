package repository

import (
	"context"
	"testing"

	"vidverse/internal/model"
	"vidverse/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPlaylistAddRemoveOwned(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPlaylistRepository(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "owner")
	other := testutil.CreateUser(t, db, "other")
	v1 := testutil.CreateVideo(t, db, owner, "one")
	v2 := testutil.CreateVideo(t, db, owner, "two")
	p := testutil.CreatePlaylist(t, db, owner, "mix")

	n, err := repo.AddVideoOwned(ctx, p.ID, other.ID, v1.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = repo.AddVideoOwned(ctx, p.ID, owner.ID, v2.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = repo.AddVideoOwned(ctx, p.ID, owner.ID, v1.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.AddVideoOwned(ctx, p.ID, owner.ID, v1.ID)
	require.NoError(t, err)
	assert.Zero(t, n, "duplicate entry must not be inserted")

	ids, err := repo.VideoIDs(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{v2.ID, v1.ID}, ids)

	videos, err := repo.Videos(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, v2.ID, videos[0].ID)
	assert.Equal(t, "owner", videos[0].Owner.Username)

	n, err = repo.RemoveVideoOwned(ctx, p.ID, other.ID, v2.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = repo.RemoveVideoOwned(ctx, p.ID, owner.ID, v2.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	ids, err = repo.VideoIDs(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{v1.ID}, ids)
}

func TestPlaylistCreateListDelete(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPlaylistRepository(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "owner")
	other := testutil.CreateUser(t, db, "other")
	v := testutil.CreateVideo(t, db, owner, "one")

	p := &model.Playlist{Name: "road trip", Description: "songs", OwnerID: owner.ID}
	require.NoError(t, repo.Create(ctx, p, &v.ID))
	require.NoError(t, repo.Create(ctx, &model.Playlist{Name: "empty", Description: "-", OwnerID: owner.ID}, nil))

	list, err := repo.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "empty", list[0].Name)
	assert.Zero(t, list[0].VideoCount)
	assert.Equal(t, "road trip", list[1].Name)
	assert.Equal(t, int64(1), list[1].VideoCount)

	_, err = repo.UpdateOwned(ctx, p.ID, other.ID, map[string]interface{}{"name": "hijacked"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.ErrorIs(t, repo.DeleteOwned(ctx, p.ID, other.ID), gorm.ErrRecordNotFound)
	require.NoError(t, repo.DeleteOwned(ctx, p.ID, owner.ID))

	var n int64
	db.Model(&model.PlaylistVideo{}).Where("playlist_id = ?", p.ID).Count(&n)
	assert.Zero(t, n)
}

func TestCommentOwnedWrites(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "owner")
	other := testutil.CreateUser(t, db, "other")
	v := testutil.CreateVideo(t, db, owner, "clip")
	c := testutil.CreateComment(t, db, owner, v, "first!")

	_, err := repo.UpdateOwned(ctx, c.ID, other.ID, "edited")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, repo.DeleteOwned(ctx, c.ID, other.ID), gorm.ErrRecordNotFound)

	got, err := repo.UpdateOwned(ctx, c.ID, owner.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Content)
	assert.Equal(t, "owner", got.Owner.Username)

	testutil.CreateComment(t, db, other, v, "second")
	comments, total, err := repo.ListByVideo(ctx, v.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, "second", comments[0].Content)

	require.NoError(t, repo.DeleteOwned(ctx, c.ID, owner.ID))
	exists, err := repo.Exists(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}
