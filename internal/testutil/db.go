// Package testutil 提供基于 SQLite 文件库的测试数据库与种子数据
package testutil

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"vidverse/internal/infra/database"
	"vidverse/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB 在临时目录创建迁移好的数据库，WAL + busy_timeout 以支持并发写测试
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// CreateUser 创建用户，邮箱由用户名派生
func CreateUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	u := &model.User{
		Username: strings.ToLower(username),
		Email:    strings.ToLower(username) + "@example.com",
		FullName: strings.ToUpper(username[:1]) + username[1:],
		Password: "hash",
		Avatar:   fmt.Sprintf("http://media.local/avatars/%s.png", username),
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

// CreateVideo 创建已发布视频
func CreateVideo(t *testing.T, db *gorm.DB, owner *model.User, title string) *model.Video {
	t.Helper()
	v := &model.Video{
		OwnerID:     owner.ID,
		OwnerName:   owner.Username,
		Title:       title,
		Description: title + " description",
		Thumbnail:   "http://media.local/thumbnails/" + title + ".jpg",
		VideoFile:   "http://media.local/videos/" + title + ".mp4",
		IsPublished: true,
	}
	require.NoError(t, db.Create(v).Error)
	return v
}

// CreateComment 创建评论
func CreateComment(t *testing.T, db *gorm.DB, owner *model.User, video *model.Video, content string) *model.Comment {
	t.Helper()
	c := &model.Comment{VideoID: video.ID, OwnerID: owner.ID, Content: content}
	require.NoError(t, db.Create(c).Error)
	return c
}

// CreatePlaylist 创建空播放列表
func CreatePlaylist(t *testing.T, db *gorm.DB, owner *model.User, name string) *model.Playlist {
	t.Helper()
	p := &model.Playlist{Name: name, Description: name + " description", OwnerID: owner.ID}
	require.NoError(t, db.Create(p).Error)
	return p
}

// Subscribe 直接写入订阅关系
func Subscribe(t *testing.T, db *gorm.DB, subscriber, channel *model.User) {
	t.Helper()
	require.NoError(t, db.Create(&model.Subscription{SubscriberID: subscriber.ID, ChannelID: channel.ID}).Error)
}
