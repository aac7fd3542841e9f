package repository

import (
	"context"

	"vidverse/internal/model"

	"gorm.io/gorm"
)

type TweetRepository struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) *TweetRepository {
	return &TweetRepository{db: db}
}

func (r *TweetRepository) Create(ctx context.Context, tweet *model.Tweet) error {
	return wrap(r.db.WithContext(ctx).Create(tweet).Error, "create tweet")
}

func (r *TweetRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Tweet{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, wrap(err, "check tweet exists")
	}
	return count > 0, nil
}

// ListByOwner 用户动态分页，最新在前
func (r *TweetRepository) ListByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]model.Tweet, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Tweet{}).Where("owner_id = ?", ownerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, wrap(err, "count tweets")
	}

	var tweets []model.Tweet
	if err := query.Order("created_at DESC").Order("id DESC").Offset(offset).Limit(limit).Find(&tweets).Error; err != nil {
		return nil, 0, wrap(err, "list tweets")
	}
	return tweets, total, nil
}

func (r *TweetRepository) UpdateOwned(ctx context.Context, id, ownerID int64, content string) (*model.Tweet, error) {
	result := r.db.WithContext(ctx).Model(&model.Tweet{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Update("content", content)
	if result.Error != nil {
		return nil, wrap(result.Error, "update tweet")
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var tweet model.Tweet
	if err := r.db.WithContext(ctx).First(&tweet, id).Error; err != nil {
		return nil, wrap(err, "get tweet")
	}
	return &tweet, nil
}

// DeleteOwned 删除动态及其点赞
func (r *TweetRepository) DeleteOwned(ctx context.Context, id, ownerID int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&model.Tweet{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("target_type = ? AND target_id = ?", model.LikeTargetTweet, id).
			Delete(&model.Like{}).Error
	})
	return wrap(err, "delete tweet")
}
