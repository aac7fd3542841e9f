package repository

import (
	"context"

	"vidverse/internal/model"

	"gorm.io/gorm"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// Toggle 切换点赞，返回 true 表示切换后为已点赞
func (r *LikeRepository) Toggle(ctx context.Context, userID int64, target model.LikeTarget, targetID int64) (bool, error) {
	row := &model.Like{LikedBy: userID, TargetType: target, TargetID: targetID}
	return toggle(ctx, r.db, row,
		"liked_by = ? AND target_type = ? AND target_id = ?", userID, target, targetID)
}

// Count 统计 (用户, 对象) 的点赞行数
func (r *LikeRepository) Count(ctx context.Context, userID int64, target model.LikeTarget, targetID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("liked_by = ? AND target_type = ? AND target_id = ?", userID, target, targetID).
		Count(&count).Error
	return count, wrap(err, "count likes")
}

// CountByTarget 统计对象获赞数
func (r *LikeRepository) CountByTarget(ctx context.Context, target model.LikeTarget, targetID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("target_type = ? AND target_id = ?", target, targetID).
		Count(&count).Error
	return count, wrap(err, "count likes by target")
}
