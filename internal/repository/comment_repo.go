package repository

import (
	"context"

	"vidverse/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return wrap(r.db.WithContext(ctx).Create(comment).Error, "create comment")
}

func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.WithContext(ctx).Preload("Owner").First(&comment, id).Error; err != nil {
		return nil, wrap(err, "get comment by id")
	}
	return &comment, nil
}

// Exists 检查评论是否存在
func (r *CommentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, wrap(err, "check comment exists")
	}
	return count > 0, nil
}

// ListByVideo 视频评论分页，最新在前
func (r *CommentRepository) ListByVideo(ctx context.Context, videoID int64, offset, limit int) ([]model.Comment, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Comment{}).Where("video_id = ?", videoID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, wrap(err, "count comments")
	}

	var comments []model.Comment
	err := query.Preload("Owner").
		Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, wrap(err, "list comments")
	}
	return comments, total, nil
}

// UpdateOwned 更新评论（仅作者本人），影响 0 行返回 ErrRecordNotFound
func (r *CommentRepository) UpdateOwned(ctx context.Context, commentID, ownerID int64, content string) (*model.Comment, error) {
	result := r.db.WithContext(ctx).Model(&model.Comment{}).
		Where("id = ? AND owner_id = ?", commentID, ownerID).
		Update("content", content)
	if result.Error != nil {
		return nil, wrap(result.Error, "update comment")
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, commentID)
}

// DeleteOwned 删除评论及其点赞（仅作者本人）
func (r *CommentRepository) DeleteOwned(ctx context.Context, commentID, ownerID int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND owner_id = ?", commentID, ownerID).Delete(&model.Comment{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("target_type = ? AND target_id = ?", model.LikeTargetComment, commentID).
			Delete(&model.Like{}).Error
	})
	return wrap(err, "delete comment")
}
