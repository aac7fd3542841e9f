package service

import (
	"context"
	"strings"

	"vidverse/internal/api/dto"
	"vidverse/internal/model"
	"vidverse/internal/repository"
)

type CommentService struct {
	commentRepo *repository.CommentRepository
	videoRepo   *repository.VideoRepository
}

func NewCommentService(commentRepo *repository.CommentRepository, videoRepo *repository.VideoRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, videoRepo: videoRepo}
}

// List 视频评论分页，最新在前；viewerID 为 0 表示匿名
func (s *CommentService) List(ctx context.Context, viewerID, videoID int64, q dto.PageQuery) (*dto.Page[dto.CommentInfo], error) {
	if err := s.ensureVideo(ctx, videoID, viewerID); err != nil {
		return nil, err
	}

	page := q.Normalize()
	comments, total, err := s.commentRepo.ListByVideo(ctx, videoID, page.Offset(), page.Limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.CommentInfo, 0, len(comments))
	for i := range comments {
		items = append(items, toCommentInfo(&comments[i]))
	}
	return dto.NewPage(items, total, page), nil
}

// Add 发表评论
func (s *CommentService) Add(ctx context.Context, userID, videoID int64, content string) (*dto.CommentInfo, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrContentRequired
	}
	if err := s.ensureVideo(ctx, videoID, userID); err != nil {
		return nil, err
	}

	comment := &model.Comment{VideoID: videoID, OwnerID: userID, Content: content}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	created, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}
	info := toCommentInfo(created)
	return &info, nil
}

// Update 修改评论，仅作者本人
func (s *CommentService) Update(ctx context.Context, userID, commentID int64, content string) (*dto.CommentInfo, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrContentRequired
	}

	comment, err := s.commentRepo.UpdateOwned(ctx, commentID, userID, content)
	if err != nil {
		return nil, notFoundOr(err, ErrCommentNotFound)
	}
	info := toCommentInfo(comment)
	return &info, nil
}

// Delete 删除评论，仅作者本人
func (s *CommentService) Delete(ctx context.Context, userID, commentID int64) error {
	return notFoundOr(s.commentRepo.DeleteOwned(ctx, commentID, userID), ErrCommentNotFound)
}

// ensureVideo 未发布视频对非上传者等同于不存在
func (s *CommentService) ensureVideo(ctx context.Context, videoID, viewerID int64) error {
	visible, err := s.videoRepo.VisibleTo(ctx, videoID, viewerID)
	if err != nil {
		return err
	}
	if !visible {
		return ErrVideoNotFound
	}
	return nil
}
