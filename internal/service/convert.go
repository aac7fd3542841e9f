package service

import (
	"vidverse/internal/api/dto"
	"vidverse/internal/model"
)

func toUserInfo(u *model.User) *dto.UserInfo {
	return &dto.UserInfo{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FullName:   u.FullName,
		Avatar:     u.Avatar,
		CoverImage: u.CoverImage,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// toOwnerBrief 未预加载的关联返回 nil
func toOwnerBrief(u *model.User) *dto.OwnerBrief {
	if u == nil || u.ID == 0 {
		return nil
	}
	return &dto.OwnerBrief{ID: u.ID, Username: u.Username, FullName: u.FullName, Avatar: u.Avatar}
}

func toChannelBriefs(users []model.User) []dto.ChannelBrief {
	out := make([]dto.ChannelBrief, 0, len(users))
	for _, u := range users {
		out = append(out, dto.ChannelBrief{ID: u.ID, Username: u.Username, FullName: u.FullName, Avatar: u.Avatar})
	}
	return out
}

func toVideoInfo(v *model.Video) dto.VideoInfo {
	return dto.VideoInfo{
		ID:          v.ID,
		OwnerID:     v.OwnerID,
		Title:       v.Title,
		Description: v.Description,
		Thumbnail:   v.Thumbnail,
		VideoFile:   v.VideoFile,
		Duration:    v.Duration,
		Views:       v.Views,
		IsPublished: v.IsPublished,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
		Owner:       toOwnerBrief(&v.Owner),
	}
}

func toVideoInfos(videos []model.Video) []dto.VideoInfo {
	out := make([]dto.VideoInfo, 0, len(videos))
	for i := range videos {
		out = append(out, toVideoInfo(&videos[i]))
	}
	return out
}

func toCommentInfo(c *model.Comment) dto.CommentInfo {
	return dto.CommentInfo{
		ID:        c.ID,
		VideoID:   c.VideoID,
		Content:   c.Content,
		Owner:     toOwnerBrief(&c.Owner),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toTweetInfo(t *model.Tweet) dto.TweetInfo {
	return dto.TweetInfo{
		ID:        t.ID,
		OwnerID:   t.OwnerID,
		Content:   t.Content,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
