package service

import (
	"context"
	"strings"

	"vidverse/internal/api/dto"
	"vidverse/internal/model"
	"vidverse/internal/repository"
)

type PlaylistService struct {
	playlistRepo *repository.PlaylistRepository
	videoRepo    *repository.VideoRepository
	userRepo     *repository.UserRepository
}

func NewPlaylistService(
	playlistRepo *repository.PlaylistRepository,
	videoRepo *repository.VideoRepository,
	userRepo *repository.UserRepository,
) *PlaylistService {
	return &PlaylistService{playlistRepo: playlistRepo, videoRepo: videoRepo, userRepo: userRepo}
}

// Create 创建播放列表，可同时放入第一个视频
func (s *PlaylistService) Create(ctx context.Context, userID int64, req *dto.PlaylistCreateRequest) (*dto.PlaylistInfo, error) {
	name := strings.TrimSpace(req.Name)
	description := strings.TrimSpace(req.Description)
	if name == "" || description == "" {
		return nil, ErrPlaylistNameRequired
	}

	var videoID *int64
	if raw := strings.TrimSpace(req.VideoID); raw != "" {
		id, err := ParseID(raw, ErrInvalidVideoID)
		if err != nil {
			return nil, err
		}
		if err := s.ensureVideo(ctx, id); err != nil {
			return nil, err
		}
		videoID = &id
	}

	playlist := &model.Playlist{Name: name, Description: description, OwnerID: userID}
	if err := s.playlistRepo.Create(ctx, playlist, videoID); err != nil {
		return nil, err
	}
	return s.info(ctx, playlist)
}

// ListByUser 用户的全部播放列表
func (s *PlaylistService) ListByUser(ctx context.Context, userID int64) ([]dto.PlaylistInfo, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	rows, err := s.playlistRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	entries, err := s.playlistRepo.VideoIDsByPlaylists(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]dto.PlaylistInfo, 0, len(rows))
	for _, r := range rows {
		out = append(out, toPlaylistInfo(&r.Playlist, entries[r.ID], r.VideoCount))
	}
	return out, nil
}

// Get 播放列表详情：按列表顺序展开已发布的视频
func (s *PlaylistService) Get(ctx context.Context, playlistID int64) (*dto.PlaylistDetail, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, notFoundOr(err, ErrPlaylistNotFound)
	}

	videos, err := s.playlistRepo.Videos(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VideoInfo, 0, len(videos))
	for i := range videos {
		if videos[i].IsPublished {
			items = append(items, toVideoInfo(&videos[i]))
		}
	}

	detail := &dto.PlaylistDetail{
		ID:          playlist.ID,
		Name:        playlist.Name,
		Description: playlist.Description,
		Videos:      items,
		VideoCount:  len(items),
		CreatedAt:   playlist.CreatedAt,
		UpdatedAt:   playlist.UpdatedAt,
	}
	if owner, err := s.userRepo.GetByID(ctx, playlist.OwnerID); err == nil {
		detail.Owner = toOwnerBrief(owner)
	}
	return detail, nil
}

// AddVideo 依次检查：视频存在、播放列表存在、视频尚未加入，最后按所有者过滤写入
func (s *PlaylistService) AddVideo(ctx context.Context, userID, playlistID, videoID int64) (*dto.PlaylistInfo, error) {
	if err := s.ensureVideo(ctx, videoID); err != nil {
		return nil, err
	}
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, notFoundOr(err, ErrPlaylistNotFound)
	}

	present, err := s.playlistRepo.Contains(ctx, playlistID, videoID)
	if err != nil {
		return nil, err
	}
	if present {
		return nil, ErrVideoAlreadyInList
	}

	n, err := s.playlistRepo.AddVideoOwned(ctx, playlistID, userID, videoID)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		if playlist.OwnerID == userID {
			// 并发请求抢先插入了同一条目
			return nil, ErrVideoAlreadyInList
		}
		return nil, ErrPlaylistNotFound
	}
	return s.info(ctx, playlist)
}

// RemoveVideo 检查顺序同 AddVideo，视频不在列表中时拒绝
func (s *PlaylistService) RemoveVideo(ctx context.Context, userID, playlistID, videoID int64) (*dto.PlaylistInfo, error) {
	if err := s.ensureVideo(ctx, videoID); err != nil {
		return nil, err
	}
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, notFoundOr(err, ErrPlaylistNotFound)
	}

	present, err := s.playlistRepo.Contains(ctx, playlistID, videoID)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, ErrVideoNotInList
	}

	n, err := s.playlistRepo.RemoveVideoOwned(ctx, playlistID, userID, videoID)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		if playlist.OwnerID == userID {
			return nil, ErrVideoNotInList
		}
		return nil, ErrPlaylistNotFound
	}
	return s.info(ctx, playlist)
}

// Update 修改名称/描述，仅所有者
func (s *PlaylistService) Update(ctx context.Context, userID, playlistID int64, req *dto.PlaylistUpdateRequest) (*dto.PlaylistInfo, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		if n := strings.TrimSpace(*req.Name); n != "" {
			updates["name"] = n
		}
	}
	if req.Description != nil {
		if d := strings.TrimSpace(*req.Description); d != "" {
			updates["description"] = d
		}
	}
	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	playlist, err := s.playlistRepo.UpdateOwned(ctx, playlistID, userID, updates)
	if err != nil {
		return nil, notFoundOr(err, ErrPlaylistNotFound)
	}
	return s.info(ctx, playlist)
}

// Delete 删除播放列表，仅所有者
func (s *PlaylistService) Delete(ctx context.Context, userID, playlistID int64) error {
	return notFoundOr(s.playlistRepo.DeleteOwned(ctx, playlistID, userID), ErrPlaylistNotFound)
}

func (s *PlaylistService) ensureVideo(ctx context.Context, videoID int64) error {
	exists, err := s.videoRepo.Exists(ctx, videoID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrVideoNotFound
	}
	return nil
}

func (s *PlaylistService) info(ctx context.Context, p *model.Playlist) (*dto.PlaylistInfo, error) {
	ids, err := s.playlistRepo.VideoIDs(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	count, err := s.playlistRepo.PublishedCount(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	info := toPlaylistInfo(p, ids, count)
	return &info, nil
}

// toPlaylistInfo videoIDs 为全部条目，videoCount 只计已发布视频
func toPlaylistInfo(p *model.Playlist, videoIDs []int64, videoCount int64) dto.PlaylistInfo {
	if videoIDs == nil {
		videoIDs = []int64{}
	}
	return dto.PlaylistInfo{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		OwnerID:     p.OwnerID,
		VideoIDs:    videoIDs,
		VideoCount:  videoCount,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
