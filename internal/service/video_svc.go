package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/GabrielPedrotti/irecipes/internal/apperr"
	"github.com/GabrielPedrotti/irecipes/internal/model"
	"github.com/GabrielPedrotti/irecipes/internal/repository"
)

// VideoService owns the catalog surface: posting videos, reading them,
// and the like/comment threads that feed the engagement counters.
type VideoService struct {
	videos       *repository.VideoRepo
	users        *repository.UserRepo
	interactions *repository.InteractionRepo
	cache        *CacheService
}

func NewVideoService(videos *repository.VideoRepo, users *repository.UserRepo, interactions *repository.InteractionRepo, cache *CacheService) *VideoService {
	return &VideoService{videos: videos, users: users, interactions: interactions, cache: cache}
}

// Post stores a newly posted video and returns it with its generated id.
func (s *VideoService) Post(ctx context.Context, req model.PostVideoRequest) (*model.Video, error) {
	if req.Title == "" {
		return nil, apperr.InvalidArgumentf("title is required")
	}
	if req.UserID == "" {
		return nil, apperr.InvalidArgumentf("userId is required")
	}
	if req.Duration < 0 {
		return nil, apperr.InvalidArgumentf("duration must be non-negative")
	}

	// The owner must exist; a dangling owner id would poison feed
	// enrichment later.
	if _, err := s.users.FindByUserID(ctx, req.UserID); err != nil {
		return nil, err
	}

	video := model.Video{
		VideoID:         uuid.NewString(),
		Title:           req.Title,
		Description:     req.Description,
		Tags:            req.Tags,
		URL:             req.URL,
		DurationSeconds: req.Duration,
		OwnerUserID:     req.UserID,
		CreatedAt:       time.Now().UTC(),
	}
	if video.Tags == nil {
		video.Tags = []string{}
	}

	if err := s.videos.Insert(ctx, video); err != nil {
		return nil, err
	}
	return &video, nil
}

// Get returns a single video, cache-aside.
func (s *VideoService) Get(ctx context.Context, videoID string) (*model.Video, error) {
	if videoID == "" {
		return nil, apperr.InvalidArgumentf("videoId is required")
	}

	if s.cache != nil {
		if data, err := s.cache.GetVideo(ctx, videoID); err == nil && data != nil {
			var v model.Video
			if json.Unmarshal(data, &v) == nil {
				return &v, nil
			}
		}
	}

	video, err := s.videos.FindByID(ctx, videoID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetVideo(ctx, videoID, video); err != nil {
			log.Printf("cache: store video error: %v", err)
		}
	}
	return video, nil
}

// Recent returns a page of the newest videos plus the catalog total.
func (s *VideoService) Recent(ctx context.Context, page, perPage int) (*model.VideoListResponse, error) {
	if page < 1 || perPage < 1 {
		return nil, apperr.InvalidArgumentf("page and videosPerPage must be >= 1")
	}

	videos, err := s.videos.FindRecent(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}
	total, err := s.videos.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	if videos == nil {
		videos = []model.Video{}
	}
	return &model.VideoListResponse{Videos: videos, TotalVideos: total}, nil
}

// ByOwner returns all videos a user posted, newest first.
func (s *VideoService) ByOwner(ctx context.Context, userID string) ([]model.Video, error) {
	if userID == "" {
		return nil, apperr.InvalidArgumentf("userId is required")
	}
	videos, err := s.videos.FindByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	if videos == nil {
		videos = []model.Video{}
	}
	return videos, nil
}

// Like records a like. Counter recount happens async via the engagement
// worker; the cached video is invalidated so reads refetch.
func (s *VideoService) Like(ctx context.Context, videoID, userID string) error {
	if videoID == "" || userID == "" {
		return apperr.InvalidArgumentf("videoId and userId are required")
	}
	if _, err := s.videos.FindByID(ctx, videoID); err != nil {
		return err
	}
	if err := s.videos.InsertLike(ctx, videoID, userID); err != nil {
		return err
	}
	s.invalidate(ctx, videoID)
	return nil
}

// Unlike removes a like.
func (s *VideoService) Unlike(ctx context.Context, videoID, userID string) error {
	if videoID == "" || userID == "" {
		return apperr.InvalidArgumentf("videoId and userId are required")
	}
	if err := s.videos.DeleteLike(ctx, videoID, userID); err != nil {
		return err
	}
	s.invalidate(ctx, videoID)
	return nil
}

// Likes returns the user ids that liked a video.
func (s *VideoService) Likes(ctx context.Context, videoID string) ([]string, error) {
	if videoID == "" {
		return nil, apperr.InvalidArgumentf("videoId is required")
	}
	return s.videos.ListLikes(ctx, videoID)
}

// AddComment stores a comment, denormalizing the author's handle onto it
// the way the comment thread is served.
func (s *VideoService) AddComment(ctx context.Context, videoID string, req model.CommentRequest) (*model.Comment, error) {
	if videoID == "" {
		return nil, apperr.InvalidArgumentf("videoId is required")
	}
	if req.UserID == "" {
		return nil, apperr.InvalidArgumentf("userId is required")
	}
	if req.Body == "" {
		return nil, apperr.InvalidArgumentf("comment is required")
	}

	user, err := s.users.FindByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if _, err := s.videos.FindByID(ctx, videoID); err != nil {
		return nil, err
	}

	comment := model.Comment{
		VideoID:   videoID,
		UserID:    req.UserID,
		UserName:  user.Handle,
		Body:      req.Body,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.videos.InsertComment(ctx, comment); err != nil {
		return nil, err
	}
	s.invalidate(ctx, videoID)
	return &comment, nil
}

// Comments returns a video's comment thread, oldest first.
func (s *VideoService) Comments(ctx context.Context, videoID string) ([]model.Comment, error) {
	if videoID == "" {
		return nil, apperr.InvalidArgumentf("videoId is required")
	}
	return s.videos.ListComments(ctx, videoID)
}

// Stats returns platform totals.
func (s *VideoService) Stats(ctx context.Context) (*model.StatsResponse, error) {
	totalVideos, err := s.videos.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	totalUsers, err := s.users.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	totalInteractions, err := s.interactions.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	likes, comments, err := s.videos.EngagementTotals(ctx)
	if err != nil {
		return nil, err
	}
	return &model.StatsResponse{
		TotalVideos:       totalVideos,
		TotalUsers:        totalUsers,
		TotalInteractions: totalInteractions,
		TotalLikes:        likes,
		TotalComments:     comments,
	}, nil
}

func (s *VideoService) invalidate(ctx context.Context, videoID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateVideo(ctx, videoID); err != nil {
		log.Printf("cache: invalidate video error: %v", err)
	}
}
