package service

import (
	"context"

	"github.com/GabrielPedrotti/irecipes/internal/apperr"
	"github.com/GabrielPedrotti/irecipes/internal/model"
	"github.com/GabrielPedrotti/irecipes/internal/repository"
)

// InteractionService validates and records engagement events.
type InteractionService struct {
	repo *repository.InteractionRepo
}

func NewInteractionService(repo *repository.InteractionRepo) *InteractionService {
	return &InteractionService{repo: repo}
}

// Record merges a sparse interaction event into the per-(user, video)
// record. The store applies the merge atomically; callers retry on
// storage failure at their own discretion.
func (s *InteractionService) Record(ctx context.Context, req model.InteractionRequest) error {
	if req.UserID == "" {
		return apperr.InvalidArgumentf("userId is required")
	}
	if req.VideoID == "" {
		return apperr.InvalidArgumentf("videoId is required")
	}
	if req.WatchedTimeSeconds != nil && *req.WatchedTimeSeconds < 0 {
		return apperr.InvalidArgumentf("watchedTimeSeconds must be non-negative")
	}

	return s.repo.Record(ctx, req.UserID, req.VideoID, req.InteractionUpdate)
}

// List returns all interaction records for a user.
func (s *InteractionService) List(ctx context.Context, userID string) ([]model.Interaction, error) {
	if userID == "" {
		return nil, apperr.InvalidArgumentf("userId is required")
	}
	return s.repo.ListByUser(ctx, userID)
}
