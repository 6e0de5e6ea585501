package service

import (
	"context"

	"github.com/GabrielPedrotti/irecipes/internal/model"
)

// VideoCatalog is the catalog read surface the feed pipeline consumes.
// Satisfied by repository.VideoRepo; tests substitute in-memory fakes.
type VideoCatalog interface {
	FindCandidates(ctx context.Context, tagFilter []string, excluding []string, limit int) ([]model.Video, error)
	FindByID(ctx context.Context, videoID string) (*model.Video, error)
	FindByIDs(ctx context.Context, videoIDs []string) ([]model.Video, error)
	FindRecent(ctx context.Context, limit, skip int) ([]model.Video, error)
	FindByOwner(ctx context.Context, ownerUserID string) ([]model.Video, error)
	CountAll(ctx context.Context) (int, error)
}

// UserDirectory resolves users and compact owner summaries.
// Satisfied by repository.UserRepo.
type UserDirectory interface {
	FindByUserID(ctx context.Context, userID string) (*model.User, error)
	GetSummaries(ctx context.Context, userIDs []string) (map[string]model.OwnerSummary, error)
}

// InteractionLog reads a user's interaction history.
// Satisfied by repository.InteractionRepo.
type InteractionLog interface {
	ListByUser(ctx context.Context, userID string) ([]model.Interaction, error)
}
