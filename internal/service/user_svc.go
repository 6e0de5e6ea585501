package service

import (
	"context"

	"github.com/GabrielPedrotti/irecipes/internal/apperr"
	"github.com/GabrielPedrotti/irecipes/internal/model"
	"github.com/GabrielPedrotti/irecipes/internal/repository"
)

type UserService struct {
	repo *repository.UserRepo
}

func NewUserService(repo *repository.UserRepo) *UserService {
	return &UserService{repo: repo}
}

// Lookup returns the user profile for a given user ID.
func (s *UserService) Lookup(ctx context.Context, userID string) (*model.User, error) {
	if userID == "" {
		return nil, apperr.InvalidArgumentf("userId is required")
	}
	return s.repo.FindByUserID(ctx, userID)
}
