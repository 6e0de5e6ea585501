package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GabrielPedrotti/irecipes/internal/apperr"
	"github.com/GabrielPedrotti/irecipes/internal/model"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// FindByUserID returns a single user, including stated tastes.
func (r *UserRepo) FindByUserID(ctx context.Context, userID string) (*model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx, `
		SELECT user_id, name, handle, avatar_url, tastes, created_at
		FROM users
		WHERE user_id = $1`,
		userID).Scan(&u.UserID, &u.Name, &u.Handle, &u.AvatarURL, &u.Tastes, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFoundf("user %s", userID)
		}
		return nil, apperr.Storagef("find user", err)
	}
	return &u, nil
}

// GetSummaries returns owner summaries for the given user ids, keyed by
// id. Ids with no matching user are simply absent from the map.
func (r *UserRepo) GetSummaries(ctx context.Context, userIDs []string) (map[string]model.OwnerSummary, error) {
	summaries := make(map[string]model.OwnerSummary, len(userIDs))
	if len(userIDs) == 0 {
		return summaries, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT user_id, name, handle, avatar_url
		FROM users
		WHERE user_id = ANY($1::text[])`,
		userIDs)
	if err != nil {
		return nil, apperr.Storagef("get user summaries", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s model.OwnerSummary
		if err := rows.Scan(&s.UserID, &s.Name, &s.Handle, &s.AvatarURL); err != nil {
			return nil, apperr.Storagef("scan user summary", err)
		}
		summaries[s.UserID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storagef("get user summaries", err)
	}
	return summaries, nil
}

// CountAll returns the total number of users (for stats).
func (r *UserRepo) CountAll(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, apperr.Storagef("count users", err)
	}
	return n, nil
}
