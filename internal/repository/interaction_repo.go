package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GabrielPedrotti/irecipes/internal/apperr"
	"github.com/GabrielPedrotti/irecipes/internal/model"
)

type InteractionRepo struct {
	pool *pgxpool.Pool
}

func NewInteractionRepo(pool *pgxpool.Pool) *InteractionRepo {
	return &InteractionRepo{pool: pool}
}

// Record inserts or merges an interaction in a single statement so
// concurrent writes to the same (user, video) key cannot regress the
// monotonic fields:
//
//   - watched_time_seconds only increases (GREATEST)
//   - watched_complete is sticky (OR)
//   - liked/commented/shared take the incoming value when present
//
// The merge semantics mirror model.MergeInteraction. last_updated_at is
// only refreshed when a field actually changes.
func (r *InteractionRepo) Record(ctx context.Context, userID, videoID string, upd model.InteractionUpdate) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO video_interactions
			(user_id, video_id, watched_time_seconds, liked, commented, shared, watched_complete, last_updated_at)
		VALUES
			($1, $2, GREATEST(COALESCE($3, 0), 0), COALESCE($4, FALSE), COALESCE($5, FALSE), COALESCE($6, FALSE), COALESCE($7, FALSE), NOW())
		ON CONFLICT (user_id, video_id) DO UPDATE SET
			watched_time_seconds = GREATEST(video_interactions.watched_time_seconds, COALESCE($3, 0)),
			liked                = COALESCE($4, video_interactions.liked),
			commented            = COALESCE($5, video_interactions.commented),
			shared               = COALESCE($6, video_interactions.shared),
			watched_complete     = video_interactions.watched_complete OR COALESCE($7, FALSE),
			last_updated_at      = CASE WHEN
					video_interactions.watched_time_seconds IS DISTINCT FROM GREATEST(video_interactions.watched_time_seconds, COALESCE($3, 0))
				OR video_interactions.liked            IS DISTINCT FROM COALESCE($4, video_interactions.liked)
				OR video_interactions.commented        IS DISTINCT FROM COALESCE($5, video_interactions.commented)
				OR video_interactions.shared           IS DISTINCT FROM COALESCE($6, video_interactions.shared)
				OR video_interactions.watched_complete IS DISTINCT FROM (video_interactions.watched_complete OR COALESCE($7, FALSE))
				THEN NOW()
				ELSE video_interactions.last_updated_at
			END`,
		userID, videoID,
		upd.WatchedTimeSeconds, upd.Liked, upd.Commented, upd.Shared, upd.WatchedComplete)
	if err != nil {
		return apperr.Storagef("record interaction", err)
	}
	return nil
}

// ListByUser returns all interaction records for a user.
func (r *InteractionRepo) ListByUser(ctx context.Context, userID string) ([]model.Interaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT user_id, video_id, watched_time_seconds, liked, commented, shared, watched_complete, last_updated_at
		FROM video_interactions
		WHERE user_id = $1`,
		userID)
	if err != nil {
		return nil, apperr.Storagef("list interactions", err)
	}
	defer rows.Close()

	var interactions []model.Interaction
	for rows.Next() {
		var in model.Interaction
		err := rows.Scan(
			&in.UserID, &in.VideoID, &in.WatchedTimeSeconds,
			&in.Liked, &in.Commented, &in.Shared, &in.WatchedComplete,
			&in.LastUpdatedAt,
		)
		if err != nil {
			return nil, apperr.Storagef("scan interaction", err)
		}
		interactions = append(interactions, in)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storagef("list interactions", err)
	}
	return interactions, nil
}

// CountAll returns the total number of interaction records (for stats).
func (r *InteractionRepo) CountAll(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM video_interactions`).Scan(&n); err != nil {
		return 0, apperr.Storagef("count interactions", err)
	}
	return n, nil
}
