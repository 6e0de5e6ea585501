package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GabrielPedrotti/irecipes/internal/apperr"
	"github.com/GabrielPedrotti/irecipes/internal/model"
)

const videoColumns = `video_id, title, description, tags, url, duration_seconds, owner_user_id, like_count, comment_count, created_at`

type VideoRepo struct {
	pool *pgxpool.Pool
}

func NewVideoRepo(pool *pgxpool.Pool) *VideoRepo {
	return &VideoRepo{pool: pool}
}

// FindCandidates returns videos whose tag set intersects tagFilter and
// whose id is not in excluding, bounded by limit. A nil or empty
// tagFilter matches everything (the cold-start rule).
func (r *VideoRepo) FindCandidates(ctx context.Context, tagFilter []string, excluding []string, limit int) ([]model.Video, error) {
	if excluding == nil {
		excluding = []string{}
	}

	query := `
		SELECT ` + videoColumns + `
		FROM videos
		WHERE ($1::text[] IS NULL OR tags && $1)
		  AND video_id != ALL($2::text[])
		ORDER BY created_at DESC
		LIMIT $3`

	var filter any
	if len(tagFilter) > 0 {
		filter = tagFilter
	}

	rows, err := r.pool.Query(ctx, query, filter, excluding, limit)
	if err != nil {
		return nil, apperr.Storagef("find candidates", err)
	}
	defer rows.Close()
	return scanVideos(rows)
}

// FindByID returns a single video by id.
func (r *VideoRepo) FindByID(ctx context.Context, videoID string) (*model.Video, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+videoColumns+` FROM videos WHERE video_id = $1`, videoID)
	v, err := scanVideo(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFoundf("video %s", videoID)
		}
		return nil, apperr.Storagef("find video", err)
	}
	return v, nil
}

// FindByIDs returns the videos for the given ids. Missing ids are
// silently absent from the result.
func (r *VideoRepo) FindByIDs(ctx context.Context, videoIDs []string) ([]model.Video, error) {
	if len(videoIDs) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT `+videoColumns+` FROM videos WHERE video_id = ANY($1::text[])`, videoIDs)
	if err != nil {
		return nil, apperr.Storagef("find videos by ids", err)
	}
	defer rows.Close()
	return scanVideos(rows)
}

// FindRecent returns the most recently created videos, paged.
func (r *VideoRepo) FindRecent(ctx context.Context, limit, skip int) ([]model.Video, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+videoColumns+`
		FROM videos
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`,
		limit, skip)
	if err != nil {
		return nil, apperr.Storagef("find recent videos", err)
	}
	defer rows.Close()
	return scanVideos(rows)
}

// FindByOwner returns all videos posted by a user, newest first.
func (r *VideoRepo) FindByOwner(ctx context.Context, ownerUserID string) ([]model.Video, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+videoColumns+`
		FROM videos
		WHERE owner_user_id = $1
		ORDER BY created_at DESC`,
		ownerUserID)
	if err != nil {
		return nil, apperr.Storagef("find videos by owner", err)
	}
	defer rows.Close()
	return scanVideos(rows)
}

// CountAll returns the catalog size.
func (r *VideoRepo) CountAll(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM videos`).Scan(&n); err != nil {
		return 0, apperr.Storagef("count videos", err)
	}
	return n, nil
}

// Insert stores a newly posted video.
func (r *VideoRepo) Insert(ctx context.Context, v model.Video) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO videos (video_id, title, description, tags, url, duration_seconds, owner_user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		v.VideoID, v.Title, v.Description, v.Tags, v.URL, v.DurationSeconds, v.OwnerUserID, v.CreatedAt)
	if err != nil {
		return apperr.Storagef("insert video", err)
	}
	return nil
}

// InsertLike records a like and bumps the counter. Duplicate likes are
// no-ops. The engagement worker picks up the notify and verifies the
// counter against the likes table.
func (r *VideoRepo) InsertLike(ctx context.Context, videoID, userID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return apperr.Storagef("insert like", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		INSERT INTO video_likes (video_id, user_id) VALUES ($1, $2)
		ON CONFLICT (video_id, user_id) DO NOTHING`,
		videoID, userID)
	if err != nil {
		return apperr.Storagef("insert like", err)
	}
	if tag.RowsAffected() == 0 {
		return tx.Commit(ctx)
	}

	_, err = tx.Exec(ctx, `UPDATE videos SET like_count = like_count + 1 WHERE video_id = $1`, videoID)
	if err != nil {
		return apperr.Storagef("insert like", err)
	}
	if _, err = tx.Exec(ctx, `SELECT pg_notify('video_engagement', $1)`, videoID); err != nil {
		return apperr.Storagef("insert like", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return apperr.Storagef("insert like", err)
	}
	return nil
}

// DeleteLike removes a like and decrements the counter.
func (r *VideoRepo) DeleteLike(ctx context.Context, videoID, userID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return apperr.Storagef("delete like", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM video_likes WHERE video_id = $1 AND user_id = $2`, videoID, userID)
	if err != nil {
		return apperr.Storagef("delete like", err)
	}
	if tag.RowsAffected() == 0 {
		return tx.Commit(ctx)
	}

	_, err = tx.Exec(ctx, `
		UPDATE videos SET like_count = like_count - 1
		WHERE video_id = $1 AND like_count > 0`, videoID)
	if err != nil {
		return apperr.Storagef("delete like", err)
	}
	if _, err = tx.Exec(ctx, `SELECT pg_notify('video_engagement', $1)`, videoID); err != nil {
		return apperr.Storagef("delete like", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return apperr.Storagef("delete like", err)
	}
	return nil
}

// ListLikes returns the user ids that liked a video.
func (r *VideoRepo) ListLikes(ctx context.Context, videoID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT user_id FROM video_likes WHERE video_id = $1 ORDER BY created_at`, videoID)
	if err != nil {
		return nil, apperr.Storagef("list likes", err)
	}
	defer rows.Close()

	likes := []string{}
	for rows.Next() {
		var uid string
		if err := rows.Scan(&uid); err != nil {
			return nil, apperr.Storagef("scan like", err)
		}
		likes = append(likes, uid)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storagef("list likes", err)
	}
	return likes, nil
}

// InsertComment stores a comment and bumps the counter.
func (r *VideoRepo) InsertComment(ctx context.Context, c model.Comment) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return apperr.Storagef("insert comment", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO video_comments (video_id, user_id, user_name, body, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		c.VideoID, c.UserID, c.UserName, c.Body, c.CreatedAt)
	if err != nil {
		return apperr.Storagef("insert comment", err)
	}
	_, err = tx.Exec(ctx, `UPDATE videos SET comment_count = comment_count + 1 WHERE video_id = $1`, c.VideoID)
	if err != nil {
		return apperr.Storagef("insert comment", err)
	}
	if _, err = tx.Exec(ctx, `SELECT pg_notify('video_engagement', $1)`, c.VideoID); err != nil {
		return apperr.Storagef("insert comment", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return apperr.Storagef("insert comment", err)
	}
	return nil
}

// ListComments returns a video's comments, oldest first.
func (r *VideoRepo) ListComments(ctx context.Context, videoID string) ([]model.Comment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT video_id, user_id, user_name, body, created_at
		FROM video_comments
		WHERE video_id = $1
		ORDER BY created_at`,
		videoID)
	if err != nil {
		return nil, apperr.Storagef("list comments", err)
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.VideoID, &c.UserID, &c.UserName, &c.Body, &c.CreatedAt); err != nil {
			return nil, apperr.Storagef("scan comment", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storagef("list comments", err)
	}
	return comments, nil
}

// RecountEngagement repairs the denormalized like/comment counters from
// the source tables. Idempotent; called by the engagement worker.
func (r *VideoRepo) RecountEngagement(ctx context.Context, videoID string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE videos SET
			like_count    = (SELECT COUNT(*) FROM video_likes    WHERE video_id = $1),
			comment_count = (SELECT COUNT(*) FROM video_comments WHERE video_id = $1)
		WHERE video_id = $1`,
		videoID)
	if err != nil {
		return apperr.Storagef("recount engagement", err)
	}
	return nil
}

// EngagementTotals returns global like/comment counts (for stats).
func (r *VideoRepo) EngagementTotals(ctx context.Context) (likes, comments int, err error) {
	err = r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM video_likes),
			(SELECT COUNT(*) FROM video_comments)`).Scan(&likes, &comments)
	if err != nil {
		return 0, 0, apperr.Storagef("engagement totals", err)
	}
	return likes, comments, nil
}

func scanVideos(rows pgx.Rows) ([]model.Video, error) {
	var videos []model.Video
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, apperr.Storagef("scan video", err)
		}
		videos = append(videos, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storagef("scan videos", err)
	}
	return videos, nil
}

func scanVideo(row pgx.Row) (*model.Video, error) {
	var v model.Video
	err := row.Scan(
		&v.VideoID, &v.Title, &v.Description, &v.Tags, &v.URL,
		&v.DurationSeconds, &v.OwnerUserID, &v.LikeCount, &v.CommentCount,
		&v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
