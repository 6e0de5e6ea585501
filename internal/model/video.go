package model

import "time"

// Video represents a posted video in the catalog.
type Video struct {
	VideoID         string    `json:"videoId"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Tags            []string  `json:"tags"`
	URL             string    `json:"url"`
	DurationSeconds float64   `json:"duration"`
	OwnerUserID     string    `json:"ownerUserId"`
	LikeCount       int       `json:"likeCount"`
	CommentCount    int       `json:"commentCount"`
	CreatedAt       time.Time `json:"createdAt"`
}

// EngagementScore is the aggregate popularity signal used as a ranking
// tie-breaker.
func (v Video) EngagementScore() int {
	return v.LikeCount + v.CommentCount
}

// Comment is a comment embedded in a video's comment thread.
type Comment struct {
	VideoID   string    `json:"-"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Body      string    `json:"comment"`
	CreatedAt time.Time `json:"timestamp"`
}

// PostVideoRequest is the API request body for posting a video.
type PostVideoRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	URL         string   `json:"url"`
	Duration    float64  `json:"duration"`
	UserID      string   `json:"userId"`
}

// CommentRequest is the API request body for posting a comment.
type CommentRequest struct {
	UserID string `json:"userId"`
	Body   string `json:"comment"`
}

// LikeRequest is the API request body for liking a video.
type LikeRequest struct {
	UserID string `json:"userId"`
}

// VideoListResponse is the paged catalog listing response.
type VideoListResponse struct {
	Videos      []Video `json:"videos"`
	TotalVideos int     `json:"total_num_videos"`
}
