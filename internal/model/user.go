package model

import "time"

// User represents an account. Tastes are the stated taste tags used as
// the baseline personalization signal.
type User struct {
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Handle    string    `json:"userName"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	Tastes    []string  `json:"tastes"`
	CreatedAt time.Time `json:"-"`
}

// OwnerSummary is the compact owner view denormalized onto feed entries.
type OwnerSummary struct {
	UserID    string `json:"id"`
	Name      string `json:"name"`
	Handle    string `json:"userName"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// StatsResponse is the API response for global statistics.
type StatsResponse struct {
	TotalVideos       int `json:"totalVideos"`
	TotalUsers        int `json:"totalUsers"`
	TotalInteractions int `json:"totalInteractions"`
	TotalLikes        int `json:"totalLikes"`
	TotalComments     int `json:"totalComments"`
}
