package model

// FeedRequest describes one recommendation request.
type FeedRequest struct {
	UserID        string // empty for anonymous callers
	PinnedVideoID string // just-posted video forced to position 0
	Page          int    // >= 1
	PageSize      int    // >= 1
}

// FeedVideo is a catalog video denormalized with its owner summary.
// Owner is omitted when the lookup cannot resolve it.
type FeedVideo struct {
	Video
	Owner *OwnerSummary `json:"owner,omitempty"`
}

// FeedResponse is the recommendation API response. TotalVideos is only
// reported on the anonymous path, and only best-effort.
type FeedResponse struct {
	Videos      []FeedVideo `json:"videos"`
	TotalVideos *int        `json:"total_num_videos,omitempty"`
}

// InteractionRequest is the API request body for recording an
// interaction event.
type InteractionRequest struct {
	UserID  string `json:"userId"`
	VideoID string `json:"videoId"`
	InteractionUpdate
}
