package model

import "time"

// Interaction is the per-(user, video) engagement record. There is at
// most one row per key; writes merge into it and never delete it.
type Interaction struct {
	UserID             string    `json:"userId"`
	VideoID            string    `json:"videoId"`
	WatchedTimeSeconds float64   `json:"watchedTimeSeconds"`
	Liked              bool      `json:"liked"`
	Commented          bool      `json:"commented"`
	Shared             bool      `json:"shared"`
	WatchedComplete    bool      `json:"watchedComplete"`
	LastUpdatedAt      time.Time `json:"lastUpdatedAt"`
}

// InteractionUpdate is a sparse update for an interaction record.
// Nil fields are left untouched by the merge.
type InteractionUpdate struct {
	WatchedTimeSeconds *float64 `json:"watchedTimeSeconds"`
	Liked              *bool    `json:"liked"`
	Commented          *bool    `json:"commented"`
	Shared             *bool    `json:"shared"`
	WatchedComplete    *bool    `json:"watchedComplete"`
}

// MergeInteraction applies upd to existing and reports whether any field
// changed. It is the semantic reference for the conditional-update SQL in
// the interaction repository:
//
//   - watchedTimeSeconds only ever increases (monotonic max)
//   - watchedComplete is sticky: once true it never resets
//   - liked/commented/shared take the incoming value unconditionally
//
// The caller refreshes LastUpdatedAt when changed is true.
func MergeInteraction(existing Interaction, upd InteractionUpdate) (merged Interaction, changed bool) {
	merged = existing

	if upd.WatchedTimeSeconds != nil && *upd.WatchedTimeSeconds > merged.WatchedTimeSeconds {
		merged.WatchedTimeSeconds = *upd.WatchedTimeSeconds
		changed = true
	}
	if upd.Liked != nil && *upd.Liked != merged.Liked {
		merged.Liked = *upd.Liked
		changed = true
	}
	if upd.Commented != nil && *upd.Commented != merged.Commented {
		merged.Commented = *upd.Commented
		changed = true
	}
	if upd.Shared != nil && *upd.Shared != merged.Shared {
		merged.Shared = *upd.Shared
		changed = true
	}
	if upd.WatchedComplete != nil && *upd.WatchedComplete && !merged.WatchedComplete {
		merged.WatchedComplete = true
		changed = true
	}

	return merged, changed
}

// NewInteraction builds the record created on the first event for a key.
// Unset booleans default to false and unset watched time to zero.
func NewInteraction(userID, videoID string, upd InteractionUpdate, now time.Time) Interaction {
	rec := Interaction{
		UserID:        userID,
		VideoID:       videoID,
		LastUpdatedAt: now,
	}
	if upd.WatchedTimeSeconds != nil && *upd.WatchedTimeSeconds > 0 {
		rec.WatchedTimeSeconds = *upd.WatchedTimeSeconds
	}
	if upd.Liked != nil {
		rec.Liked = *upd.Liked
	}
	if upd.Commented != nil {
		rec.Commented = *upd.Commented
	}
	if upd.Shared != nil {
		rec.Shared = *upd.Shared
	}
	if upd.WatchedComplete != nil {
		rec.WatchedComplete = *upd.WatchedComplete
	}
	return rec
}
