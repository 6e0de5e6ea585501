package service

import "github.com/GabrielPedrotti/irecipes/internal/model"

// Exclusion policy constants. A video counts as consumed once the scaled
// watched time crosses the duration fraction.
const (
	watchedTimeScale         = 1000.0
	watchedDurationThreshold = 0.05
)

// BuildExclusionSet returns the video ids withheld from recommendation:
// anything the user liked, commented on, shared, watched to completion
// or substantially watched, plus everything the user posted themselves.
func BuildExclusionSet(interactions []model.Interaction, durationByVideo map[string]float64, authoredVideoIDs []string) map[string]struct{} {
	excluded := make(map[string]struct{})

	for _, in := range interactions {
		if in.Liked || in.Commented || in.Shared || in.WatchedComplete {
			excluded[in.VideoID] = struct{}{}
			continue
		}
		// Holds trivially when the duration is zero or unknown, so any
		// interacted video without a positive duration is withheld.
		if in.WatchedTimeSeconds*watchedTimeScale >= watchedDurationThreshold*durationByVideo[in.VideoID] {
			excluded[in.VideoID] = struct{}{}
		}
	}

	for _, id := range authoredVideoIDs {
		excluded[id] = struct{}{}
	}

	return excluded
}
