package service

import (
	"sort"

	"github.com/GabrielPedrotti/irecipes/internal/model"
)

// Signal weights for the taste profile. A video contributes the weight
// of every signal it carries (the signals are independent booleans, not
// mutually exclusive tiers).
const (
	weightShared          = 3
	weightCommented       = 2
	weightLiked           = 1
	weightWatchedComplete = 1
	weightStatedTaste     = 1
)

// BuildTasteProfile derives the ranked tag list for one request from the
// user's interaction history and stated tastes.
//
// Conceptually each tag of each interacted video is replicated into a
// multiset, weighted by signal (shared 3, commented 2, liked 1, watched
// to completion 1), with stated tastes added once each as a baseline.
// Tags come out ordered by total weight descending, ties broken by the
// order in which the multiset construction first saw the tag: shared
// videos first, then commented, liked, watched-complete, then tastes,
// each pass in interaction order.
//
// An empty result means "no tag filter", never "match nothing".
func BuildTasteProfile(interactions []model.Interaction, tagsByVideo map[string][]string, tastes []string) []string {
	type tagWeight struct {
		tag       string
		weight    int
		firstSeen int
	}

	weights := make(map[string]*tagWeight)
	order := []*tagWeight{}

	accumulate := func(tag string, w int) {
		tw, ok := weights[tag]
		if !ok {
			tw = &tagWeight{tag: tag, firstSeen: len(order)}
			weights[tag] = tw
			order = append(order, tw)
		}
		tw.weight += w
	}

	passes := []struct {
		include func(model.Interaction) bool
		weight  int
	}{
		{func(in model.Interaction) bool { return in.Shared }, weightShared},
		{func(in model.Interaction) bool { return in.Commented }, weightCommented},
		{func(in model.Interaction) bool { return in.Liked }, weightLiked},
		{func(in model.Interaction) bool { return in.WatchedComplete }, weightWatchedComplete},
	}

	for _, pass := range passes {
		for _, in := range interactions {
			if !pass.include(in) {
				continue
			}
			for _, tag := range tagsByVideo[in.VideoID] {
				accumulate(tag, pass.weight)
			}
		}
	}

	for _, taste := range tastes {
		accumulate(taste, weightStatedTaste)
	}

	// order already holds tags in first-seen sequence; a stable sort by
	// weight keeps that sequence for ties.
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].weight > order[j].weight
	})

	profile := make([]string, len(order))
	for i, tw := range order {
		profile[i] = tw.tag
	}
	return profile
}
