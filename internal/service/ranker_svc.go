package service

import (
	"context"
	"log"
	"sort"

	"github.com/GabrielPedrotti/irecipes/internal/model"
)

// RankerService turns a taste profile and an exclusion set into an
// ordered, paginated, owner-enriched slice of feed entries.
type RankerService struct {
	catalog        VideoCatalog
	users          UserDirectory
	candidateLimit int
}

func NewRankerService(catalog VideoCatalog, users UserDirectory, candidateLimit int) *RankerService {
	return &RankerService{catalog: catalog, users: users, candidateLimit: candidateLimit}
}

// Rank queries candidates, orders them by tag overlap, engagement and
// recency, applies pagination, and attaches owner summaries. An empty
// profile matches the whole catalog. An empty result is not an error.
func (s *RankerService) Rank(ctx context.Context, profile []string, excluded map[string]struct{}, page, pageSize int) ([]model.FeedVideo, error) {
	excludedIDs := make([]string, 0, len(excluded))
	for id := range excluded {
		excludedIDs = append(excludedIDs, id)
	}

	candidates, err := s.catalog.FindCandidates(ctx, profile, excludedIDs, s.candidateLimit)
	if err != nil {
		return nil, err
	}

	ranked := rankCandidates(candidates, profile)
	pageVideos := paginateVideos(ranked, page, pageSize)

	return attachOwners(ctx, s.users, pageVideos), nil
}

// rankCandidates orders candidates by tag-overlap score descending, then
// engagement score descending, then creation time descending. The input
// slice is not modified.
func rankCandidates(candidates []model.Video, profile []string) []model.Video {
	profileSet := make(map[string]struct{}, len(profile))
	for _, tag := range profile {
		profileSet[tag] = struct{}{}
	}

	ranked := make([]model.Video, len(candidates))
	copy(ranked, candidates)

	overlap := make(map[string]int, len(ranked))
	for _, v := range ranked {
		overlap[v.VideoID] = tagOverlap(v.Tags, profileSet)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if overlap[a.VideoID] != overlap[b.VideoID] {
			return overlap[a.VideoID] > overlap[b.VideoID]
		}
		if a.EngagementScore() != b.EngagementScore() {
			return a.EngagementScore() > b.EngagementScore()
		}
		return a.CreatedAt.After(b.CreatedAt)
	})

	return ranked
}

// tagOverlap counts distinct tags shared with the profile.
func tagOverlap(tags []string, profileSet map[string]struct{}) int {
	counted := make(map[string]struct{}, len(tags))
	n := 0
	for _, tag := range tags {
		if _, dup := counted[tag]; dup {
			continue
		}
		counted[tag] = struct{}{}
		if _, ok := profileSet[tag]; ok {
			n++
		}
	}
	return n
}

// paginateVideos applies skip = (page-1)*pageSize then takes pageSize.
func paginateVideos(videos []model.Video, page, pageSize int) []model.Video {
	skip := (page - 1) * pageSize
	if skip >= len(videos) {
		return nil
	}
	end := skip + pageSize
	if end > len(videos) {
		end = len(videos)
	}
	return videos[skip:end]
}

// attachOwners denormalizes owner summaries onto the page. A failed or
// partial lookup degrades to entries without an owner rather than
// failing the request.
func attachOwners(ctx context.Context, users UserDirectory, videos []model.Video) []model.FeedVideo {
	ownerIDs := make([]string, 0, len(videos))
	seen := make(map[string]struct{}, len(videos))
	for _, v := range videos {
		if _, ok := seen[v.OwnerUserID]; ok {
			continue
		}
		seen[v.OwnerUserID] = struct{}{}
		ownerIDs = append(ownerIDs, v.OwnerUserID)
	}

	summaries, err := users.GetSummaries(ctx, ownerIDs)
	if err != nil {
		log.Printf("feed: owner summary lookup failed, serving without owners: %v", err)
		summaries = nil
	}

	entries := make([]model.FeedVideo, 0, len(videos))
	for _, v := range videos {
		entry := model.FeedVideo{Video: v}
		if s, ok := summaries[v.OwnerUserID]; ok {
			owner := s
			entry.Owner = &owner
		}
		entries = append(entries, entry)
	}
	return entries
}
