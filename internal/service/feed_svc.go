package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math/rand/v2"

	"github.com/GabrielPedrotti/irecipes/internal/apperr"
	"github.com/GabrielPedrotti/irecipes/internal/model"
)

// FeedService orchestrates the recommendation pipeline: affinity profile
// and exclusion set for authenticated users, recent videos for anonymous
// callers, and pinning of a just-posted video.
type FeedService struct {
	catalog      VideoCatalog
	users        UserDirectory
	interactions InteractionLog
	ranker       *RankerService
	cache        *CacheService

	// shuffle restores the reference behavior of shuffling the ranked
	// page before serving. Off by default; the anonymous path is always
	// served in randomized order.
	shuffle bool
}

func NewFeedService(catalog VideoCatalog, users UserDirectory, interactions InteractionLog, ranker *RankerService, cache *CacheService, shuffle bool) *FeedService {
	return &FeedService{
		catalog:      catalog,
		users:        users,
		interactions: interactions,
		ranker:       ranker,
		cache:        cache,
		shuffle:      shuffle,
	}
}

// GetFeed serves one recommendation request.
func (s *FeedService) GetFeed(ctx context.Context, req model.FeedRequest) (*model.FeedResponse, error) {
	if req.Page < 1 {
		return nil, apperr.InvalidArgumentf("page must be >= 1")
	}
	if req.PageSize < 1 {
		return nil, apperr.InvalidArgumentf("limit must be >= 1")
	}

	if req.UserID == "" {
		return s.anonymousFeed(ctx, req)
	}
	return s.personalizedFeed(ctx, req)
}

// anonymousFeed returns a page of recently created videos with no tag
// filter and no exclusion, in randomized presentation order. The total
// count is best-effort: a failed count still serves the page.
func (s *FeedService) anonymousFeed(ctx context.Context, req model.FeedRequest) (*model.FeedResponse, error) {
	entries, ok := s.cachedRecentPage(ctx, req.Page, req.PageSize)
	if !ok {
		videos, err := s.catalog.FindRecent(ctx, req.PageSize, (req.Page-1)*req.PageSize)
		if err != nil {
			return nil, err
		}
		entries = attachOwners(ctx, s.users, videos)
		s.storeRecentPage(ctx, req.Page, req.PageSize, entries)
	}

	resp := &model.FeedResponse{Videos: entries}
	if total, err := s.catalog.CountAll(ctx); err != nil {
		log.Printf("feed: total count unavailable: %v", err)
	} else {
		resp.TotalVideos = &total
	}

	shuffleEntries(resp.Videos)
	return resp, nil
}

func (s *FeedService) personalizedFeed(ctx context.Context, req model.FeedRequest) (*model.FeedResponse, error) {
	user, err := s.users.FindByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	// Resolve the pin before ranking so a missing pin degrades to the
	// plain personalized path.
	var pinned *model.FeedVideo
	if req.PinnedVideoID != "" {
		pinned, err = s.resolvePin(ctx, req.PinnedVideoID)
		if err != nil {
			return nil, err
		}
	}

	interactions, err := s.interactions.ListByUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	videoIDs := make([]string, 0, len(interactions))
	for _, in := range interactions {
		videoIDs = append(videoIDs, in.VideoID)
	}
	interacted, err := s.catalog.FindByIDs(ctx, videoIDs)
	if err != nil {
		return nil, err
	}
	tagsByVideo := make(map[string][]string, len(interacted))
	durationByVideo := make(map[string]float64, len(interacted))
	for _, v := range interacted {
		tagsByVideo[v.VideoID] = v.Tags
		durationByVideo[v.VideoID] = v.DurationSeconds
	}

	authored, err := s.catalog.FindByOwner(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	authoredIDs := make([]string, 0, len(authored))
	for _, v := range authored {
		authoredIDs = append(authoredIDs, v.VideoID)
	}

	profile := BuildTasteProfile(interactions, tagsByVideo, user.Tastes)
	excluded := BuildExclusionSet(interactions, durationByVideo, authoredIDs)

	pageSize := req.PageSize
	if pinned != nil {
		// The pin occupies slot 0 and must not reappear further down.
		excluded[pinned.VideoID] = struct{}{}
		pageSize--
	}

	var entries []model.FeedVideo
	if pageSize > 0 {
		entries, err = s.ranker.Rank(ctx, profile, excluded, req.Page, pageSize)
		if err != nil {
			return nil, err
		}
	}

	if s.shuffle {
		shuffleEntries(entries)
	}
	if pinned != nil {
		entries = append([]model.FeedVideo{*pinned}, entries...)
	}
	if entries == nil {
		entries = []model.FeedVideo{}
	}

	return &model.FeedResponse{Videos: entries}, nil
}

// resolvePin looks up the pinned video and its owner. A missing video
// returns (nil, nil) so the caller falls back to the unpinned path; a
// missing owner just omits the owner field.
func (s *FeedService) resolvePin(ctx context.Context, videoID string) (*model.FeedVideo, error) {
	video, err := s.catalog.FindByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	entry := model.FeedVideo{Video: *video}
	summaries, err := s.users.GetSummaries(ctx, []string{video.OwnerUserID})
	if err != nil {
		log.Printf("feed: pinned owner lookup failed, serving without owner: %v", err)
	} else if owner, ok := summaries[video.OwnerUserID]; ok {
		entry.Owner = &owner
	}
	return &entry, nil
}

func (s *FeedService) cachedRecentPage(ctx context.Context, page, pageSize int) ([]model.FeedVideo, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.GetRecentFeedPage(ctx, page, pageSize)
	if err != nil || data == nil {
		return nil, false
	}
	var entries []model.FeedVideo
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

func (s *FeedService) storeRecentPage(ctx context.Context, page, pageSize int, entries []model.FeedVideo) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetRecentFeedPage(ctx, page, pageSize, entries); err != nil {
		log.Printf("feed: cache store failed: %v", err)
	}
}

func shuffleEntries(entries []model.FeedVideo) {
	rand.Shuffle(len(entries), func(i, j int) {
		entries[i], entries[j] = entries[j], entries[i]
	})
}
