package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GabrielPedrotti/irecipes/internal/apperr"
	"github.com/GabrielPedrotti/irecipes/internal/model"
)

var errTest = errors.New("boom")

// fakeVideoCatalog is an in-memory VideoCatalog. Videos are served in
// insertion order; FindCandidates honors the exclusion list and, when a
// tag filter is present, requires at least one matching tag.
type fakeVideoCatalog struct {
	videos []model.Video
}

func (f *fakeVideoCatalog) FindCandidates(_ context.Context, tagFilter []string, excluding []string, limit int) ([]model.Video, error) {
	excluded := make(map[string]struct{}, len(excluding))
	for _, id := range excluding {
		excluded[id] = struct{}{}
	}
	filter := make(map[string]struct{}, len(tagFilter))
	for _, tag := range tagFilter {
		filter[tag] = struct{}{}
	}

	var out []model.Video
	for _, v := range f.videos {
		if _, ok := excluded[v.VideoID]; ok {
			continue
		}
		if len(filter) > 0 {
			match := false
			for _, tag := range v.Tags {
				if _, ok := filter[tag]; ok {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, v)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeVideoCatalog) FindByID(_ context.Context, videoID string) (*model.Video, error) {
	for _, v := range f.videos {
		if v.VideoID == videoID {
			vv := v
			return &vv, nil
		}
	}
	return nil, apperr.NotFoundf("video %s not found", videoID)
}

func (f *fakeVideoCatalog) FindByIDs(_ context.Context, videoIDs []string) ([]model.Video, error) {
	want := make(map[string]struct{}, len(videoIDs))
	for _, id := range videoIDs {
		want[id] = struct{}{}
	}
	var out []model.Video
	for _, v := range f.videos {
		if _, ok := want[v.VideoID]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeVideoCatalog) FindRecent(_ context.Context, limit, skip int) ([]model.Video, error) {
	if skip >= len(f.videos) {
		return nil, nil
	}
	end := skip + limit
	if end > len(f.videos) {
		end = len(f.videos)
	}
	return f.videos[skip:end], nil
}

func (f *fakeVideoCatalog) FindByOwner(_ context.Context, ownerUserID string) ([]model.Video, error) {
	var out []model.Video
	for _, v := range f.videos {
		if v.OwnerUserID == ownerUserID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeVideoCatalog) CountAll(_ context.Context) (int, error) {
	return len(f.videos), nil
}

type fakeUserDirectory struct {
	users        map[string]model.User
	summaries    map[string]model.OwnerSummary
	summariesErr error
}

func (f *fakeUserDirectory) FindByUserID(_ context.Context, userID string) (*model.User, error) {
	if u, ok := f.users[userID]; ok {
		uu := u
		return &uu, nil
	}
	return nil, apperr.NotFoundf("user %s not found", userID)
}

func (f *fakeUserDirectory) GetSummaries(_ context.Context, userIDs []string) (map[string]model.OwnerSummary, error) {
	if f.summariesErr != nil {
		return nil, f.summariesErr
	}
	out := make(map[string]model.OwnerSummary)
	for _, id := range userIDs {
		if s, ok := f.summaries[id]; ok {
			out[id] = s
		}
	}
	return out, nil
}

type fakeInteractionLog struct {
	byUser map[string][]model.Interaction
}

func (f *fakeInteractionLog) ListByUser(_ context.Context, userID string) ([]model.Interaction, error) {
	return f.byUser[userID], nil
}

func newTestFeedService(catalog *fakeVideoCatalog, users *fakeUserDirectory, interactions *fakeInteractionLog) *FeedService {
	ranker := NewRankerService(catalog, users, 500)
	return NewFeedService(catalog, users, interactions, ranker, nil, false)
}

func testVideo(id, owner string, tags ...string) model.Video {
	return model.Video{
		VideoID:     id,
		Title:       "video " + id,
		Tags:        tags,
		OwnerUserID: owner,
		CreatedAt:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestGetFeed_RejectsBadPagination(t *testing.T) {
	svc := newTestFeedService(&fakeVideoCatalog{}, &fakeUserDirectory{}, &fakeInteractionLog{})

	_, err := svc.GetFeed(context.Background(), model.FeedRequest{Page: 0, PageSize: 10})
	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Errorf("page 0: err = %v, want ErrInvalidArgument", err)
	}

	_, err = svc.GetFeed(context.Background(), model.FeedRequest{Page: 1, PageSize: 0})
	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Errorf("limit 0: err = %v, want ErrInvalidArgument", err)
	}
}

func TestGetFeed_AnonymousServesRecentPage(t *testing.T) {
	catalog := &fakeVideoCatalog{videos: []model.Video{
		testVideo("v1", "u1", "pasta"),
		testVideo("v2", "u2", "sushi"),
		testVideo("v3", "u3", "tacos"),
	}}
	svc := newTestFeedService(catalog, &fakeUserDirectory{}, &fakeInteractionLog{})

	resp, err := svc.GetFeed(context.Background(), model.FeedRequest{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("GetFeed: %v", err)
	}

	if len(resp.Videos) != 2 {
		t.Fatalf("len(videos) = %d, want 2", len(resp.Videos))
	}
	// Presentation order is randomized; check membership only.
	got := map[string]bool{}
	for _, e := range resp.Videos {
		got[e.VideoID] = true
	}
	if !got["v1"] || !got["v2"] {
		t.Errorf("videos = %v, want {v1, v2}", got)
	}
	if resp.TotalVideos == nil || *resp.TotalVideos != 3 {
		t.Errorf("total = %v, want 3", resp.TotalVideos)
	}
}

func TestGetFeed_UnknownUser(t *testing.T) {
	svc := newTestFeedService(&fakeVideoCatalog{}, &fakeUserDirectory{}, &fakeInteractionLog{})

	_, err := svc.GetFeed(context.Background(), model.FeedRequest{UserID: "ghost", Page: 1, PageSize: 10})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestGetFeed_PersonalizedExcludesConsumedAndAuthored(t *testing.T) {
	catalog := &fakeVideoCatalog{videos: []model.Video{
		testVideo("likedVideo", "other", "pasta"),
		testVideo("myOwn", "me", "pasta"),
		testVideo("fresh", "other", "pasta"),
	}}
	users := &fakeUserDirectory{users: map[string]model.User{
		"me": {UserID: "me"},
	}}
	interactions := &fakeInteractionLog{byUser: map[string][]model.Interaction{
		"me": {{VideoID: "likedVideo", Liked: true}},
	}}
	svc := newTestFeedService(catalog, users, interactions)

	resp, err := svc.GetFeed(context.Background(), model.FeedRequest{UserID: "me", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("GetFeed: %v", err)
	}

	if len(resp.Videos) != 1 || resp.Videos[0].VideoID != "fresh" {
		t.Errorf("videos = %+v, want only fresh", resp.Videos)
	}
	if resp.TotalVideos != nil {
		t.Error("personalized responses do not report a total")
	}
}

func TestGetFeed_ProfileOrdersCandidates(t *testing.T) {
	catalog := &fakeVideoCatalog{videos: []model.Video{
		testVideo("sushiVid", "other", "sushi"),
		testVideo("pastaVid", "other", "pasta"),
		testVideo("likedPasta", "other", "pasta"),
	}}
	users := &fakeUserDirectory{users: map[string]model.User{
		"me": {UserID: "me"},
	}}
	interactions := &fakeInteractionLog{byUser: map[string][]model.Interaction{
		"me": {{VideoID: "likedPasta", Liked: true}},
	}}
	svc := newTestFeedService(catalog, users, interactions)

	resp, err := svc.GetFeed(context.Background(), model.FeedRequest{UserID: "me", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("GetFeed: %v", err)
	}

	// likedPasta is excluded; the pasta profile admits only pastaVid
	// through the tag filter.
	if len(resp.Videos) != 1 || resp.Videos[0].VideoID != "pastaVid" {
		t.Errorf("videos = %+v, want only pastaVid", resp.Videos)
	}
}

func TestGetFeed_PinnedVideoTakesFirstSlot(t *testing.T) {
	catalog := &fakeVideoCatalog{videos: []model.Video{
		testVideo("pinned", "me", "pasta"),
		testVideo("v1", "other", "pasta"),
		testVideo("v2", "other", "pasta"),
		testVideo("v3", "other", "pasta"),
	}}
	users := &fakeUserDirectory{
		users:     map[string]model.User{"me": {UserID: "me"}},
		summaries: map[string]model.OwnerSummary{"me": {UserID: "me", Name: "Me"}},
	}
	svc := newTestFeedService(catalog, users, &fakeInteractionLog{})

	resp, err := svc.GetFeed(context.Background(), model.FeedRequest{
		UserID:        "me",
		PinnedVideoID: "pinned",
		Page:          1,
		PageSize:      3,
	})
	if err != nil {
		t.Fatalf("GetFeed: %v", err)
	}

	if len(resp.Videos) != 3 {
		t.Fatalf("len(videos) = %d, want exactly the requested page size", len(resp.Videos))
	}
	if resp.Videos[0].VideoID != "pinned" {
		t.Errorf("videos[0] = %s, want the pinned video", resp.Videos[0].VideoID)
	}
	if resp.Videos[0].Owner == nil || resp.Videos[0].Owner.Name != "Me" {
		t.Errorf("pinned owner = %+v, want Me", resp.Videos[0].Owner)
	}
	for _, e := range resp.Videos[1:] {
		if e.VideoID == "pinned" {
			t.Error("pinned video must not reappear below slot 0")
		}
	}
}

func TestGetFeed_MissingPinFallsBackToPlainFeed(t *testing.T) {
	catalog := &fakeVideoCatalog{videos: []model.Video{
		testVideo("v1", "other", "pasta"),
		testVideo("v2", "other", "pasta"),
	}}
	users := &fakeUserDirectory{users: map[string]model.User{
		"me": {UserID: "me"},
	}}
	svc := newTestFeedService(catalog, users, &fakeInteractionLog{})

	resp, err := svc.GetFeed(context.Background(), model.FeedRequest{
		UserID:        "me",
		PinnedVideoID: "deleted",
		Page:          1,
		PageSize:      10,
	})
	if err != nil {
		t.Fatalf("GetFeed: %v", err)
	}

	if len(resp.Videos) != 2 {
		t.Errorf("len(videos) = %d, want the full unpinned page", len(resp.Videos))
	}
}

func TestGetFeed_PinnedWithPageSizeOne(t *testing.T) {
	catalog := &fakeVideoCatalog{videos: []model.Video{
		testVideo("pinned", "me"),
		testVideo("v1", "other"),
	}}
	users := &fakeUserDirectory{users: map[string]model.User{
		"me": {UserID: "me"},
	}}
	svc := newTestFeedService(catalog, users, &fakeInteractionLog{})

	resp, err := svc.GetFeed(context.Background(), model.FeedRequest{
		UserID:        "me",
		PinnedVideoID: "pinned",
		Page:          1,
		PageSize:      1,
	})
	if err != nil {
		t.Fatalf("GetFeed: %v", err)
	}

	if len(resp.Videos) != 1 || resp.Videos[0].VideoID != "pinned" {
		t.Errorf("videos = %+v, want just the pinned video", resp.Videos)
	}
}

func TestGetFeed_ColdStartServesWholeCatalog(t *testing.T) {
	catalog := &fakeVideoCatalog{videos: []model.Video{
		testVideo("v1", "other", "pasta"),
		testVideo("v2", "other", "sushi"),
	}}
	users := &fakeUserDirectory{users: map[string]model.User{
		"newbie": {UserID: "newbie"},
	}}
	svc := newTestFeedService(catalog, users, &fakeInteractionLog{})

	resp, err := svc.GetFeed(context.Background(), model.FeedRequest{UserID: "newbie", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("GetFeed: %v", err)
	}

	// No history and no tastes: empty profile means no tag filter.
	if len(resp.Videos) != 2 {
		t.Errorf("len(videos) = %d, want the whole catalog", len(resp.Videos))
	}
}
