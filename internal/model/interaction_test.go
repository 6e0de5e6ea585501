package model

import (
	"testing"
	"time"
)

func f64(v float64) *float64 { return &v }
func b(v bool) *bool         { return &v }

func TestMergeInteraction_WatchedTimeMonotonic(t *testing.T) {
	existing := Interaction{UserID: "u1", VideoID: "v1", WatchedTimeSeconds: 40}

	merged, changed := MergeInteraction(existing, InteractionUpdate{WatchedTimeSeconds: f64(55)})
	if !changed {
		t.Fatal("higher watched time should report changed")
	}
	if merged.WatchedTimeSeconds != 55 {
		t.Errorf("watched time = %v, want 55", merged.WatchedTimeSeconds)
	}

	// A stale, lower report must not regress the stored value.
	merged, changed = MergeInteraction(merged, InteractionUpdate{WatchedTimeSeconds: f64(10)})
	if changed {
		t.Error("lower watched time should be a no-op")
	}
	if merged.WatchedTimeSeconds != 55 {
		t.Errorf("watched time = %v, want 55 after stale update", merged.WatchedTimeSeconds)
	}
}

func TestMergeInteraction_WatchedCompleteSticky(t *testing.T) {
	existing := Interaction{UserID: "u1", VideoID: "v1", WatchedComplete: true}

	merged, changed := MergeInteraction(existing, InteractionUpdate{WatchedComplete: b(false)})
	if changed {
		t.Error("false watchedComplete should be a no-op once set")
	}
	if !merged.WatchedComplete {
		t.Error("watchedComplete must never reset to false")
	}
}

func TestMergeInteraction_EngagementFlagsOverwrite(t *testing.T) {
	existing := Interaction{UserID: "u1", VideoID: "v1", Liked: true, Shared: true}

	merged, changed := MergeInteraction(existing, InteractionUpdate{
		Liked:     b(false),
		Commented: b(true),
	})
	if !changed {
		t.Fatal("flag flips should report changed")
	}
	if merged.Liked {
		t.Error("liked should accept an explicit false (unlike)")
	}
	if !merged.Commented {
		t.Error("commented should accept an explicit true")
	}
	if !merged.Shared {
		t.Error("shared was not in the update and must stay true")
	}
}

func TestMergeInteraction_SparseUpdateLeavesFieldsAlone(t *testing.T) {
	existing := Interaction{
		UserID:             "u1",
		VideoID:            "v1",
		WatchedTimeSeconds: 30,
		Liked:              true,
		WatchedComplete:    true,
	}

	merged, changed := MergeInteraction(existing, InteractionUpdate{})
	if changed {
		t.Error("empty update should be a no-op")
	}
	if merged != existing {
		t.Errorf("merged = %+v, want unchanged %+v", merged, existing)
	}
}

func TestMergeInteraction_Idempotent(t *testing.T) {
	existing := Interaction{UserID: "u1", VideoID: "v1"}
	upd := InteractionUpdate{
		WatchedTimeSeconds: f64(20),
		Liked:              b(true),
		WatchedComplete:    b(true),
	}

	once, changed := MergeInteraction(existing, upd)
	if !changed {
		t.Fatal("first application should change the record")
	}

	twice, changed := MergeInteraction(once, upd)
	if changed {
		t.Error("re-applying the same update should be a no-op")
	}
	if twice != once {
		t.Errorf("second apply = %+v, want %+v", twice, once)
	}
}

func TestNewInteraction_Defaults(t *testing.T) {
	now := time.Now()

	rec := NewInteraction("u1", "v1", InteractionUpdate{Liked: b(true)}, now)
	if rec.UserID != "u1" || rec.VideoID != "v1" {
		t.Errorf("key = (%s, %s), want (u1, v1)", rec.UserID, rec.VideoID)
	}
	if !rec.Liked {
		t.Error("liked should carry over from the update")
	}
	if rec.WatchedTimeSeconds != 0 || rec.Commented || rec.Shared || rec.WatchedComplete {
		t.Errorf("unset fields should default to zero values, got %+v", rec)
	}
	if !rec.LastUpdatedAt.Equal(now) {
		t.Errorf("lastUpdatedAt = %v, want %v", rec.LastUpdatedAt, now)
	}
}

func TestNewInteraction_NegativeWatchedTimeIgnored(t *testing.T) {
	rec := NewInteraction("u1", "v1", InteractionUpdate{WatchedTimeSeconds: f64(-5)}, time.Now())
	if rec.WatchedTimeSeconds != 0 {
		t.Errorf("watched time = %v, want 0 for non-positive input", rec.WatchedTimeSeconds)
	}
}
