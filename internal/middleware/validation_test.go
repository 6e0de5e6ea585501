package middleware

import (
	"strings"
	"testing"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantID  string
		wantErr bool
	}{
		{"valid uuid", "2b1f8a1e-9d7c-4f2a-bb6e-0c3d2f1a9e88", "2b1f8a1e-9d7c-4f2a-bb6e-0c3d2f1a9e88", false},
		{"valid with underscore", "user_123", "user_123", false},
		{"trims whitespace", "  abc  ", "abc", false},
		{"empty", "", "", true},
		{"too long", strings.Repeat("a", 65), "", true},
		{"exactly 64", strings.Repeat("a", 64), strings.Repeat("a", 64), false},
		{"invalid chars", "abc def", "", true},
		{"sql injection", "a'; DROP--", "", true},
		{"unicode", "abcédef", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateID(tt.input, "userId")
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.wantID {
				t.Errorf("got %q, want %q", got, tt.wantID)
			}
		})
	}
}

func TestValidateID_ErrorNamesField(t *testing.T) {
	_, errMsg := ValidateID("", "videoId")
	if !strings.Contains(errMsg, "videoId") {
		t.Errorf("error %q should name the field", errMsg)
	}
}

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		name      string
		pageStr   string
		limitStr  string
		wantPage  int
		wantLimit int
		wantErr   bool
	}{
		{"defaults", "", "", 1, 20, false},
		{"explicit", "3", "50", 3, 50, false},
		{"limit capped", "1", "500", 1, MaxPageSize, false},
		{"page zero", "0", "", 0, 0, true},
		{"negative page", "-1", "", 0, 0, true},
		{"limit zero", "", "0", 0, 0, true},
		{"garbage page", "abc", "", 0, 0, true},
		{"garbage limit", "", "abc", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit, errMsg := ValidatePagination(tt.pageStr, tt.limitStr, 20)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if page != tt.wantPage || limit != tt.wantLimit {
				t.Errorf("got (%d, %d), want (%d, %d)", page, limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestValidateTags(t *testing.T) {
	tags, errMsg := ValidateTags([]string{" pasta ", "", "italian"})
	if errMsg != "" {
		t.Fatalf("unexpected error: %s", errMsg)
	}
	if len(tags) != 2 || tags[0] != "pasta" || tags[1] != "italian" {
		t.Errorf("tags = %v, want [pasta italian]", tags)
	}

	many := make([]string, MaxTags+1)
	for i := range many {
		many[i] = "t"
	}
	if _, errMsg := ValidateTags(many); errMsg == "" {
		t.Error("expected error for too many tags")
	}

	if _, errMsg := ValidateTags([]string{strings.Repeat("x", MaxTagLen+1)}); errMsg == "" {
		t.Error("expected error for an over-long tag")
	}
}

func TestTruncateComment(t *testing.T) {
	if got := TruncateComment("  hello  "); got != "hello" {
		t.Errorf("trim failed: got %q", got)
	}
	long := strings.Repeat("x", MaxCommentLen+100)
	if got := TruncateComment(long); len(got) != MaxCommentLen {
		t.Errorf("truncation failed: got len %d, want %d", len(got), MaxCommentLen)
	}
}
