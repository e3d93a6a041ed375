package id

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	got, err := Generate("post")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if !strings.HasPrefix(got, "post-") {
		t.Errorf("missing prefix: %q", got)
	}
	if len(got) != len("post-")+21 {
		t.Errorf("unexpected length %d: %q", len(got), got)
	}
}

func TestGenerateUnique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := MustGenerate("rec")
		if seen[id] {
			t.Fatalf("duplicate ID generated: %q", id)
		}
		seen[id] = true
	}
}

func TestHasPrefix(t *testing.T) {
	valid := MustGenerate("rec")

	tests := []struct {
		id     string
		prefix string
		want   bool
	}{
		{valid, "rec", true},
		{valid, "post", false},
		{"rec-short", "rec", false},
		{"rec-", "rec", false},
		{"", "rec", false},
		{"not-even-close", "rec", false},
	}

	for _, tt := range tests {
		if got := HasPrefix(tt.id, tt.prefix); got != tt.want {
			t.Errorf("HasPrefix(%q, %q) = %v, want %v", tt.id, tt.prefix, got, tt.want)
		}
	}
}
