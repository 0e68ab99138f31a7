package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantSame bool
	}{
		{
			name:     "same content produces same ID",
			content:  "test content",
			wantSame: true,
		},
		{
			name:     "empty string",
			content:  "",
			wantSame: true,
		},
		{
			name:     "long content",
			content:  "This is a much longer piece of content that should still hash consistently",
			wantSame: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if tt.wantSame && id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestNormalizeConfidenceTag(t *testing.T) {
	tests := []struct {
		name string
		tag  ConfidenceTag
		want ConfidenceTag
	}{
		{
			name: "high passes through",
			tag:  ConfidenceHigh,
			want: ConfidenceHigh,
		},
		{
			name: "medium passes through",
			tag:  ConfidenceMedium,
			want: ConfidenceMedium,
		},
		{
			name: "low passes through",
			tag:  ConfidenceLow,
			want: ConfidenceLow,
		},
		{
			name: "unknown defaults to medium",
			tag:  ConfidenceTag("very sure"),
			want: ConfidenceMedium,
		},
		{
			name: "empty defaults to medium",
			tag:  ConfidenceTag(""),
			want: ConfidenceMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeConfidenceTag(tt.tag)
			if got != tt.want {
				t.Errorf("NormalizeConfidenceTag(%q) = %v, want %v", tt.tag, got, tt.want)
			}
		})
	}
}
