package labels

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/tkesgar/javelin/internal/models"
)

func TestDeriveMatchesConfiguredLabels(t *testing.T) {
	boardLabels := []models.Label{{Key: "urgent", Color: "#ff0000"}}
	now := time.Now()

	tags := Derive("fix #urgent now", boardLabels, 0, now, now)

	if !reflect.DeepEqual(tags, []string{"urgent"}) {
		t.Errorf("Expected [urgent], got %v", tags)
	}
}

func TestDeriveIgnoresUnconfiguredTags(t *testing.T) {
	boardLabels := []models.Label{{Key: "urgent", Color: "#ff0000"}}
	now := time.Now()

	tags := Derive("fix #urgent #whenever", boardLabels, 0, now, now)

	if !reflect.DeepEqual(tags, []string{"urgent"}) {
		t.Errorf("Expected [urgent], got %v", tags)
	}
}

func TestDeriveAddsStaleTag(t *testing.T) {
	boardLabels := []models.Label{{Key: "urgent", Color: "#ff0000"}}
	now := time.Now()
	created := now.Add(-61 * time.Minute)

	tags := Derive("fix #urgent now", boardLabels, 60, created, now)

	// Sorted lexicographically for stable rendering
	if !reflect.DeepEqual(tags, []string{"stale", "urgent"}) {
		t.Errorf("Expected [stale urgent], got %v", tags)
	}
}

func TestDeriveNoStaleTagBelowThreshold(t *testing.T) {
	now := time.Now()
	created := now.Add(-59 * time.Minute)

	tags := Derive("nothing to see", nil, 60, created, now)

	if len(tags) != 0 {
		t.Errorf("Expected no tags, got %v", tags)
	}
}

func TestDeriveStaleAtExactThreshold(t *testing.T) {
	now := time.Now()
	created := now.Add(-60 * time.Minute)

	tags := Derive("", nil, 60, created, now)

	if !reflect.DeepEqual(tags, []string{"stale"}) {
		t.Errorf("Expected [stale], got %v", tags)
	}
}

func TestDeriveDeduplicates(t *testing.T) {
	boardLabels := []models.Label{{Key: "urgent", Color: "#ff0000"}}
	now := time.Now()

	tags := Derive("#urgent and #urgent again", boardLabels, 0, now, now)

	if !reflect.DeepEqual(tags, []string{"urgent"}) {
		t.Errorf("Expected [urgent], got %v", tags)
	}
}

func TestDeriveStaleNotDuplicatedWithStaleLabel(t *testing.T) {
	boardLabels := []models.Label{{Key: "stale", Color: "#808080"}}
	now := time.Now()
	created := now.Add(-2 * time.Hour)

	tags := Derive("this is #stale", boardLabels, 60, created, now)

	if !reflect.DeepEqual(tags, []string{"stale"}) {
		t.Errorf("Expected [stale], got %v", tags)
	}
}

func TestColorYIQ(t *testing.T) {
	tests := []struct {
		color string
		want  string
	}{
		{"#000000", "#ffffff"},
		{"#ffffff", "#212529"},
		{"#ff0000", "#ffffff"},
		{"#ffff00", "#212529"},
		{"not-a-color", "#212529"},
	}

	for _, tt := range tests {
		if got := ColorYIQ(tt.color); got != tt.want {
			t.Errorf("ColorYIQ(%q) = %q, want %q", tt.color, got, tt.want)
		}
	}
}

func TestColorizeConfiguredLabel(t *testing.T) {
	boardLabels := []models.Label{{Key: "urgent", Color: "#ff0000"}}

	html := Colorize("fix #urgent now", boardLabels)

	if !strings.Contains(html, `background-color: #ff0000`) {
		t.Errorf("Expected label background in %q", html)
	}
	if !strings.Contains(html, `color: #ffffff`) {
		t.Errorf("Expected YIQ text color in %q", html)
	}
	if !strings.Contains(html, ">#urgent</span>") {
		t.Errorf("Expected tag text in %q", html)
	}
}

func TestColorizeUnconfiguredLabelGetsBorder(t *testing.T) {
	html := Colorize("fix #whenever", nil)

	if !strings.Contains(html, "border: 1px solid") {
		t.Errorf("Expected neutral border in %q", html)
	}
}

func TestColorizeFirstDuplicateWins(t *testing.T) {
	boardLabels := []models.Label{
		{Key: "urgent", Color: "#ff0000"},
		{Key: "urgent", Color: "#00ff00"},
	}

	html := Colorize("#urgent", boardLabels)

	if !strings.Contains(html, "#ff0000") {
		t.Errorf("Expected first label color in %q", html)
	}
	if strings.Contains(html, "#00ff00") {
		t.Errorf("Duplicate label color should be ignored in %q", html)
	}
}
