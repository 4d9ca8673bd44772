package labels

import (
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/tkesgar/javelin/internal/models"
)

// StaleTag is the synthetic tag applied to cards older than the board's
// configured threshold. It is never stored.
const StaleTag = "stale"

var tagPattern = regexp.MustCompile(`#(\w+)`)

// Derive computes the active tags for a card: #word tokens in the content
// that match a configured label key, plus the stale tag when the board has
// stale marking enabled and the card is old enough. The result is
// deduplicated and sorted; the ordering only exists for stable rendering.
func Derive(content string, boardLabels []models.Label, markStaleMinutes int, timeCreated, now time.Time) []string {
	keys := make(map[string]bool, len(boardLabels))
	for _, label := range boardLabels {
		keys[label.Key] = true
	}

	seen := make(map[string]bool)
	tags := []string{}
	for _, match := range tagPattern.FindAllStringSubmatch(content, -1) {
		key := match[1]
		if !keys[key] || seen[key] {
			continue
		}
		seen[key] = true
		tags = append(tags, key)
	}

	if markStaleMinutes > 0 && !seen[StaleTag] {
		age := now.Sub(timeCreated)
		if age >= time.Duration(markStaleMinutes)*time.Minute {
			tags = append(tags, StaleTag)
		}
	}

	sort.Strings(tags)
	return tags
}

// Colorize renders every #word occurrence in content as an inline styled
// span. Configured labels get their color as background with a legible
// foreground; unconfigured tags get a neutral border. When a key appears
// more than once in the label set the first occurrence wins.
func Colorize(content string, boardLabels []models.Label) string {
	colors := make(map[string]string, len(boardLabels))
	for _, label := range boardLabels {
		if _, ok := colors[label.Key]; !ok {
			colors[label.Key] = label.Color
		}
	}

	return tagPattern.ReplaceAllStringFunc(content, func(match string) string {
		key := match[1:]
		color, ok := colors[key]
		if !ok {
			return fmt.Sprintf(`<span style="border: 1px solid %s">#%s</span>`, noColorBorder, key)
		}
		return fmt.Sprintf(`<span style="background-color: %s; color: %s">#%s</span>`, color, ColorYIQ(color), key)
	})
}
