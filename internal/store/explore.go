package store

import (
	"strings"

	"github.com/soaringjerry/evoa/internal/models"
)

// Filter narrows a catalog for the explore view. Zero fields match everything.
type Filter struct {
	Query    string
	Stage    models.Stage
	Category string
}

// FilterPitches keeps pitches whose startup, founder, title, stage or category
// contains Query (case-insensitive) and whose stage and category equal the
// filter's when set. Order is preserved.
func FilterPitches(list []models.Pitch, f Filter) []models.Pitch {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := []models.Pitch{}
	for _, p := range list {
		if f.Stage != "" && p.Stage != f.Stage {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if q != "" && !matchesQuery(p, q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesQuery(p models.Pitch, q string) bool {
	for _, field := range []string{p.Startup, p.Founder, p.Title, string(p.Stage), p.Category} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Categories lists distinct categories in first-seen order.
func Categories(list []models.Pitch) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, p := range list {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

// Stages lists distinct stages in first-seen order.
func Stages(list []models.Pitch) []models.Stage {
	seen := map[models.Stage]struct{}{}
	out := []models.Stage{}
	for _, p := range list {
		if _, ok := seen[p.Stage]; ok {
			continue
		}
		seen[p.Stage] = struct{}{}
		out = append(out, p.Stage)
	}
	return out
}

// GroupByCategory buckets pitches per category, keeping catalog order inside
// each bucket.
func GroupByCategory(list []models.Pitch) map[string][]models.Pitch {
	out := map[string][]models.Pitch{}
	for _, p := range list {
		out[p.Category] = append(out[p.Category], p)
	}
	return out
}
