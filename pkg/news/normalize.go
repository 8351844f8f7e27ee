package news

import (
	"encoding/json"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"
)

const (
	DefaultTitle    = "No Title"
	DefaultSource   = "Unknown Source"
	DefaultCategory = "General"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// Normalize maps raw provider items to Articles. It never drops an item:
// malformed fields are replaced by defaults and recorded in Article.Defaulted.
func Normalize(items []json.RawMessage) []Article {
	return normalizeAt(items, time.Now())
}

func normalizeAt(items []json.RawMessage, now time.Time) []Article {
	articles := make([]Article, 0, len(items))
	for i, raw := range items {
		var item map[string]any
		if err := json.Unmarshal(raw, &item); err != nil {
			slog.Warn("malformed article item, using defaults", "position", i+1, "error", err)
		}
		articles = append(articles, normalizeItem(i+1, item, now))
	}
	return articles
}

func normalizeItem(id int, item map[string]any, now time.Time) Article {
	a := Article{ID: id}

	if title, ok := stringAt(item, "title"); ok {
		a.Title = title
	} else {
		a.Title = DefaultTitle
		a.Defaulted.add(FieldTitle)
	}

	a.Summary = firstString(item, []string{"body"}, []string{"description"})

	if source := firstString(item, []string{"source", "name"}, []string{"source", "title"}, []string{"source"}); source != nil {
		a.Source = *source
	} else {
		a.Source = DefaultSource
		a.Defaulted.add(FieldSource)
	}

	if ts, ok := parseTimestamp(item); ok {
		a.Timestamp = ts
	} else {
		slog.Warn("missing or invalid publish time, using current time", "id", id, "title", a.Title)
		a.Timestamp = now
		a.Defaulted.add(FieldTimestamp)
	}

	a.ImageURL = firstString(item, []string{"image"}, []string{"urlToImage"})

	// Country is where the publisher is based, matching the provider's
	// sourceLocationUri filter. The story location is a fallback.
	if uri := firstString(item,
		[]string{"source", "location", "country", "uri"},
		[]string{"source", "location", "uri"},
		[]string{"location", "country", "uri"},
		[]string{"location", "uri"},
	); uri != nil {
		if label, ok := Countries.Label(*uri); ok {
			a.Country = &label
		}
	}

	a.Category = resolveCategory(item, &a.Defaulted)

	if score, ok := valueAt(item, "relevance").(float64); ok {
		a.RelevanceScore = score
	} else {
		a.Defaulted.add(FieldRelevance)
	}

	return a
}

// resolveCategory prefers provider category URIs and falls back to concept
// labels. Items carrying neither get DefaultCategory; items whose data does
// not match the table get no category.
func resolveCategory(item map[string]any, defaulted *FieldSet) *string {
	categories, _ := valueAt(item, "categories").([]any)
	concepts, _ := valueAt(item, "concepts").([]any)

	if len(categories) == 0 && len(concepts) == 0 {
		defaulted.add(FieldCategory)
		label := DefaultCategory
		return &label
	}

	for _, c := range categories {
		obj, _ := c.(map[string]any)
		if uri, ok := stringAt(obj, "uri"); ok {
			if label, ok := Categories.Label(uri); ok {
				return &label
			}
		}
	}

	for _, c := range concepts {
		obj, _ := c.(map[string]any)
		if raw, ok := labelAt(obj); ok {
			if label, ok := Categories.Canonical(raw); ok {
				return &label
			}
		}
	}

	return nil
}

func parseTimestamp(item map[string]any) (time.Time, bool) {
	raw := firstString(item, []string{"publishedAt"}, []string{"dateTimePub"}, []string{"dateTime"})
	if raw == nil {
		return time.Time{}, false
	}
	return ParseTimestamp(*raw)
}

// ParseTimestamp parses an ISO-8601 timestamp. A "Z" suffix means UTC and
// values without an offset are read as UTC.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func valueAt(v any, path ...string) any {
	for _, key := range path {
		obj, ok := v.(map[string]any)
		if !ok {
			return nil
		}
		v = obj[key]
	}
	return v
}

// stringAt returns the non-blank string found at path.
func stringAt(v any, path ...string) (string, bool) {
	s, ok := valueAt(v, path...).(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

func firstString(item map[string]any, paths ...[]string) *string {
	for _, path := range paths {
		if s, ok := stringAt(item, path...); ok {
			return &s
		}
	}
	return nil
}

// labelAt reads a label that is either a plain string or a per-language map
// such as {"eng": "Technology"}.
func labelAt(obj map[string]any) (string, bool) {
	switch label := obj["label"].(type) {
	case string:
		if strings.TrimSpace(label) != "" {
			return label, true
		}
	case map[string]any:
		if s, ok := stringAt(label, "eng"); ok {
			return s, true
		}
		for _, lang := range slices.Sorted(maps.Keys(label)) {
			if s, ok := stringAt(label, lang); ok {
				return s, true
			}
		}
	}
	return "", false
}
