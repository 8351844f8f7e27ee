// Package query filters and sorts normalized articles.
package query

import (
	"cmp"
	"log/slog"
	"slices"
	"strings"

	"newstracker/pkg/news"
)

const (
	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortSource    = "source"
	SortRelevance = "relevance"
)

type Params struct {
	Term     string
	Country  string
	Category string
	SortBy   string
}

// Apply returns the articles matching p in p.SortBy order. The input slice
// is left untouched and the result is never nil.
func Apply(articles []news.Article, p Params) []news.Article {
	term := strings.ToLower(p.Term)

	results := make([]news.Article, 0, len(articles))
	for _, a := range articles {
		if term != "" && !containsTerm(a, term) {
			continue
		}
		if p.Country != "" && !matches(a.Country, p.Country) {
			continue
		}
		if p.Category != "" && !matches(a.Category, p.Category) {
			continue
		}
		results = append(results, a)
	}

	switch p.SortBy {
	case SortNewest, "":
		slices.SortStableFunc(results, func(a, b news.Article) int {
			return b.Timestamp.Compare(a.Timestamp)
		})
	case SortOldest:
		slices.SortStableFunc(results, func(a, b news.Article) int {
			return a.Timestamp.Compare(b.Timestamp)
		})
	case SortSource:
		slices.SortStableFunc(results, func(a, b news.Article) int {
			return strings.Compare(a.Source, b.Source)
		})
	case SortRelevance:
		slices.SortStableFunc(results, func(a, b news.Article) int {
			return cmp.Compare(b.RelevanceScore, a.RelevanceScore)
		})
	default:
		slog.Warn("unknown sort key, leaving order unchanged", "sort_by", p.SortBy)
	}

	return results
}

func containsTerm(a news.Article, term string) bool {
	if strings.Contains(strings.ToLower(a.Title), term) {
		return true
	}
	return a.Summary != nil && strings.Contains(strings.ToLower(*a.Summary), term)
}

func matches(value *string, want string) bool {
	return value != nil && strings.EqualFold(*value, want)
}
