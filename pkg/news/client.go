package news

import (
	"context"
	"time"
)

// Article is the canonical record produced by Normalize.
type Article struct {
	ID             int
	Title          string
	Summary        *string
	Source         string
	Country        *string
	Category       *string
	Timestamp      time.Time
	ImageURL       *string
	RelevanceScore float64
	Defaulted      FieldSet
}

type Trend struct {
	URI   string
	Label string
	Score float64
}

// Query carries the /news parameters forwarded to the provider.
type Query struct {
	Term     string
	Country  string
	Category string
	SortBy   string
}

type NewsClient interface {
	FetchArticles(ctx context.Context, q Query) ([]Article, error)
	FetchTrends(ctx context.Context) ([]Trend, error)
	Configured() bool
	Name() string
}

// UsageRecorder counts upstream requests. Implementations must be safe for
// concurrent use.
type UsageRecorder interface {
	IncrementUsage(ctx context.Context, apiName string, at time.Time) error
}

// Field identifies an Article field that may be substituted with a default.
type Field uint8

const (
	FieldTitle Field = 1 << iota
	FieldSource
	FieldTimestamp
	FieldCategory
	FieldRelevance
)

// FieldSet records which fields of an Article were defaulted during
// normalization.
type FieldSet uint8

func (s FieldSet) Has(f Field) bool {
	return s&FieldSet(f) != 0
}

func (s *FieldSet) add(f Field) {
	*s |= FieldSet(f)
}
