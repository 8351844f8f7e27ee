package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"newstracker/internal/config"
	"newstracker/internal/query"
	"newstracker/pkg/news"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	flagTerm     string
	flagCountry  string
	flagCategory string
	flagSortBy   string
	flagTrends   bool
)

var rootCmd = &cobra.Command{
	Use:   "fetcher",
	Short: "Fetch and normalize news once",
	Long:  "fetcher runs a single upstream fetch with the same parameters as GET /news and prints the normalized result as JSON.",
	RunE:  runFetch,
}

func init() {
	rootCmd.Flags().StringVarP(&flagTerm, "query", "q", "", "search term matched against title and summary")
	rootCmd.Flags().StringVar(&flagCountry, "country", "", "country label, e.g. USA")
	rootCmd.Flags().StringVar(&flagCategory, "category", "", "category label, e.g. Technology")
	rootCmd.Flags().StringVar(&flagSortBy, "sort-by", query.SortNewest, "newest, oldest, source or relevance")
	rootCmd.Flags().BoolVar(&flagTrends, "trends", false, "fetch trending concepts instead of articles")
}

type articleOutput struct {
	ID             int      `json:"id"`
	Title          string   `json:"title"`
	Summary        *string  `json:"summary"`
	Source         string   `json:"source"`
	Country        *string  `json:"country"`
	Category       *string  `json:"category"`
	Timestamp      string   `json:"timestamp"`
	ImageURL       *string  `json:"imageUrl"`
	RelevanceScore float64  `json:"relevanceScore"`
	Defaulted      []string `json:"defaulted,omitempty"`
}

type trendOutput struct {
	URI   string  `json:"uri"`
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

var fieldNames = []struct {
	field news.Field
	name  string
}{
	{news.FieldTitle, "title"},
	{news.FieldSource, "source"},
	{news.FieldTimestamp, "timestamp"},
	{news.FieldCategory, "category"},
	{news.FieldRelevance, "relevanceScore"},
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	slog.SetDefault(newLogger(cmd.ErrOrStderr(), cfg.LogLevel))

	if !cfg.APIKeyConfigured() {
		return news.ErrMissingAPIKey
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.UpstreamTimeout)
	defer cancel()

	client := news.NewEventRegistryClient(cfg.NewsAPIKey, cfg.NewsAPIBaseURL, cfg.UpstreamTimeout, nil)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	if flagTrends {
		trends, err := client.FetchTrends(ctx)
		if err != nil {
			return fmt.Errorf("fetching trends: %w", err)
		}
		out := make([]trendOutput, 0, len(trends))
		for _, t := range trends {
			out = append(out, trendOutput{URI: t.URI, Label: t.Label, Score: t.Score})
		}
		return enc.Encode(out)
	}

	articles, err := client.FetchArticles(ctx, news.Query{
		Term:     flagTerm,
		Country:  flagCountry,
		Category: flagCategory,
		SortBy:   flagSortBy,
	})
	if err != nil {
		return fmt.Errorf("fetching articles: %w", err)
	}

	results := query.Apply(articles, query.Params{
		Term:     flagTerm,
		Country:  flagCountry,
		Category: flagCategory,
		SortBy:   flagSortBy,
	})

	out := make([]articleOutput, 0, len(results))
	for _, a := range results {
		o := articleOutput{
			ID:             a.ID,
			Title:          a.Title,
			Summary:        a.Summary,
			Source:         a.Source,
			Country:        a.Country,
			Category:       a.Category,
			Timestamp:      a.Timestamp.Format(time.RFC3339Nano),
			ImageURL:       a.ImageURL,
			RelevanceScore: a.RelevanceScore,
		}
		for _, f := range fieldNames {
			if a.Defaulted.Has(f.field) {
				o.Defaulted = append(o.Defaulted, f.name)
			}
		}
		out = append(out, o)
	}

	slog.Info("fetch complete", "source", client.Name(), "fetched", len(articles), "returned", len(out))

	return enc.Encode(out)
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

func main() {

	godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
