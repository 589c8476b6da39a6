// Package pipeline turns the raw catalog and daily sales tables into the
// processed base tables and their rollups, and persists them.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/iliyamo/movie-analytics/internal/model"
	"github.com/iliyamo/movie-analytics/internal/table"
)

var (
	// ErrDuplicateMovie is returned when two catalog rows share a movie_id.
	ErrDuplicateMovie = errors.New("duplicate movie_id")
	// ErrDuplicateSale is returned when a (movie_id, date) pair repeats.
	ErrDuplicateSale = errors.New("duplicate daily sale")
)

// SkippedMovie records a catalog row dropped during cleaning.
type SkippedMovie struct {
	MovieID int
	Title   string
	Reason  string
}

// CleanMovies derives release year/month, profit, ROI and the budget and
// performance categories for every row.  Rows with a budget <= 0 have no
// defined ROI and are dropped and reported instead of failing the run.
func CleanMovies(raw []model.MovieRecord) ([]model.MovieRecord, []SkippedMovie, error) {
	seen := make(map[int]bool, len(raw))
	out := make([]model.MovieRecord, 0, len(raw))
	var skipped []SkippedMovie
	for _, m := range raw {
		if seen[m.MovieID] {
			return nil, nil, fmt.Errorf("%w: %d", ErrDuplicateMovie, m.MovieID)
		}
		seen[m.MovieID] = true
		if err := m.Derive(); err != nil {
			if errors.Is(err, model.ErrNonPositiveBudget) {
				skipped = append(skipped, SkippedMovie{MovieID: m.MovieID, Title: m.Title, Reason: err.Error()})
				continue
			}
			return nil, nil, fmt.Errorf("movie %d: %w", m.MovieID, err)
		}
		out = append(out, m)
	}
	return out, skipped, nil
}

type saleKey struct {
	movieID int
	date    string
}

// CleanSales derives the calendar fields and rejects repeated
// (movie_id, date) pairs so that per-day totals cannot double count.
func CleanSales(raw []model.DailySalesRecord) ([]model.DailySalesRecord, error) {
	seen := make(map[saleKey]bool, len(raw))
	out := make([]model.DailySalesRecord, 0, len(raw))
	for _, s := range raw {
		k := saleKey{movieID: s.MovieID, date: table.FormatDate(s.Date)}
		if seen[k] {
			return nil, fmt.Errorf("%w: movie %d on %s", ErrDuplicateSale, k.movieID, k.date)
		}
		seen[k] = true
		s.Derive()
		out = append(out, s)
	}
	return out, nil
}
