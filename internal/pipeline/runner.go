package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/movie-analytics/internal/dataset"
	"github.com/iliyamo/movie-analytics/internal/logger"
	"github.com/iliyamo/movie-analytics/internal/model"
)

// Runner executes one full transformation: read raw, clean, aggregate,
// persist.  Any stage error aborts the run.
type Runner struct {
	RawDir string
	OutDir string
	Log    *logger.Logger
}

// Result summarises a completed run.
type Result struct {
	RunID      string
	Movies     int
	Skipped    []SkippedMovie
	Sales      int
	Genres     int
	Studios    int
	Months     int
	StartedAt  time.Time
	FinishedAt time.Time
}

// Persist writes the cleaned base tables and every rollup to dir.
func Persist(dir string, movies []model.MovieRecord, sales []model.DailySalesRecord, agg Aggregates) error {
	return dataset.WriteProcessed(dir, dataset.Tables{
		Movies:       movies,
		Sales:        sales,
		MonthlySales: agg.MonthlySales,
		GenreStats:   agg.GenreStats,
		StudioStats:  agg.StudioStats,
		TopGrossing:  agg.TopGrossing,
		TopRated:     agg.TopRated,
	})
}

func (r *Runner) Run(ctx context.Context) (*Result, error) {
	log := r.Log
	if log == nil {
		log = logger.Nop()
	}
	res := &Result{RunID: uuid.NewString(), StartedAt: time.Now().UTC()}
	log = log.With("run_id", res.RunID)

	rawMovies, err := dataset.ReadRawMovies(r.RawDir)
	if err != nil {
		return nil, fmt.Errorf("read raw movies: %w", err)
	}
	rawSales, err := dataset.ReadRawSales(r.RawDir)
	if err != nil {
		return nil, fmt.Errorf("read raw sales: %w", err)
	}
	log.Info("raw tables loaded", "movies", len(rawMovies), "sales", len(rawSales))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	movies, skipped, err := CleanMovies(rawMovies)
	if err != nil {
		return nil, fmt.Errorf("clean movies: %w", err)
	}
	for _, s := range skipped {
		log.Warn("movie skipped", "movie_id", s.MovieID, "title", s.Title, "reason", s.Reason)
	}
	sales, err := CleanSales(rawSales)
	if err != nil {
		return nil, fmt.Errorf("clean sales: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	agg := Aggregate(movies, sales)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := Persist(r.OutDir, movies, sales, agg); err != nil {
		return nil, fmt.Errorf("persist: %w", err)
	}

	res.Movies = len(movies)
	res.Skipped = skipped
	res.Sales = len(sales)
	res.Genres = len(agg.GenreStats)
	res.Studios = len(agg.StudioStats)
	res.Months = len(agg.MonthlySales)
	res.FinishedAt = time.Now().UTC()
	log.Info("pipeline completed", "movies", res.Movies, "skipped", len(skipped), "sales", res.Sales,
		"out", r.OutDir, "took", res.FinishedAt.Sub(res.StartedAt).String())
	return res, nil
}
