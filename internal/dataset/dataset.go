// Package dataset maps the model types onto the raw and processed table
// files.  Readers of processed movies re-derive profit, ROI and the
// categories from budget and gross instead of trusting the stored columns.
package dataset

import (
	"fmt"
	"path/filepath"

	"github.com/iliyamo/movie-analytics/internal/model"
	"github.com/iliyamo/movie-analytics/internal/table"
)

// File names (without directory) of every table the system exchanges.
const (
	RawMoviesFile    = "movies_raw.csv"
	RawSalesFile     = "daily_sales_raw.csv"
	MoviesFile       = "movies_processed.csv"
	SalesFile        = "sales_processed.csv"
	GenreStatsFile   = "genre_stats.csv"
	StudioStatsFile  = "studio_stats.csv"
	MonthlySalesFile = "monthly_sales.csv"
	TopGrossingFile  = "top_grossing.csv"
	TopRatedFile     = "top_rated.csv"
)

var rawMovieColumns = []string{"movie_id", "title", "genre", "release_date", "rating", "studio",
	"runtime_minutes", "budget", "domestic_gross", "international_gross", "total_gross",
	"imdb_rating", "tickets_sold", "tickets_available"}

var processedMovieColumns = append(append([]string{}, rawMovieColumns...),
	"release_year", "release_month", "profit", "roi", "budget_category", "performance")

var rawSalesColumns = []string{"movie_id", "movie_title", "date", "tickets_sold", "revenue"}

var processedSalesColumns = append(append([]string{}, rawSalesColumns...),
	"year", "month", "day_of_week", "is_weekend")

// ReadRawMovies reads the generator's catalog.  Derived fields are left
// zero; the pipeline fills them.
func ReadRawMovies(dir string) ([]model.MovieRecord, error) {
	return readMovies(filepath.Join(dir, RawMoviesFile), false)
}

// ReadMovies reads movies_processed and re-derives every movie.
func ReadMovies(dir string) ([]model.MovieRecord, error) {
	return readMovies(filepath.Join(dir, MoviesFile), true)
}

func readMovies(path string, derive bool) ([]model.MovieRecord, error) {
	f, err := table.Read(path)
	if err != nil {
		return nil, err
	}
	if err := f.Require("movie_id", "title", "genre", "release_date", "studio", "budget",
		"total_gross", "imdb_rating"); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	out := make([]model.MovieRecord, 0, f.Len())
	err = f.Scan(func(r *table.Row) error {
		m := model.MovieRecord{
			MovieID:      r.Int("movie_id"),
			Title:        r.Str("title"),
			Genre:        r.Str("genre"),
			ReleaseDate:  r.Date("release_date"),
			Studio:       r.Str("studio"),
			Budget:       r.Float("budget"),
			TotalGross:   r.Float("total_gross"),
			CriticRating: r.Float("imdb_rating"),
		}
		// optional catalog columns
		if f.Has("rating") {
			m.MPARating = r.Str("rating")
		}
		if f.Has("runtime_minutes") {
			m.RuntimeMinutes = r.Int("runtime_minutes")
		}
		if f.Has("domestic_gross") {
			m.DomesticGross = r.Float("domestic_gross")
		}
		if f.Has("international_gross") {
			m.InternationalGross = r.Float("international_gross")
		}
		if f.Has("tickets_sold") {
			m.TicketsSold = r.Int("tickets_sold")
		}
		if f.Has("tickets_available") {
			m.TicketsAvailable = r.Int("tickets_available")
		}
		if r.Err() != nil {
			return r.Err()
		}
		if derive {
			if err := m.Derive(); err != nil {
				return fmt.Errorf("movie %d: %w", m.MovieID, err)
			}
		}
		out = append(out, m)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return out, nil
}

// ReadRawSales reads the generator's daily sales.
func ReadRawSales(dir string) ([]model.DailySalesRecord, error) {
	return readSales(filepath.Join(dir, RawSalesFile))
}

// ReadSales reads sales_processed; calendar fields are re-derived.
func ReadSales(dir string) ([]model.DailySalesRecord, error) {
	return readSales(filepath.Join(dir, SalesFile))
}

func readSales(path string) ([]model.DailySalesRecord, error) {
	f, err := table.Read(path)
	if err != nil {
		return nil, err
	}
	if err := f.Require(rawSalesColumns...); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	out := make([]model.DailySalesRecord, 0, f.Len())
	err = f.Scan(func(r *table.Row) error {
		s := model.DailySalesRecord{
			MovieID:     r.Int("movie_id"),
			MovieTitle:  r.Str("movie_title"),
			Date:        r.Date("date"),
			TicketsSold: r.Int("tickets_sold"),
			Revenue:     r.Float("revenue"),
		}
		s.Derive()
		out = append(out, s)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return out, nil
}

// ReadGenreStats reads genre_stats.  Older files name the revenue,
// rating and profit columns total_revenue, rating and profit; both
// spellings are accepted and mapped onto the canonical fields here.
func ReadGenreStats(dir string) ([]model.GenreStats, error) {
	path := filepath.Join(dir, GenreStatsFile)
	f, err := table.Read(path)
	if err != nil {
		return nil, err
	}
	cols, err := resolveAll(f, map[string][]string{
		"total_gross": {"total_revenue"},
		"avg_rating":  {"rating"},
		"avg_profit":  {"profit"},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", GenreStatsFile, err)
	}
	if err := f.Require("genre", "movie_count"); err != nil {
		return nil, fmt.Errorf("%s: %w", GenreStatsFile, err)
	}
	out := make([]model.GenreStats, 0, f.Len())
	err = f.Scan(func(r *table.Row) error {
		g := model.GenreStats{
			Genre:      r.Str("genre"),
			TotalGross: r.Float(cols["total_gross"]),
			AvgRating:  r.Float(cols["avg_rating"]),
			AvgProfit:  r.Float(cols["avg_profit"]),
			MovieCount: r.Int("movie_count"),
		}
		g.AvgBudget = optionalFloat(f, r, "avg_budget")
		g.MedianBudget = optionalFloat(f, r, "median_budget")
		g.AvgGross = optionalFloat(f, r, "avg_gross")
		g.MedianGross = optionalFloat(f, r, "median_gross")
		g.MedianProfit = optionalFloat(f, r, "median_profit")
		out = append(out, g)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", GenreStatsFile, err)
	}
	return out, nil
}

// ReadStudioStats reads studio_stats, accepting total_revenue and
// avg_revenue for total_gross and avg_gross.
func ReadStudioStats(dir string) ([]model.StudioStats, error) {
	path := filepath.Join(dir, StudioStatsFile)
	f, err := table.Read(path)
	if err != nil {
		return nil, err
	}
	cols, err := resolveAll(f, map[string][]string{
		"total_gross": {"total_revenue"},
		"avg_gross":   {"avg_revenue"},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", StudioStatsFile, err)
	}
	if err := f.Require("studio", "movie_count"); err != nil {
		return nil, fmt.Errorf("%s: %w", StudioStatsFile, err)
	}
	out := make([]model.StudioStats, 0, f.Len())
	err = f.Scan(func(r *table.Row) error {
		s := model.StudioStats{
			Studio:     r.Str("studio"),
			TotalGross: r.Float(cols["total_gross"]),
			AvgGross:   r.Float(cols["avg_gross"]),
			MovieCount: r.Int("movie_count"),
		}
		s.AvgBudget = optionalFloat(f, r, "avg_budget")
		s.TotalBudget = optionalFloat(f, r, "total_budget")
		s.AvgRating = optionalFloat(f, r, "avg_rating")
		out = append(out, s)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", StudioStatsFile, err)
	}
	return out, nil
}

func ReadMonthlySales(dir string) ([]model.MonthlySales, error) {
	path := filepath.Join(dir, MonthlySalesFile)
	f, err := table.Read(path)
	if err != nil {
		return nil, err
	}
	if err := f.Require("year", "month", "total_tickets", "total_revenue", "unique_movies"); err != nil {
		return nil, fmt.Errorf("%s: %w", MonthlySalesFile, err)
	}
	out := make([]model.MonthlySales, 0, f.Len())
	err = f.Scan(func(r *table.Row) error {
		out = append(out, model.MonthlySales{
			Year:         r.Int("year"),
			Month:        r.Int("month"),
			TotalTickets: r.Int("total_tickets"),
			TotalRevenue: r.Float("total_revenue"),
			UniqueMovies: r.Int("unique_movies"),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", MonthlySalesFile, err)
	}
	return out, nil
}

func resolveAll(f *table.Frame, aliases map[string][]string) (map[string]string, error) {
	out := make(map[string]string, len(aliases))
	for canonical, alts := range aliases {
		col, err := f.Resolve(canonical, alts...)
		if err != nil {
			return nil, err
		}
		out[canonical] = col
	}
	return out, nil
}

func optionalFloat(f *table.Frame, r *table.Row, col string) float64 {
	if !f.Has(col) {
		return 0
	}
	return r.Float(col)
}
