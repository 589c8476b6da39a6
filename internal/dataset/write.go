package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iliyamo/movie-analytics/internal/model"
	"github.com/iliyamo/movie-analytics/internal/table"
)

// Tables is the full processed output of one pipeline run.
type Tables struct {
	Movies       []model.MovieRecord
	Sales        []model.DailySalesRecord
	MonthlySales []model.MonthlySales
	GenreStats   []model.GenreStats
	StudioStats  []model.StudioStats
	TopGrossing  []model.TopGrossing
	TopRated     []model.TopRated
}

// WriteProcessed overwrites the seven processed files in dir.  Files are
// written one after another; a failure part-way leaves earlier files
// replaced and later ones untouched.
func WriteProcessed(dir string, t Tables) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	writes := []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{MoviesFile, processedMovieColumns, movieRows(t.Movies, true)},
		{SalesFile, processedSalesColumns, salesRows(t.Sales, true)},
		{GenreStatsFile, genreStatsColumns, genreRows(t.GenreStats)},
		{StudioStatsFile, studioStatsColumns, studioRows(t.StudioStats)},
		{MonthlySalesFile, monthlySalesColumns, monthlyRows(t.MonthlySales)},
		{TopGrossingFile, topGrossingColumns, topGrossingRows(t.TopGrossing)},
		{TopRatedFile, topRatedColumns, topRatedRows(t.TopRated)},
	}
	for _, w := range writes {
		if err := table.Write(filepath.Join(dir, w.name), w.header, w.rows); err != nil {
			return err
		}
	}
	return nil
}

// WriteRaw writes the generator output.
func WriteRaw(dir string, movies []model.MovieRecord, sales []model.DailySalesRecord) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	if err := table.Write(filepath.Join(dir, RawMoviesFile), rawMovieColumns, movieRows(movies, false)); err != nil {
		return err
	}
	return table.Write(filepath.Join(dir, RawSalesFile), rawSalesColumns, salesRows(sales, false))
}

var (
	genreStatsColumns = []string{"genre", "avg_budget", "median_budget", "avg_gross", "median_gross",
		"total_gross", "avg_rating", "avg_profit", "median_profit", "movie_count"}
	studioStatsColumns  = []string{"studio", "avg_budget", "total_budget", "avg_gross", "total_gross", "avg_rating", "movie_count"}
	monthlySalesColumns = []string{"year", "month", "total_tickets", "total_revenue", "unique_movies"}
	topGrossingColumns  = []string{"title", "genre", "studio", "total_gross", "budget", "profit", "imdb_rating"}
	topRatedColumns     = []string{"title", "genre", "studio", "imdb_rating", "total_gross", "budget"}
)

func movieRows(movies []model.MovieRecord, derived bool) [][]string {
	rows := make([][]string, 0, len(movies))
	for _, m := range movies {
		row := []string{
			table.FormatInt(m.MovieID), m.Title, m.Genre, table.FormatDate(m.ReleaseDate), m.MPARating,
			m.Studio, table.FormatInt(m.RuntimeMinutes), table.FormatFloat(m.Budget),
			table.FormatFloat(m.DomesticGross), table.FormatFloat(m.InternationalGross),
			table.FormatFloat(m.TotalGross), table.FormatFloat(m.CriticRating),
			table.FormatInt(m.TicketsSold), table.FormatInt(m.TicketsAvailable),
		}
		if derived {
			row = append(row, table.FormatInt(m.ReleaseYear), table.FormatInt(m.ReleaseMonth),
				table.FormatFloat(m.Profit), table.FormatFloat(m.ROI), m.BudgetCategory, m.Performance)
		}
		rows = append(rows, row)
	}
	return rows
}

func salesRows(sales []model.DailySalesRecord, derived bool) [][]string {
	rows := make([][]string, 0, len(sales))
	for _, s := range sales {
		row := []string{table.FormatInt(s.MovieID), s.MovieTitle, table.FormatDate(s.Date),
			table.FormatInt(s.TicketsSold), table.FormatFloat(s.Revenue)}
		if derived {
			row = append(row, table.FormatInt(s.Year), table.FormatInt(s.Month), s.DayOfWeek, table.FormatBool(s.IsWeekend))
		}
		rows = append(rows, row)
	}
	return rows
}

func genreRows(stats []model.GenreStats) [][]string {
	rows := make([][]string, 0, len(stats))
	for _, g := range stats {
		rows = append(rows, []string{g.Genre, table.FormatFloat(g.AvgBudget), table.FormatFloat(g.MedianBudget),
			table.FormatFloat(g.AvgGross), table.FormatFloat(g.MedianGross), table.FormatFloat(g.TotalGross),
			table.FormatFloat(g.AvgRating), table.FormatFloat(g.AvgProfit), table.FormatFloat(g.MedianProfit),
			table.FormatInt(g.MovieCount)})
	}
	return rows
}

func studioRows(stats []model.StudioStats) [][]string {
	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []string{s.Studio, table.FormatFloat(s.AvgBudget), table.FormatFloat(s.TotalBudget),
			table.FormatFloat(s.AvgGross), table.FormatFloat(s.TotalGross), table.FormatFloat(s.AvgRating),
			table.FormatInt(s.MovieCount)})
	}
	return rows
}

func monthlyRows(months []model.MonthlySales) [][]string {
	rows := make([][]string, 0, len(months))
	for _, m := range months {
		rows = append(rows, []string{table.FormatInt(m.Year), table.FormatInt(m.Month),
			table.FormatInt(m.TotalTickets), table.FormatFloat(m.TotalRevenue), table.FormatInt(m.UniqueMovies)})
	}
	return rows
}

func topGrossingRows(top []model.TopGrossing) [][]string {
	rows := make([][]string, 0, len(top))
	for _, t := range top {
		rows = append(rows, []string{t.Title, t.Genre, t.Studio, table.FormatFloat(t.TotalGross),
			table.FormatFloat(t.Budget), table.FormatFloat(t.Profit), table.FormatFloat(t.CriticRating)})
	}
	return rows
}

func topRatedRows(top []model.TopRated) [][]string {
	rows := make([][]string, 0, len(top))
	for _, t := range top {
		rows = append(rows, []string{t.Title, t.Genre, t.Studio, table.FormatFloat(t.CriticRating),
			table.FormatFloat(t.TotalGross), table.FormatFloat(t.Budget)})
	}
	return rows
}
