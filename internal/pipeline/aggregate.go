package pipeline

import (
	"sort"

	"github.com/iliyamo/movie-analytics/internal/model"
	"github.com/iliyamo/movie-analytics/internal/stats"
)

// TopLimit is the number of rows kept in top_grossing and top_rated.
const TopLimit = 50

// Aggregates are the rollups derived from the cleaned base tables.
type Aggregates struct {
	MonthlySales []model.MonthlySales
	GenreStats   []model.GenreStats
	StudioStats  []model.StudioStats
	TopGrossing  []model.TopGrossing
	TopRated     []model.TopRated
}

// Aggregate computes every rollup.  Group tables are ordered by key
// (year/month, genre, studio); top tables are stable top-N selections.
func Aggregate(movies []model.MovieRecord, sales []model.DailySalesRecord) Aggregates {
	return Aggregates{
		MonthlySales: MonthlySales(sales),
		GenreStats:   GenreStats(movies),
		StudioStats:  StudioStats(movies),
		TopGrossing:  TopGrossing(movies, TopLimit),
		TopRated:     TopRated(movies, TopLimit),
	}
}

type yearMonth struct{ year, month int }

func MonthlySales(sales []model.DailySalesRecord) []model.MonthlySales {
	groups := stats.GroupBy(sales, func(s model.DailySalesRecord) yearMonth {
		return yearMonth{s.Year, s.Month}
	})
	sort.Slice(groups, func(i, j int) bool {
		a, b := groups[i].Key, groups[j].Key
		if a.year != b.year {
			return a.year < b.year
		}
		return a.month < b.month
	})
	out := make([]model.MonthlySales, 0, len(groups))
	for _, g := range groups {
		tickets := 0
		movies := make(map[int]struct{})
		for _, s := range g.Rows {
			tickets += s.TicketsSold
			movies[s.MovieID] = struct{}{}
		}
		out = append(out, model.MonthlySales{
			Year:         g.Key.year,
			Month:        g.Key.month,
			TotalTickets: tickets,
			TotalRevenue: model.Round2(stats.Sum(stats.Pluck(g.Rows, revenue))),
			UniqueMovies: len(movies),
		})
	}
	return out
}

func GenreStats(movies []model.MovieRecord) []model.GenreStats {
	groups := stats.GroupBy(movies, func(m model.MovieRecord) string { return m.Genre })
	sort.Slice(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
	out := make([]model.GenreStats, 0, len(groups))
	for _, g := range groups {
		budgets := stats.Pluck(g.Rows, budget)
		grosses := stats.Pluck(g.Rows, gross)
		profits := stats.Pluck(g.Rows, profit)
		out = append(out, model.GenreStats{
			Genre:        g.Key,
			AvgBudget:    model.Round2(stats.Mean(budgets)),
			MedianBudget: model.Round2(stats.Median(budgets)),
			AvgGross:     model.Round2(stats.Mean(grosses)),
			MedianGross:  model.Round2(stats.Median(grosses)),
			TotalGross:   model.Round2(stats.Sum(grosses)),
			AvgRating:    model.Round2(stats.Mean(stats.Pluck(g.Rows, rating))),
			AvgProfit:    model.Round2(stats.Mean(profits)),
			MedianProfit: model.Round2(stats.Median(profits)),
			MovieCount:   len(g.Rows),
		})
	}
	return out
}

func StudioStats(movies []model.MovieRecord) []model.StudioStats {
	groups := stats.GroupBy(movies, func(m model.MovieRecord) string { return m.Studio })
	sort.Slice(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
	out := make([]model.StudioStats, 0, len(groups))
	for _, g := range groups {
		budgets := stats.Pluck(g.Rows, budget)
		grosses := stats.Pluck(g.Rows, gross)
		out = append(out, model.StudioStats{
			Studio:      g.Key,
			AvgBudget:   model.Round2(stats.Mean(budgets)),
			TotalBudget: model.Round2(stats.Sum(budgets)),
			AvgGross:    model.Round2(stats.Mean(grosses)),
			TotalGross:  model.Round2(stats.Sum(grosses)),
			AvgRating:   model.Round2(stats.Mean(stats.Pluck(g.Rows, rating))),
			MovieCount:  len(g.Rows),
		})
	}
	return out
}

func TopGrossing(movies []model.MovieRecord, n int) []model.TopGrossing {
	top := stats.TopN(movies, n, gross)
	out := make([]model.TopGrossing, 0, len(top))
	for _, m := range top {
		out = append(out, model.TopGrossing{Title: m.Title, Genre: m.Genre, Studio: m.Studio,
			TotalGross: m.TotalGross, Budget: m.Budget, Profit: m.Profit, CriticRating: m.CriticRating})
	}
	return out
}

func TopRated(movies []model.MovieRecord, n int) []model.TopRated {
	top := stats.TopN(movies, n, rating)
	out := make([]model.TopRated, 0, len(top))
	for _, m := range top {
		out = append(out, model.TopRated{Title: m.Title, Genre: m.Genre, Studio: m.Studio,
			CriticRating: m.CriticRating, TotalGross: m.TotalGross, Budget: m.Budget})
	}
	return out
}

func budget(m model.MovieRecord) float64       { return m.Budget }
func gross(m model.MovieRecord) float64        { return m.TotalGross }
func profit(m model.MovieRecord) float64       { return m.Profit }
func rating(m model.MovieRecord) float64       { return m.CriticRating }
func revenue(s model.DailySalesRecord) float64 { return s.Revenue }
