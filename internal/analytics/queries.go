package analytics

import (
	"sort"
	"time"

	"github.com/iliyamo/movie-analytics/internal/model"
	"github.com/iliyamo/movie-analytics/internal/stats"
	"github.com/iliyamo/movie-analytics/internal/table"
)

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type Overview struct {
	TotalMovies          int       `json:"total_movies"`
	TotalRevenue         float64   `json:"total_revenue"`
	AvgRating            float64   `json:"avg_rating"`
	ProfitableMovies     int       `json:"profitable_movies"`
	ProfitablePercentage float64   `json:"profitable_percentage"`
	AvgROI               float64   `json:"avg_roi"`
	GenresCount          int       `json:"genres_count"`
	StudiosCount         int       `json:"studios_count"`
	DateRange            DateRange `json:"date_range"`
}

// Overview returns headline metrics over the movie table, or nil when
// unloaded.
func (a *Analytics) Overview() *Overview {
	t := a.snapshot()
	if t == nil {
		return nil
	}
	o := &Overview{TotalMovies: len(t.movies)}
	genres := map[string]struct{}{}
	studios := map[string]struct{}{}
	var first, last time.Time
	for i, m := range t.movies {
		o.TotalRevenue += m.TotalGross
		if m.Profit > 0 {
			o.ProfitableMovies++
		}
		genres[m.Genre] = struct{}{}
		studios[m.Studio] = struct{}{}
		if i == 0 || m.ReleaseDate.Before(first) {
			first = m.ReleaseDate
		}
		if i == 0 || m.ReleaseDate.After(last) {
			last = m.ReleaseDate
		}
	}
	o.AvgRating = stats.Mean(stats.Pluck(t.movies, criticRating))
	o.AvgROI = stats.Mean(stats.Pluck(t.movies, roi))
	if o.TotalMovies > 0 {
		o.ProfitablePercentage = float64(o.ProfitableMovies) / float64(o.TotalMovies) * 100
		o.DateRange = DateRange{Start: table.FormatDate(first), End: table.FormatDate(last)}
	}
	o.GenresCount = len(genres)
	o.StudiosCount = len(studios)
	return o
}

type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

type NamedRevenue struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
}

type NamedRating struct {
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
}

type NamedProfit struct {
	Name   string  `json:"name"`
	Profit float64 `json:"profit"`
}

type GenreAnalysis struct {
	Distribution []GenreCount       `json:"genre_distribution"`
	TopRevenue   *NamedRevenue      `json:"top_revenue_genre,omitempty"`
	TopRating    *NamedRating       `json:"top_rating_genre,omitempty"`
	TopProfit    *NamedProfit       `json:"top_profit_genre,omitempty"`
	Stats        []model.GenreStats `json:"genre_stats,omitempty"`
}

// GenreAnalysis returns the genre distribution, largest first, and the
// leading genre by revenue, rating and profit.  Ties go to the first row
// of the genre table.  The leaders are omitted for an empty genre table.
func (a *Analytics) GenreAnalysis() *GenreAnalysis {
	t := a.snapshot()
	if t == nil {
		return nil
	}
	groups := stats.GroupBy(t.movies, func(m model.MovieRecord) string { return m.Genre })
	dist := make([]GenreCount, 0, len(groups))
	for _, g := range groups {
		dist = append(dist, GenreCount{Genre: g.Key, Count: len(g.Rows)})
	}
	sort.SliceStable(dist, func(i, j int) bool { return dist[i].Count > dist[j].Count })

	ga := &GenreAnalysis{Distribution: dist}
	if len(t.genres) == 0 {
		return ga
	}
	r := t.genres[stats.ArgMax(t.genres, func(g model.GenreStats) float64 { return g.TotalGross })]
	ga.TopRevenue = &NamedRevenue{Name: r.Genre, Revenue: r.TotalGross}
	r = t.genres[stats.ArgMax(t.genres, func(g model.GenreStats) float64 { return g.AvgRating })]
	ga.TopRating = &NamedRating{Name: r.Genre, Rating: r.AvgRating}
	r = t.genres[stats.ArgMax(t.genres, func(g model.GenreStats) float64 { return g.AvgProfit })]
	ga.TopProfit = &NamedProfit{Name: r.Genre, Profit: r.AvgProfit}
	ga.Stats = t.genres
	return ga
}

type MostActive struct {
	Name       string `json:"name"`
	MovieCount int    `json:"movie_count"`
}

type NamedAvgRevenue struct {
	Name       string  `json:"name"`
	AvgRevenue float64 `json:"avg_revenue"`
}

type StudioAnalysis struct {
	TopRevenue    *NamedRevenue       `json:"top_revenue_studio,omitempty"`
	MostActive    *MostActive         `json:"most_active_studio,omitempty"`
	TopAvgRevenue *NamedAvgRevenue    `json:"top_avg_revenue_studio,omitempty"`
	Stats         []model.StudioStats `json:"studio_stats"`
}

func (a *Analytics) StudioAnalysis() *StudioAnalysis {
	t := a.snapshot()
	if t == nil {
		return nil
	}
	sa := &StudioAnalysis{Stats: t.studios}
	if len(t.studios) == 0 {
		sa.Stats = []model.StudioStats{}
		return sa
	}
	s := t.studios[stats.ArgMax(t.studios, func(s model.StudioStats) float64 { return s.TotalGross })]
	sa.TopRevenue = &NamedRevenue{Name: s.Studio, Revenue: s.TotalGross}
	s = t.studios[stats.ArgMax(t.studios, func(s model.StudioStats) float64 { return float64(s.MovieCount) })]
	sa.MostActive = &MostActive{Name: s.Studio, MovieCount: s.MovieCount}
	s = t.studios[stats.ArgMax(t.studios, func(s model.StudioStats) float64 { return s.AvgGross })]
	sa.TopAvgRevenue = &NamedAvgRevenue{Name: s.Studio, AvgRevenue: s.AvgGross}
	return sa
}

type TemporalTrends struct {
	MoviesByYear  map[int]int     `json:"movies_by_year"`
	RevenueTrends map[int]float64 `json:"revenue_trends"`
	RatingTrends  map[int]float64 `json:"rating_trends"`
	TotalYears    int             `json:"total_years"`
}

// TemporalTrends groups movies by release year: count, mean gross and
// mean rating.
func (a *Analytics) TemporalTrends() *TemporalTrends {
	t := a.snapshot()
	if t == nil {
		return nil
	}
	groups := stats.GroupBy(t.movies, func(m model.MovieRecord) int { return m.ReleaseDate.Year() })
	tt := &TemporalTrends{
		MoviesByYear:  make(map[int]int, len(groups)),
		RevenueTrends: make(map[int]float64, len(groups)),
		RatingTrends:  make(map[int]float64, len(groups)),
		TotalYears:    len(groups),
	}
	for _, g := range groups {
		tt.MoviesByYear[g.Key] = len(g.Rows)
		tt.RevenueTrends[g.Key] = stats.Mean(stats.Pluck(g.Rows, totalGross))
		tt.RatingTrends[g.Key] = stats.Mean(stats.Pluck(g.Rows, criticRating))
	}
	return tt
}

type TitleTickets struct {
	Title   string `json:"movie_title"`
	Tickets int    `json:"tickets_sold"`
}

type WeekendVsWeekday struct {
	WeekendAvg   float64 `json:"weekend_avg"`
	WeekdayAvg   float64 `json:"weekday_avg"`
	WeekendBoost float64 `json:"weekend_boost"`
}

type SalesAnalysis struct {
	TotalTicketsSold   int              `json:"total_tickets_sold"`
	TotalSalesRevenue  float64          `json:"total_sales_revenue"`
	AvgDailyTickets    float64          `json:"avg_daily_tickets"`
	TopMoviesByTickets []TitleTickets   `json:"top_movies_by_tickets"`
	WeekendVsWeekday   WeekendVsWeekday `json:"weekend_vs_weekday"`
	SalesDateRange     DateRange        `json:"sales_date_range"`
}

// SalesTopMovies is how many titles SalesAnalysis ranks by tickets.
const SalesTopMovies = 10

// SalesAnalysis totals the daily sales, ranks titles by tickets and
// compares mean weekend and weekday tickets per row.  The boost is
// (weekend/weekday - 1) * 100, or 0 when there are no weekday tickets.
func (a *Analytics) SalesAnalysis() *SalesAnalysis {
	t := a.snapshot()
	if t == nil {
		return nil
	}
	sa := &SalesAnalysis{TopMoviesByTickets: []TitleTickets{}}
	var weekend, weekday []float64
	var first, last time.Time
	for i, s := range t.sales {
		sa.TotalTicketsSold += s.TicketsSold
		sa.TotalSalesRevenue += s.Revenue
		if model.IsWeekend(s.Date) {
			weekend = append(weekend, float64(s.TicketsSold))
		} else {
			weekday = append(weekday, float64(s.TicketsSold))
		}
		if i == 0 || s.Date.Before(first) {
			first = s.Date
		}
		if i == 0 || s.Date.After(last) {
			last = s.Date
		}
	}
	if len(t.sales) > 0 {
		sa.AvgDailyTickets = float64(sa.TotalTicketsSold) / float64(len(t.sales))
		sa.SalesDateRange = DateRange{Start: table.FormatDate(first), End: table.FormatDate(last)}
	}

	byTitle := stats.GroupBy(t.sales, func(s model.DailySalesRecord) string { return s.MovieTitle })
	totals := make([]TitleTickets, 0, len(byTitle))
	for _, g := range byTitle {
		n := 0
		for _, s := range g.Rows {
			n += s.TicketsSold
		}
		totals = append(totals, TitleTickets{Title: g.Key, Tickets: n})
	}
	sa.TopMoviesByTickets = stats.TopN(totals, SalesTopMovies, func(tt TitleTickets) float64 { return float64(tt.Tickets) })

	w := WeekendVsWeekday{WeekendAvg: stats.Mean(weekend), WeekdayAvg: stats.Mean(weekday)}
	if w.WeekdayAvg > 0 {
		w.WeekendBoost = (w.WeekendAvg/w.WeekdayAvg - 1) * 100
	}
	sa.WeekendVsWeekday = w
	return sa
}

type Performer struct {
	Title        string  `json:"title"`
	Genre        string  `json:"genre"`
	Studio       string  `json:"studio"`
	ReleaseDate  string  `json:"release_date"`
	Budget       float64 `json:"budget"`
	TotalGross   float64 `json:"total_gross"`
	Profit       float64 `json:"profit"`
	CriticRating float64 `json:"imdb_rating"`
	ROI          float64 `json:"roi"`
}

// Metrics accepted by TopPerformers.
var performerMetrics = map[string]func(model.MovieRecord) float64{
	"revenue": totalGross,
	"profit":  func(m model.MovieRecord) float64 { return m.Profit },
	"rating":  criticRating,
	"roi":     roi,
}

// IsMetric reports whether TopPerformers knows metric.
func IsMetric(metric string) bool {
	_, ok := performerMetrics[metric]
	return ok
}

// TopPerformers returns up to limit movies with the largest value of the
// metric's column, descending, ties in table order.  An unknown metric
// yields an empty slice.
func (a *Analytics) TopPerformers(metric string, limit int) []Performer {
	t := a.snapshot()
	key, ok := performerMetrics[metric]
	if t == nil || !ok {
		return []Performer{}
	}
	top := stats.TopN(t.movies, limit, key)
	out := make([]Performer, 0, len(top))
	for _, m := range top {
		out = append(out, Performer{
			Title:        m.Title,
			Genre:        m.Genre,
			Studio:       m.Studio,
			ReleaseDate:  table.FormatDate(m.ReleaseDate),
			Budget:       m.Budget,
			TotalGross:   m.TotalGross,
			Profit:       m.Profit,
			CriticRating: m.CriticRating,
			ROI:          m.ROI,
		})
	}
	return out
}

func totalGross(m model.MovieRecord) float64   { return m.TotalGross }
func criticRating(m model.MovieRecord) float64 { return m.CriticRating }
func roi(m model.MovieRecord) float64          { return m.ROI }
