package model

import (
	"errors"
	"time"
)

// ErrNonPositiveBudget is returned by Derive when ROI cannot be computed.
var ErrNonPositiveBudget = errors.New("budget must be positive")

// Genres is the fixed set of genres the generator draws from.
var Genres = []string{"Action", "Comedy", "Drama", "Horror", "Romance", "Sci-Fi", "Thriller",
	"Animation", "Documentary", "Fantasy"}

// MovieRecord represents one theatrical title.  Source fields come
// from the raw catalog; the derived block is filled by Derive and is
// never trusted from disk.
//
// Fields:
//  MovieID            – unique, stable identifier.
//  Title              – display title.
//  Genre              – one of Genres.
//  ReleaseDate        – calendar release date (UTC midnight).
//  MPARating          – G, PG, PG-13, R or NC-17.
//  Studio             – producing studio.
//  RuntimeMinutes     – positive runtime.
//  Budget             – production budget in dollars.
//  DomesticGross      – domestic box office.
//  InternationalGross – international box office.
//  TotalGross         – domestic + international.
//  CriticRating       – 1..10 rating (imdb_rating column).
//  TicketsSold        – estimated domestic admissions.
//  TicketsAvailable   – seats on sale in the booking system.
type MovieRecord struct {
	MovieID            int       `json:"movie_id"`            // movie_id
	Title              string    `json:"title"`               // title
	Genre              string    `json:"genre"`               // genre
	ReleaseDate        time.Time `json:"release_date"`        // release_date
	MPARating          string    `json:"rating"`              // rating
	Studio             string    `json:"studio"`              // studio
	RuntimeMinutes     int       `json:"runtime_minutes"`     // runtime_minutes
	Budget             float64   `json:"budget"`              // budget
	DomesticGross      float64   `json:"domestic_gross"`      // domestic_gross
	InternationalGross float64   `json:"international_gross"` // international_gross
	TotalGross         float64   `json:"total_gross"`         // total_gross
	CriticRating       float64   `json:"imdb_rating"`         // imdb_rating
	TicketsSold        int       `json:"tickets_sold"`        // tickets_sold
	TicketsAvailable   int       `json:"tickets_available"`   // tickets_available

	ReleaseYear    int     `json:"release_year"`
	ReleaseMonth   int     `json:"release_month"`
	Profit         float64 `json:"profit"`
	ROI            float64 `json:"roi"`
	BudgetCategory string  `json:"budget_category"`
	Performance    string  `json:"performance"`
}

// Derive recomputes every derived field from the source fields.  It
// fails for a non-positive budget, leaving the record untouched.
func (m *MovieRecord) Derive() error {
	if m.Budget <= 0 {
		return ErrNonPositiveBudget
	}
	m.ReleaseYear = m.ReleaseDate.Year()
	m.ReleaseMonth = int(m.ReleaseDate.Month())
	m.Profit = m.TotalGross - m.Budget
	m.ROI = Round2(m.Profit / m.Budget * 100)
	m.BudgetCategory = BudgetBuckets.Label(m.Budget)
	m.Performance = PerformanceBuckets.Label(m.Profit)
	return nil
}

// DailySalesRecord is one (movie, day) ticket-sales observation.  The
// movie reference is soft: nothing checks it against the catalog.
type DailySalesRecord struct {
	MovieID     int       `json:"movie_id"`     // movie_id
	MovieTitle  string    `json:"movie_title"`  // movie_title
	Date        time.Time `json:"date"`         // date
	TicketsSold int       `json:"tickets_sold"` // tickets_sold
	Revenue     float64   `json:"revenue"`      // revenue

	Year      int    `json:"year"`
	Month     int    `json:"month"`
	DayOfWeek string `json:"day_of_week"`
	IsWeekend bool   `json:"is_weekend"`
}

// Derive fills the calendar fields from Date.
func (s *DailySalesRecord) Derive() {
	s.Year = s.Date.Year()
	s.Month = int(s.Date.Month())
	s.DayOfWeek = s.Date.Weekday().String()
	s.IsWeekend = IsWeekend(s.Date)
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
