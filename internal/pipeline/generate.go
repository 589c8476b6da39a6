package pipeline

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/iliyamo/movie-analytics/internal/model"
	"github.com/iliyamo/movie-analytics/internal/stats"
)

// GenerateOptions controls the synthetic dataset.  The same Seed and Now
// always produce the same tables.
type GenerateOptions struct {
	Movies     int
	SalesDays  int
	SalesTop   int
	Seed       uint64
	Now        time.Time
	ReleaseAge time.Duration
}

// DefaultGenerateOptions mirrors the demo dataset: 500 titles released in
// the last ten years, a year of daily sales for the 20 top grossers.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Movies:     500,
		SalesDays:  365,
		SalesTop:   20,
		Seed:       42,
		Now:        time.Now().UTC(),
		ReleaseAge: 10 * 365 * 24 * time.Hour,
	}
}

var (
	titleAdjectives = []string{"Amazing", "Incredible", "Ultimate", "Dark", "Brilliant", "Epic", "Hidden",
		"Lost", "Golden", "Secret", "Mysterious", "Fantastic", "Wild", "Dangerous"}

	titleNouns = []string{"Adventure", "Mystery", "Legacy", "Quest", "Journey", "Chronicles", "Saga",
		"Tales", "Dreams", "Destiny", "Warrior", "Guardian", "Kingdom", "Empire"}

	studios = []string{"Universal Pictures", "Warner Bros", "Disney", "Sony Pictures", "Paramount",
		"20th Century Fox", "MGM", "Lionsgate", "Netflix", "Amazon Studios"}

	sequelSuffixes = []string{"II", "III", "Returns", "Reloaded", "Rising"}
	mpaRatings     = []string{"G", "PG", "PG-13", "R", "NC-17"}
)

var (
	bigBudgetGenres  = map[string]bool{"Action": true, "Sci-Fi": true, "Fantasy": true}
	bigBudgetStudios = map[string]bool{"Disney": true, "Warner Bros": true, "Universal Pictures": true}
)

// Generate builds a raw catalog and its daily sales.  Derived fields are
// left zero; they belong to the pipeline.
func Generate(opts GenerateOptions) ([]model.MovieRecord, []model.DailySalesRecord, error) {
	if opts.Movies <= 0 {
		return nil, nil, fmt.Errorf("movies must be positive, got %d", opts.Movies)
	}
	if opts.SalesDays < 0 || opts.SalesTop < 0 {
		return nil, nil, fmt.Errorf("sales window must not be negative")
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now().UTC()
	}
	if opts.ReleaseAge <= 0 {
		opts.ReleaseAge = 10 * 365 * 24 * time.Hour
	}
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	g := &generator{rng: rng, now: midnight(opts.Now)}

	movies := make([]model.MovieRecord, 0, opts.Movies)
	for i := 0; i < opts.Movies; i++ {
		movies = append(movies, g.movie(i+1, opts.ReleaseAge))
	}
	top := stats.TopN(movies, opts.SalesTop, gross)
	var sales []model.DailySalesRecord
	for _, m := range top {
		sales = append(sales, g.sales(m, opts.SalesDays)...)
	}
	return movies, sales, nil
}

type generator struct {
	rng *rand.Rand
	now time.Time
}

func (g *generator) pick(vs []string) string { return vs[g.rng.IntN(len(vs))] }

func (g *generator) uniform(lo, hi float64) float64 { return lo + g.rng.Float64()*(hi-lo) }

// intBetween is inclusive on both ends.
func (g *generator) intBetween(lo, hi int) int { return lo + g.rng.IntN(hi-lo+1) }

func (g *generator) normal(mean, sd float64) float64 { return mean + sd*g.rng.NormFloat64() }

func (g *generator) lognormal(mu, sigma float64) float64 { return math.Exp(g.normal(mu, sigma)) }

func (g *generator) movie(id int, age time.Duration) model.MovieRecord {
	title := g.pick(titleAdjectives) + " " + g.pick(titleNouns)
	if g.rng.Float64() < 0.3 {
		title += " " + g.pick(sequelSuffixes)
	}
	span := int64(age / time.Second)
	release := midnight(g.now.Add(-age).Add(time.Duration(g.rng.Int64N(span+1)) * time.Second))

	genre := g.pick(model.Genres)
	studio := g.pick(studios)
	runtime := clampInt(int(g.normal(120, 25)), 80, 200)

	base := g.lognormal(16, 1)
	if bigBudgetGenres[genre] {
		base *= 1.5
	}
	if bigBudgetStudios[studio] {
		base *= 1.3
	}
	budget := math.Max(1_000_000, math.Min(300_000_000, math.Trunc(base)))

	domestic := math.Trunc(budget * g.lognormal(0, 1) * g.uniform(0.5, 4.0))
	international := math.Trunc(domestic * g.uniform(0.3, 2.5))
	rating := math.Round(math.Max(1, math.Min(10, g.normal(6.5, 1.5)))*10) / 10
	ticketPrice := g.uniform(8, 15)

	return model.MovieRecord{
		MovieID:            id,
		Title:              title,
		Genre:              genre,
		ReleaseDate:        release,
		MPARating:          g.pick(mpaRatings),
		Studio:             studio,
		RuntimeMinutes:     runtime,
		Budget:             budget,
		DomesticGross:      domestic,
		InternationalGross: international,
		TotalGross:         domestic + international,
		CriticRating:       rating,
		TicketsSold:        int(domestic / ticketPrice),
		TicketsAvailable:   g.intBetween(0, 500),
	}
}

// sales emits one row per day from max(window start, release) through
// today.  Volume peaks in the first month, tails off after three, and
// weekends sell 1.5x.
func (g *generator) sales(m model.MovieRecord, days int) []model.DailySalesRecord {
	start := g.now.AddDate(0, 0, -days)
	if m.ReleaseDate.After(start) {
		start = m.ReleaseDate
	}
	var out []model.DailySalesRecord
	for d := start; !d.After(g.now); d = d.AddDate(0, 0, 1) {
		since := int(d.Sub(m.ReleaseDate).Hours() / 24)
		var tickets int
		switch {
		case since < 30:
			tickets = g.intBetween(100, 1000)
		case since < 90:
			tickets = g.intBetween(50, 300)
		default:
			tickets = g.intBetween(0, 50)
		}
		if model.IsWeekend(d) {
			tickets = int(float64(tickets) * 1.5)
		}
		out = append(out, model.DailySalesRecord{
			MovieID:     m.MovieID,
			MovieTitle:  m.Title,
			Date:        d,
			TicketsSold: tickets,
			Revenue:     model.Round2(float64(tickets) * g.uniform(8, 15)),
		})
	}
	return out
}

func midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
