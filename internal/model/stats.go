package model

// GenreStats is one row of the per-genre rollup.
type GenreStats struct {
	Genre        string  `json:"genre"`
	AvgBudget    float64 `json:"avg_budget"`
	MedianBudget float64 `json:"median_budget"`
	AvgGross     float64 `json:"avg_gross"`
	MedianGross  float64 `json:"median_gross"`
	TotalGross   float64 `json:"total_gross"`
	AvgRating    float64 `json:"avg_rating"`
	AvgProfit    float64 `json:"avg_profit"`
	MedianProfit float64 `json:"median_profit"`
	MovieCount   int     `json:"movie_count"`
}

// StudioStats is one row of the per-studio rollup.
type StudioStats struct {
	Studio      string  `json:"studio"`
	AvgBudget   float64 `json:"avg_budget"`
	TotalBudget float64 `json:"total_budget"`
	AvgGross    float64 `json:"avg_gross"`
	TotalGross  float64 `json:"total_gross"`
	AvgRating   float64 `json:"avg_rating"`
	MovieCount  int     `json:"movie_count"`
}

// MonthlySales sums daily sales per calendar month.
type MonthlySales struct {
	Year         int     `json:"year"`
	Month        int     `json:"month"`
	TotalTickets int     `json:"total_tickets"`
	TotalRevenue float64 `json:"total_revenue"`
	UniqueMovies int     `json:"unique_movies"`
}

type TopGrossing struct {
	Title        string  `json:"title"`
	Genre        string  `json:"genre"`
	Studio       string  `json:"studio"`
	TotalGross   float64 `json:"total_gross"`
	Budget       float64 `json:"budget"`
	Profit       float64 `json:"profit"`
	CriticRating float64 `json:"imdb_rating"`
}

type TopRated struct {
	Title        string  `json:"title"`
	Genre        string  `json:"genre"`
	Studio       string  `json:"studio"`
	CriticRating float64 `json:"imdb_rating"`
	TotalGross   float64 `json:"total_gross"`
	Budget       float64 `json:"budget"`
}
