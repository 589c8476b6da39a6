package analytics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/iliyamo/movie-analytics/internal/table"
)

// ReportTopN is the size of each ranking in the comprehensive report.
const ReportTopN = 5

type TopPerformers struct {
	ByRevenue []Performer `json:"by_revenue"`
	ByProfit  []Performer `json:"by_profit"`
	ByRating  []Performer `json:"by_rating"`
	ByROI     []Performer `json:"by_roi"`
}

// Report bundles every query.  Sections are null when the data is not
// loaded.
type Report struct {
	Overview       *Overview       `json:"overview"`
	GenreAnalysis  *GenreAnalysis  `json:"genre_analysis"`
	StudioAnalysis *StudioAnalysis `json:"studio_analysis"`
	TemporalTrends *TemporalTrends `json:"temporal_trends"`
	SalesAnalysis  *SalesAnalysis  `json:"sales_analysis"`
	TopPerformers  TopPerformers   `json:"top_performers"`
	GeneratedAt    string          `json:"generated_at"`
}

func (a *Analytics) ComprehensiveReport() *Report {
	return &Report{
		Overview:       a.Overview(),
		GenreAnalysis:  a.GenreAnalysis(),
		StudioAnalysis: a.StudioAnalysis(),
		TemporalTrends: a.TemporalTrends(),
		SalesAnalysis:  a.SalesAnalysis(),
		TopPerformers: TopPerformers{
			ByRevenue: a.TopPerformers("revenue", ReportTopN),
			ByProfit:  a.TopPerformers("profit", ReportTopN),
			ByRating:  a.TopPerformers("rating", ReportTopN),
			ByROI:     a.TopPerformers("roi", ReportTopN),
		},
		GeneratedAt: a.Now().Format("2006-01-02T15:04:05.000000"),
	}
}

const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// ExportReport serializes the comprehensive report.  "csv" writes only
// the five headline overview metrics as metric,value rows; any other
// format falls back to indented JSON.  With a non-empty path the output
// is written there and the path is returned, otherwise the content is.
func (a *Analytics) ExportReport(format, path string) (string, error) {
	report := a.ComprehensiveReport()

	var body []byte
	var err error
	if strings.EqualFold(format, FormatCSV) {
		body, err = overviewCSV(report.Overview)
	} else {
		body, err = json.MarshalIndent(report, "", "  ")
	}
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}
	if path == "" {
		return string(body), nil
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

var overviewCSVHeader = []string{"metric", "value"}

func overviewCSV(o *Overview) ([]byte, error) {
	var rows [][]string
	if o != nil {
		rows = [][]string{
			{"total_movies", table.FormatInt(o.TotalMovies)},
			{"total_revenue", table.FormatFloat(o.TotalRevenue)},
			{"avg_rating", table.FormatFloat(o.AvgRating)},
			{"profitable_percentage", table.FormatFloat(o.ProfitablePercentage)},
			{"avg_roi", table.FormatFloat(o.AvgROI)},
		}
	}
	var buf bytes.Buffer
	if err := table.Encode(&buf, overviewCSVHeader, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
