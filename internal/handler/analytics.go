package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-analytics/internal/analytics"
	"github.com/iliyamo/movie-analytics/internal/logger"
)

// defaultTopLimit applies when /top has no ?limit.
const defaultTopLimit = 10

// AnalyticsHandler serves the dashboard queries over the processed
// tables in DataDir.  The dataset is loaded once through Cache and
// reused until Refresh.
type AnalyticsHandler struct {
	Cache   *analytics.Cache
	DataDir string
	Log     *logger.Logger
	// Purge drops cached responses after a refresh.  Optional.
	Purge func(ctx context.Context) (int64, error)
}

func NewAnalyticsHandler(cache *analytics.Cache, dataDir string, log *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{Cache: cache, DataDir: dataDir, Log: log}
}

// dataset returns the loaded facade or writes 503 and returns nil.
func (h *AnalyticsHandler) dataset(c echo.Context) (*analytics.Analytics, error) {
	a, err := h.Cache.Get(h.DataDir)
	if err != nil {
		h.Log.Warn("dataset unavailable", "data_dir", h.DataDir, "error", err)
		return nil, c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "dataset not available"})
	}
	return a, nil
}

func (h *AnalyticsHandler) serve(c echo.Context, query func(*analytics.Analytics) any) error {
	a, err := h.dataset(c)
	if a == nil {
		return err
	}
	return c.JSON(http.StatusOK, query(a))
}

func (h *AnalyticsHandler) Overview(c echo.Context) error {
	return h.serve(c, func(a *analytics.Analytics) any { return a.Overview() })
}

func (h *AnalyticsHandler) Genres(c echo.Context) error {
	return h.serve(c, func(a *analytics.Analytics) any { return a.GenreAnalysis() })
}

func (h *AnalyticsHandler) Studios(c echo.Context) error {
	return h.serve(c, func(a *analytics.Analytics) any { return a.StudioAnalysis() })
}

func (h *AnalyticsHandler) Trends(c echo.Context) error {
	return h.serve(c, func(a *analytics.Analytics) any { return a.TemporalTrends() })
}

func (h *AnalyticsHandler) Sales(c echo.Context) error {
	return h.serve(c, func(a *analytics.Analytics) any { return a.SalesAnalysis() })
}

func (h *AnalyticsHandler) Monthly(c echo.Context) error {
	return h.serve(c, func(a *analytics.Analytics) any { return a.MonthlySales() })
}

func (h *AnalyticsHandler) Report(c echo.Context) error {
	return h.serve(c, func(a *analytics.Analytics) any { return a.ComprehensiveReport() })
}

type topQuery struct {
	Metric string `query:"metric" validate:"omitempty,oneof=revenue profit rating roi"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

// Top lists the best movies by ?metric (revenue, profit, rating, roi).
func (h *AnalyticsHandler) Top(c echo.Context) error {
	var q topQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid query"})
	}
	if err := c.Validate(&q); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": validationMessage(err)})
	}
	if q.Metric == "" {
		q.Metric = "revenue"
	}
	if q.Limit == 0 {
		q.Limit = defaultTopLimit
	}
	return h.serve(c, func(a *analytics.Analytics) any {
		return echo.Map{"metric": q.Metric, "movies": a.TopPerformers(q.Metric, q.Limit)}
	})
}

// Export returns the comprehensive report as JSON or the headline
// metrics as CSV (?format=csv).
func (h *AnalyticsHandler) Export(c echo.Context) error {
	a, err := h.dataset(c)
	if a == nil {
		return err
	}
	format := strings.ToLower(c.QueryParam("format"))
	body, err := a.ExportReport(format, "")
	if err != nil {
		h.Log.Error("export report failed", "format", format, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "export failed"})
	}
	if format == analytics.FormatCSV {
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="movie_report.csv"`)
		return c.Blob(http.StatusOK, "text/csv; charset=utf-8", []byte(body))
	}
	return c.JSONBlob(http.StatusOK, []byte(body))
}

// Refresh reloads the dataset from disk and drops cached responses.
// The previous dataset stays in service when the reload fails.
func (h *AnalyticsHandler) Refresh(c echo.Context) error {
	a, err := h.Cache.Refresh(h.DataDir)
	if err != nil {
		h.Log.Warn("dataset refresh failed", "data_dir", h.DataDir, "error", err)
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "dataset not available"})
	}
	var purged int64
	if h.Purge != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()
		if purged, err = h.Purge(ctx); err != nil {
			h.Log.Warn("response cache purge failed", "error", err)
		}
	}
	h.Log.Info("dataset refreshed", "data_dir", h.DataDir, "purged", purged)
	return c.JSON(http.StatusOK, echo.Map{"refreshed": true, "purged": purged, "overview": a.Overview()})
}
