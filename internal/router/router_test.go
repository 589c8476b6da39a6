package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-analytics/internal/analytics"
	"github.com/iliyamo/movie-analytics/internal/handler"
	"github.com/iliyamo/movie-analytics/internal/logger"
	"github.com/iliyamo/movie-analytics/internal/repository"
	"github.com/iliyamo/movie-analytics/internal/utils"
)

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	e.Validator = handler.NewValidator()
	passthrough := func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	RegisterRoutes(e)
	RegisterAnalytics(e, handler.NewAnalyticsHandler(analytics.NewCache(), t.TempDir(), logger.Nop()), passthrough, "secret")
	// the store is never reached by the requests below
	RegisterTickets(e, handler.NewTicketHandler(repository.NewTicketRepo(nil), nil, logger.Nop()), "secret")
	return e
}

func serve(e *echo.Echo, method, target, token string) int {
	req := httptest.NewRequest(method, target, strings.NewReader(`{"quantity":1}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code
}

func TestHealth(t *testing.T) {
	if code := serve(newServer(t), http.MethodGet, "/healthz", ""); code != http.StatusOK {
		t.Fatalf("healthz: %d", code)
	}
}

func TestProtectedRoutes(t *testing.T) {
	e := newServer(t)
	viewer, _ := utils.NewAccessToken("secret", 2, "VIEWER", 5)

	cases := []struct {
		method, target, token string
		want                  int
	}{
		{http.MethodPost, "/v1/tickets", "", http.StatusUnauthorized},
		{http.MethodPost, "/v1/tickets", viewer.Token, http.StatusForbidden},
		{http.MethodPost, "/v1/tickets/X/add", viewer.Token, http.StatusForbidden},
		{http.MethodPost, "/v1/tickets/X/book", "", http.StatusUnauthorized},
		{http.MethodPost, "/v1/analytics/refresh", "", http.StatusUnauthorized},
		{http.MethodPost, "/v1/analytics/refresh", viewer.Token, http.StatusForbidden},
		{http.MethodGet, "/v1/analytics/overview", "", http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		if code := serve(e, tc.method, tc.target, tc.token); code != tc.want {
			t.Fatalf("%s %s: want %d, got %d", tc.method, tc.target, tc.want, code)
		}
	}
}
