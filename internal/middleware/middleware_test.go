package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-analytics/internal/config"
	"github.com/iliyamo/movie-analytics/internal/logger"
	"github.com/iliyamo/movie-analytics/internal/utils"
)

func protected(secret string, roles ...string) *echo.Echo {
	e := echo.New()
	g := e.Group("/v1", JWTAuth(secret), RequireRole(roles...))
	g.GET("/whoami", func(c echo.Context) error {
		return c.String(http.StatusOK, CurrentUserID(c))
	})
	return e
}

func do(e *echo.Echo, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/v1/whoami", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuthAndRole(t *testing.T) {
	e := protected("secret", "ADMIN")

	if rec := do(e, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: %d", rec.Code)
	}
	if rec := do(e, "garbage"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: %d", rec.Code)
	}

	wrongKey, _ := utils.NewAccessToken("other", 1, "ADMIN", 5)
	if rec := do(e, wrongKey.Token); rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong key: %d", rec.Code)
	}

	viewer, _ := utils.NewAccessToken("secret", 1, "VIEWER", 5)
	if rec := do(e, viewer.Token); rec.Code != http.StatusForbidden {
		t.Fatalf("wrong role: %d", rec.Code)
	}

	admin, _ := utils.NewAccessToken("secret", 7, "ADMIN", 5)
	rec := do(e, admin.Token)
	if rec.Code != http.StatusOK || rec.Body.String() != "7" {
		t.Fatalf("admin: %d %q", rec.Code, rec.Body.String())
	}
}

func TestCacheKeyStrategies(t *testing.T) {
	e := echo.New()
	newCtx := func(target string) echo.Context {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), httptest.NewRecorder())
		c.SetPath("/v1/analytics/top")
		return c
	}
	cfg := config.CacheConfig{Prefix: "analytics", KeyStrategy: "route_query"}
	a := cacheKeyFrom(cfg, newCtx("/v1/analytics/top?metric=roi"))
	b := cacheKeyFrom(cfg, newCtx("/v1/analytics/top?metric=profit"))
	if a == b || !strings.HasPrefix(a, "analytics:") {
		t.Fatalf("route_query keys: %s %s", a, b)
	}
	cfg.KeyStrategy = "route"
	if cacheKeyFrom(cfg, newCtx("/v1/analytics/top?metric=roi")) != cacheKeyFrom(cfg, newCtx("/v1/analytics/top?metric=profit")) {
		t.Fatalf("route strategy should ignore the query")
	}
}

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	bs, err := encodePayload(http.StatusOK, hdr, []byte(`{"ok":true}`))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	status, gotHdr, body, ok := decodePayload(bs)
	if !ok || status != http.StatusOK || gotHdr.Get("Content-Type") != "application/json" || string(body) != `{"ok":true}` {
		t.Fatalf("decode: %v %d %v %s", ok, status, gotHdr, body)
	}
	if _, _, _, ok := decodePayload(bs[:5]); ok {
		t.Fatalf("short payload should not decode")
	}
}

func TestMiddlewareWithoutRedisIsPassthrough(t *testing.T) {
	e := echo.New()
	e.Use(NewRedisCache(config.CacheConfig{Enabled: true}, nil, logger.Nop()))
	e.Use(NewTokenBucket(config.RateLimitConfig{Enabled: true, Capacity: 1}, nil, logger.Nop()))
	e.GET("/x", func(c echo.Context) error { return c.String(http.StatusOK, "x") })
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
		if rec.Code != http.StatusOK || rec.Header().Get("X-Cache") != "" {
			t.Fatalf("request %d: %d %v", i, rec.Code, rec.Header())
		}
	}
}

func TestCaptureWriterLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 4}
	_, _ = cw.Write([]byte("abc"))
	_, _ = cw.Write([]byte("defg"))
	if cw.buf.String() != "abcd" || cw.size != 7 || rec.Body.String() != "abcdefg" {
		t.Fatalf("buf=%q size=%d body=%q", cw.buf.String(), cw.size, rec.Body.String())
	}
}

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/tickets", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.1")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/tickets")
	got := buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip_user_route"}, c)
	if got != "rl:ip:10.0.0.1:user:anon:route:GET /v1/tickets" {
		t.Fatalf("key: %s", got)
	}
}
