package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/sihul/sihul-backend/internal/config"
)

func TestEncodeDecodePayload(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}, "X-Total": {"42"}}
	body := []byte(`{"items":[]}`)

	payload, err := encodePayload(http.StatusOK, hdr, body)
	if err != nil {
		t.Fatalf("encodePayload: %v", err)
	}

	status, gotHdr, gotBody, ok := decodePayload(payload)
	if !ok {
		t.Fatal("decodePayload rejected a valid payload")
	}
	if status != http.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
	if got := gotHdr.Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}
	if string(gotBody) != string(body) {
		t.Errorf("body = %q, want %q", gotBody, body)
	}
}

func TestDecodePayloadRejectsGarbage(t *testing.T) {
	tests := []struct {
		name string
		bs   []byte
	}{
		{"empty", nil},
		{"short", []byte{0, 0}},
		{"header length past end", []byte{0, 0, 0, 200, 0, 0, 255, 255, 'x'}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, _, ok := decodePayload(tt.bs); ok {
				t.Error("decodePayload accepted garbage")
			}
		})
	}
}

func TestCacheKeyStrategies(t *testing.T) {
	newCtx := func(target string) echo.Context {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, target, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/v1/public/timetable")
		return c
	}
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}

	k1 := cacheKeyFrom(cfg, newCtx("/v1/public/timetable?day=Lunes"))
	k2 := cacheKeyFrom(cfg, newCtx("/v1/public/timetable?day=Martes"))
	if k1 == k2 {
		t.Error("route_query keys should differ per query string")
	}
	if !strings.HasPrefix(k1, "cache:") {
		t.Errorf("key %q missing prefix", k1)
	}

	cfg.KeyStrategy = "route"
	k3 := cacheKeyFrom(cfg, newCtx("/v1/public/timetable?day=Lunes"))
	k4 := cacheKeyFrom(cfg, newCtx("/v1/public/timetable?day=Martes"))
	if k3 != k4 {
		t.Error("route strategy should ignore the query string")
	}
}

func TestNewRedisCacheNoop(t *testing.T) {
	// Without a Redis client the middleware must pass requests straight
	// through and add no cache headers.
	mw := NewRedisCache(config.CacheConfig{Enabled: true}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/public/rooms", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := mw(func(c echo.Context) error {
		called = true
		return c.String(http.StatusOK, "ok")
	})
	if err := h(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if !called {
		t.Error("next handler not invoked")
	}
	if got := rec.Header().Get("X-Cache"); got != "" {
		t.Errorf("unexpected X-Cache header %q", got)
	}
}
