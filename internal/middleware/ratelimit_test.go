package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/guestlist-rsvp/internal/config"
)

func newTestContext(t *testing.T, method, target string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(target)
	return c
}

func TestUserID(t *testing.T) {
	cases := []struct {
		name string
		set  any
		want string
	}{
		{"unauthenticated", nil, "guest"},
		{"string claim", "42", "42"},
		{"float64 claim", float64(42), "42"}, // jwt.MapClaims decodes numbers as float64
		{"uint64 claim", uint64(42), "42"},
		{"empty string", "", "guest"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestContext(t, "POST", "/v1/invites/:slug/guests/:id/rsvp")
			if tc.set != nil {
				c.Set("user_id", tc.set)
			}
			if got := userID(c); got != tc.want {
				t.Fatalf("userID = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestBuildRateKeyStrategies(t *testing.T) {
	c := newTestContext(t, "POST", "/v1/invites/:slug/guests/:id/rsvp")
	c.Set("user_id", "42")

	cases := []struct {
		strategy string
		want     string
	}{
		{"user", "rl:user:42"},
		{"route", "rl:route:POST /v1/invites/:slug/guests/:id/rsvp"},
		{"user_route", "rl:user:42:route:POST /v1/invites/:slug/guests/:id/rsvp"},
	}
	for _, tc := range cases {
		cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: tc.strategy}
		if got := buildRateKey(cfg, c); got != tc.want {
			t.Fatalf("strategy %s: key = %q, want %q", tc.strategy, got, tc.want)
		}
	}
}

func TestBuildRateKeyAnonymousUser(t *testing.T) {
	// Public RSVP traffic carries no token; user strategies must still
	// produce a stable key instead of an empty segment.
	c := newTestContext(t, "GET", "/v1/invites/:slug/guests")
	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "user"}
	if got := buildRateKey(cfg, c); got != "rl:user:guest" {
		t.Fatalf("key = %q, want rl:user:guest", got)
	}
}
