package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/dharmasatrya/searchconfirm/internal/search"
	"github.com/dharmasatrya/searchconfirm/pkg/dateparse"
)

func baseRequest() search.SearchRequest {
	return search.SearchRequest{
		DepartureDate:          "09/10/2025",
		DepartureAirportCode:   "syd",
		ReturnDate:             "16/10/2025",
		DestinationAirportCode: "mel",
		SeatingClass:           "economy",
		AdultPassengerCount:    1,
	}
}

func TestKey(t *testing.T) {
	today := dateparse.MustParse("08/10/2025")
	base := Key(baseRequest(), today)

	if !strings.HasPrefix(base, "verdict:") {
		t.Errorf("Key() = %q, want verdict: prefix", base)
	}
	if got := Key(baseRequest(), today); got != base {
		t.Errorf("Key() not stable: %q vs %q", got, base)
	}

	tests := []struct {
		name   string
		modify func(r *search.SearchRequest)
		today  dateparse.Date
	}{
		{name: "different day", modify: func(r *search.SearchRequest) {}, today: today.AddDays(1)},
		{name: "emergency row", modify: func(r *search.SearchRequest) { r.EmergencyRowSeating = true }, today: today},
		{name: "infant added", modify: func(r *search.SearchRequest) { r.InfantPassengerCount = 1 }, today: today},
		{name: "class", modify: func(r *search.SearchRequest) { r.SeatingClass = "first" }, today: today},
		{name: "return date", modify: func(r *search.SearchRequest) { r.ReturnDate = "17/10/2025" }, today: today},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			tt.modify(&req)
			if got := Key(req, tt.today); got == base {
				t.Errorf("Key() = %q, want it to differ from base", got)
			}
		})
	}
}

func TestNoOpCache(t *testing.T) {
	c := NewNoOpCache()
	ctx := context.Background()
	today := dateparse.MustParse("08/10/2025")

	if err := c.Set(ctx, baseRequest(), today, Verdict{Accepted: true}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, found := c.Get(ctx, baseRequest(), today); found {
		t.Error("NoOpCache.Get() should always miss")
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	cfg := DefaultRedisConfig()
	cfg.Port = "1"

	if _, err := NewRedisCache(cfg); err == nil {
		t.Error("NewRedisCache() against a closed port should fail")
	}
}

func newTestRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	s := miniredis.RunT(t)
	c, err := NewRedisCache(RedisConfig{Host: s.Host(), Port: s.Port(), TTL: time.Minute})
	if err != nil {
		t.Fatalf("NewRedisCache() error = %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c, s
}

func TestRedisCache_RoundTrip(t *testing.T) {
	today := dateparse.MustParse("08/10/2025")

	tests := []struct {
		name    string
		modify  func(r *search.SearchRequest)
		verdict Verdict
	}{
		{
			name:    "accepted verdict",
			modify:  func(r *search.SearchRequest) {},
			verdict: Verdict{Accepted: true},
		},
		{
			name:    "rejected verdict",
			modify:  func(r *search.SearchRequest) { r.DestinationAirportCode = "syd" },
			verdict: Verdict{Accepted: false, Reason: search.ErrSameAirport.Error()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, s := newTestRedisCache(t)
			ctx := context.Background()
			req := baseRequest()
			tt.modify(&req)

			if _, found := c.Get(ctx, req, today); found {
				t.Fatal("Get() before Set() should miss")
			}
			if err := c.Set(ctx, req, today, tt.verdict); err != nil {
				t.Fatalf("Set() error = %v", err)
			}

			got, found := c.Get(ctx, req, today)
			if !found {
				t.Fatal("Get() after Set() should hit")
			}
			if got != tt.verdict {
				t.Errorf("Get() = %+v, want %+v", got, tt.verdict)
			}

			key := Key(req, today)
			if !s.Exists(key) {
				t.Errorf("key %q not stored in redis", key)
			}
			if ttl := s.TTL(key); ttl != time.Minute {
				t.Errorf("TTL = %v, want 1m", ttl)
			}
		})
	}
}

func TestRedisCache_Misses(t *testing.T) {
	today := dateparse.MustParse("08/10/2025")
	stored := Verdict{Accepted: false, Reason: search.ErrPassengerTotal.Error()}

	tests := []struct {
		name  string
		setup func(t *testing.T, s *miniredis.Miniredis)
		today dateparse.Date
	}{
		{
			name:  "different today",
			setup: func(t *testing.T, s *miniredis.Miniredis) {},
			today: today.AddDays(1),
		},
		{
			name: "garbage payload",
			setup: func(t *testing.T, s *miniredis.Miniredis) {
				if err := s.Set(Key(baseRequest(), today), "not json"); err != nil {
					t.Fatalf("miniredis Set() error = %v", err)
				}
			},
			today: today,
		},
		{
			name:  "expired entry",
			setup: func(t *testing.T, s *miniredis.Miniredis) { s.FastForward(2 * time.Minute) },
			today: today,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, s := newTestRedisCache(t)
			ctx := context.Background()

			if err := c.Set(ctx, baseRequest(), today, stored); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			tt.setup(t, s)

			got, found := c.Get(ctx, baseRequest(), tt.today)
			if found {
				t.Errorf("Get() = %+v, true; want miss", got)
			}
			if got != (Verdict{}) {
				t.Errorf("Get() verdict = %+v, want zero value", got)
			}
		})
	}
}

func TestRedisCache_SetAfterCloseFails(t *testing.T) {
	c, _ := newTestRedisCache(t)
	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := c.Set(context.Background(), baseRequest(), dateparse.MustParse("08/10/2025"), Verdict{}); err == nil {
		t.Error("Set() on a closed client should fail")
	}
}
