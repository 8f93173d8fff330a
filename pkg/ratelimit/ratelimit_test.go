package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientIP(t *testing.T) {
	trusted, err := ParseTrustedProxies([]string{"10.0.0.0/8", "192.0.2.1"})
	if err != nil {
		t.Fatalf("parse proxies: %v", err)
	}

	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{"socket address", "10.0.0.7:51234", "", "10.0.0.7"},
		{"no port", "198.51.100.4", "", "198.51.100.4"},
		{"header from untrusted peer ignored", "203.0.113.9:4000", "1.1.1.1", "203.0.113.9"},
		{"trusted proxy", "10.0.0.7:51234", "203.0.113.9", "203.0.113.9"},
		{"spoofed left hops skipped", "10.0.0.7:51234", "1.1.1.1, 203.0.113.9, 192.0.2.1", "203.0.113.9"},
		{"garbage hop", "10.0.0.7:51234", "not-an-ip", "10.0.0.7"},
		{"only proxies", "10.0.0.7:51234", "10.1.1.1", "10.1.1.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if got := ClientIP(r, trusted); got != tt.want {
				t.Fatalf("ClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRotatingForwardedForKeepsOneKey(t *testing.T) {
	keys := map[string]bool{}
	for _, fwd := range []string{"1.1.1.1", "2.2.2.2", "3.3.3.3"} {
		r := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		r.RemoteAddr = "203.0.113.9:5000"
		r.Header.Set("X-Forwarded-For", fwd)
		keys[ClientIP(r, nil)] = true
	}
	if len(keys) != 1 || !keys["203.0.113.9"] {
		t.Fatalf("expected a single key for the socket peer, got %v", keys)
	}
}

func TestParseTrustedProxies(t *testing.T) {
	nets, err := ParseTrustedProxies([]string{" 172.16.0.0/12 ", "", "::1"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(nets) != 2 {
		t.Fatalf("got %d networks, want 2", len(nets))
	}
	if _, err := ParseTrustedProxies([]string{"proxy.local"}); err == nil {
		t.Fatal("expected error for a hostname")
	}
}

func TestWithoutRedisEverythingPasses(t *testing.T) {
	rl := NewRateLimiter(nil, "login", 1, time.Minute)
	calls := 0
	h := rl.Wrap(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNoContent)
	})

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
		if rec.Code != http.StatusNoContent {
			t.Fatalf("request %d: status %d", i, rec.Code)
		}
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}
