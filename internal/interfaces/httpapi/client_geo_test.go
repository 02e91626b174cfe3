package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResolveClientIP_PrefersForwardingHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/players", nil)
	req.RemoteAddr = "10.0.0.1:4567"
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")

	if got := resolveClientIP(req); got != "203.0.113.9" {
		t.Fatalf("expected forwarded ip, got %q", got)
	}
}

func TestResolveClientIP_FallsBackToRemoteAddr(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/players", nil)
	req.RemoteAddr = "192.0.2.44:51234"

	if got := resolveClientIP(req); got != "192.0.2.44" {
		t.Fatalf("expected remote addr host, got %q", got)
	}
}

func TestNormalizeIP(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "203.0.113.9", want: "203.0.113.9"},
		{in: " 203.0.113.9 ", want: "203.0.113.9"},
		{in: "203.0.113.9:8080", want: "203.0.113.9"},
		{in: "203.0.113.9, 10.0.0.1", want: "203.0.113.9"},
		{in: "not-an-ip", want: ""},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		if got := normalizeIP(tt.in); got != tt.want {
			t.Fatalf("normalizeIP(%q)=%q want=%q", tt.in, got, tt.want)
		}
	}
}
