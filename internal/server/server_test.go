package server

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func TestNormalizeAddr(t *testing.T) {
	cases := map[string]string{
		"":      "",
		"8080":  ":8080",
		":9090": ":9090",
	}
	for in, want := range cases {
		if got := normalizeAddr(in); got != want {
			t.Fatalf("normalizeAddr(%q)=%q, want %q", in, got, want)
		}
	}
}

func TestNew_AppliesDefaults(t *testing.T) {
	s := New(Timeouts{Write: 3 * time.Second})
	hs := s.newHTTPServer(":0", http.NotFoundHandler())
	if hs.ReadHeaderTimeout != defaultReadHeaderTimeout || hs.IdleTimeout != defaultIdleTimeout {
		t.Fatalf("defaults not applied: %+v", hs)
	}
	if hs.WriteTimeout != 3*time.Second {
		t.Fatalf("write timeout=%v", hs.WriteTimeout)
	}
	if hs.MaxHeaderBytes != maxHeaderBytes {
		t.Fatalf("max header bytes=%d", hs.MaxHeaderBytes)
	}
}

func TestShutdown_BeforeRun(t *testing.T) {
	if err := New(Timeouts{}).Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown before run: %v", err)
	}
}
