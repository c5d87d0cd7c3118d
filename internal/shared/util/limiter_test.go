package util

import (
	"testing"
	"time"
)

func TestLimiterAllow(t *testing.T) {
	t.Parallel()

	l := NewLimiter(1, 2)
	if !l.Allow(1) {
		t.Fatal("first event should be allowed")
	}
	if !l.Allow(1) {
		t.Fatal("burst should cover the second event")
	}
	if l.Allow(1) {
		t.Fatal("third immediate event should be throttled")
	}
}

func TestLimiterRegistryKeysAreIndependent(t *testing.T) {
	t.Parallel()

	reg := NewLimiterRegistry(1, 1, time.Minute)
	if !reg.Get("a.ts").Allow(1) {
		t.Fatal("fresh key should be allowed")
	}
	if reg.Get("a.ts").Allow(1) {
		t.Fatal("same key should be throttled")
	}
	if !reg.Get("b.ts").Allow(1) {
		t.Fatal("different key should have its own bucket")
	}
}
