package application

import (
	"testing"
	"time"

	"http-fileserver/server/fileserver/domain"
)

type fakeLimiter struct {
	allow bool
	calls int
}

func (f *fakeLimiter) Allow(domain.Key, time.Time) bool {
	f.calls++
	return f.allow
}

func TestRateService_Decide_AllowsWhenNoLimiter(t *testing.T) {
	svc := RateService{}
	dec := svc.Decide("k", time.Now())
	if !dec.Allowed {
		t.Fatalf("expected allowed")
	}
	if dec.RetryAfter != 0 {
		t.Fatalf("expected RetryAfter=0 when allowed, got %s", dec.RetryAfter)
	}
}

func TestRateService_Decide_AllowsWhenLimiterAllows(t *testing.T) {
	lim := &fakeLimiter{allow: true}
	svc := RateService{Limiter: lim, RetryAfter: 5 * time.Second}
	dec := svc.Decide("k", time.Now())
	if !dec.Allowed {
		t.Fatalf("expected allowed")
	}
	if lim.calls != 1 {
		t.Fatalf("expected limiter to be called once, got %d", lim.calls)
	}
}

func TestRateService_Decide_BlocksWithRetryAfterDefault(t *testing.T) {
	svc := RateService{Limiter: &fakeLimiter{allow: false}}
	dec := svc.Decide("k", time.Now())
	if dec.Allowed {
		t.Fatalf("expected blocked")
	}
	if dec.RetryAfter != 1*time.Second {
		t.Fatalf("expected default RetryAfter=1s, got %s", dec.RetryAfter)
	}
}

func TestRateService_Decide_BlocksWithConfiguredRetryAfter(t *testing.T) {
	svc := RateService{Limiter: &fakeLimiter{allow: false}, RetryAfter: 2500 * time.Millisecond}
	dec := svc.Decide("k", time.Now())
	if dec.Allowed {
		t.Fatalf("expected blocked")
	}
	if dec.RetryAfter != 2500*time.Millisecond {
		t.Fatalf("expected RetryAfter=2.5s, got %s", dec.RetryAfter)
	}
}
