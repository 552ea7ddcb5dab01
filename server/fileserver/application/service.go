package application

import (
	"time"

	"http-fileserver/server/fileserver/domain"
)

// RateService concentra a regra de aplicação do rate limit.
//
// Ele não sabe nada sobre HTTP (framing/status), apenas retorna uma decisão.
type RateService struct {
	Limiter    domain.Limiter
	RetryAfter time.Duration
}

func (s RateService) Decide(key domain.Key, now time.Time) domain.Decision {
	if s.Limiter == nil {
		return domain.Decision{Allowed: true}
	}
	if s.RetryAfter <= 0 {
		s.RetryAfter = 1 * time.Second
	}

	if s.Limiter.Allow(key, now) {
		return domain.Decision{Allowed: true}
	}
	return domain.Decision{Allowed: false, RetryAfter: s.RetryAfter}
}
