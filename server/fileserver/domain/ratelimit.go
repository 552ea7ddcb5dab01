package domain

// Camada de domínio do rate limit.
//
// Regras e contratos (interfaces/tipos) sem dependência de net.

import "time"

type Key string

// Limiter decide se uma ação identificada por uma chave (ex: IP do cliente)
// é permitida no instante `now`.
//
// Observação: `now` é passado pelo chamador para que testes controlem o relógio.
// A implementação de referência é uma janela deslizante de timestamps (infra),
// mas a interface não impõe o algoritmo.
type Limiter interface {
	Allow(key Key, now time.Time) bool
}

type Decision struct {
	Allowed bool
	// RetryAfter é o valor a ser retornado em Retry-After quando bloquear.
	// Se 0, não há recomendação.
	RetryAfter time.Duration
}
