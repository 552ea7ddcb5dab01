package infra

import (
	"sync"
	"time"

	"http-fileserver/server/fileserver/domain"
)

// WindowStore é uma implementação de infra baseada em janela deslizante:
// para cada chave (IP do cliente) guarda os timestamps das requisições dentro
// da janela, com limpeza periódica de chaves ociosas.
//
// Diferente de um token bucket, a janela suaviza rajadas exatamente no limite
// da cota: a N-ésima+1 requisição dentro da janela é sempre recusada.
type WindowStore struct {
	mu           sync.Mutex
	windows      map[domain.Key][]time.Time
	quota        int
	window       time.Duration
	idleTTL      time.Duration
	cleanupEvery time.Duration
}

type WindowOption func(*WindowStore)

func WithIdleTTL(d time.Duration) WindowOption {
	return func(s *WindowStore) { s.idleTTL = d }
}

func WithCleanupEvery(d time.Duration) WindowOption {
	return func(s *WindowStore) { s.cleanupEvery = d }
}

func NewWindowStore(quota int, window time.Duration, opts ...WindowOption) *WindowStore {
	s := &WindowStore{
		windows:      make(map[domain.Key][]time.Time),
		quota:        quota,
		window:       window,
		idleTTL:      15 * time.Minute,
		cleanupEvery: 2 * time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *WindowStore) Quota() int                  { return s.quota }
func (s *WindowStore) Window() time.Duration       { return s.window }
func (s *WindowStore) CleanupEvery() time.Duration { return s.cleanupEvery }

// Allow implementa domain.Limiter.
//
// Sob o lock: descarta da frente os timestamps mais velhos que `now - window`
// (as entradas são anexadas em ordem crescente de tempo); se o que sobrou já
// atinge a cota, recusa sem registrar `now`; senão registra e permite.
func (s *WindowStore) Allow(key domain.Key, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.windows[key]
	for len(w) > 0 && now.Sub(w[0]) > s.window {
		w = w[1:]
	}

	if len(w) >= s.quota {
		s.windows[key] = w
		return false
	}

	s.windows[key] = append(w, now)
	return true
}

// Cleanup remove chaves cuja última requisição é mais velha que o idleTTL.
// A poda preguiçosa em Allow já limita o tamanho de cada janela; isto aqui
// evita que o mapa acumule chaves de clientes que sumiram.
func (s *WindowStore) Cleanup() {
	cutoff := time.Now().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	for k, w := range s.windows {
		if len(w) == 0 || w[len(w)-1].Before(cutoff) {
			delete(s.windows, k)
		}
	}
}

// StartJanitor inicia uma goroutine que limpa chaves inativas periodicamente.
// Pare cancelando o contexto.
func (s *WindowStore) StartJanitor(ctx DoneContext) {
	if s.cleanupEvery <= 0 {
		return
	}

	t := time.NewTicker(s.cleanupEvery)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.Cleanup()
			}
		}
	}()
}

// DoneContext é o mínimo necessário para aceitar context.Context sem importar context aqui.
// (Permite reuso em libs sem acoplar.)
type DoneContext interface {
	Done() <-chan struct{}
}
