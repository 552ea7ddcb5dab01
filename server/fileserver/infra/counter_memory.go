package infra

import (
	"context"
	"sync"
	"time"
)

// MemoryCounterStore mantém contadores de acesso por caminho em memória.
//
// No modo padrão (sincronizado), Increment segura o lock durante todo o
// read-modify-write: N incrementos concorrentes no mesmo caminho sempre
// resultam em +N.
//
// No modo racy (demonstração de lost update), o read-modify-write é
// deliberadamente quebrado em passos separados no tempo, sem exclusão entre
// eles: dois handlers podem ler o mesmo valor e um sobrescrever o incremento
// do outro. O lock curto em cada passo protege apenas o acesso ao mapa
// (o runtime de Go aborta em acesso concorrente a map); a sequência como um
// todo continua desprotegida, que é o ponto da demonstração.
type MemoryCounterStore struct {
	mu     sync.Mutex
	counts map[string]int64

	racy      bool
	stepDelay time.Duration
}

type MemoryCounterOption func(*MemoryCounterStore)

// WithRacyMode liga o modo de demonstração de race condition.
func WithRacyMode(racy bool) MemoryCounterOption {
	return func(s *MemoryCounterStore) { s.racy = racy }
}

// WithStepDelay define a pausa artificial entre os passos do modo racy.
func WithStepDelay(d time.Duration) MemoryCounterOption {
	return func(s *MemoryCounterStore) { s.stepDelay = d }
}

func NewMemoryCounterStore(opts ...MemoryCounterOption) *MemoryCounterStore {
	s := &MemoryCounterStore{
		counts:    make(map[string]int64),
		stepDelay: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryCounterStore) Racy() bool { return s.racy }

func (s *MemoryCounterStore) Increment(_ context.Context, path string) error {
	if !s.racy {
		s.mu.Lock()
		s.counts[path]++
		s.mu.Unlock()
		return nil
	}

	// lê, espera, calcula, espera, escreve, sem lock atravessando a sequência
	s.mu.Lock()
	current := s.counts[path]
	s.mu.Unlock()

	time.Sleep(s.stepDelay)
	next := current + 1
	time.Sleep(s.stepDelay)

	s.mu.Lock()
	s.counts[path] = next
	s.mu.Unlock()
	return nil
}

// Get sempre lê sob o lock, independente do modo.
func (s *MemoryCounterStore) Get(_ context.Context, path string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[path], nil
}
