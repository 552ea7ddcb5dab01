package domain

import (
	"context"
	"time"
)

// StatsEvent representa o desfecho de uma conexão atendida pelo servidor.
//
// Ele é propositalmente "agnóstico de socket": Path/Status são valores
// genéricos e podem alimentar qualquer base de estatísticas.
//
// Observação: cuidado com cardinalidade (ex.: salvar Key/Path sem controle pode
// explodir o número de séries/chaves em uma base como Redis).
type StatsEvent struct {
	Key     Key
	Allowed bool

	Status int
	Path   string

	At time.Time
}

// StatsStore é a estratégia de persistência para estatísticas do servidor.
//
// Implementações podem armazenar em Redis, memória, etc.
// O handler deve tratar erro como best-effort (não derrubar a conexão).
type StatsStore interface {
	Record(ctx context.Context, ev StatsEvent) error
}
