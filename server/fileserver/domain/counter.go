package domain

import "context"

// CounterStore mantém contadores de acesso por caminho de URL.
//
// Increment é chamado pelo handler após servir um arquivo com sucesso
// (diretórios nunca são contados). Get é usado na listagem de diretórios
// para exibir o valor corrente.
//
// Implementações podem armazenar em memória ou Redis. O modo "racy" de
// demonstração existe apenas na implementação em memória.
type CounterStore interface {
	Increment(ctx context.Context, path string) error
	Get(ctx context.Context, path string) (int64, error)
}
