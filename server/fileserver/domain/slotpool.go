package domain

// SlotPool representa um recurso com capacidade finita (ex: conexões concorrentes).
//
// A semântica é: TryAcquire nunca bloqueia nem enfileira. Se há vaga, retorna
// uma função de release que deve ser chamada exatamente uma vez; se não há,
// retorna ok=false sem efeito colateral.
type SlotPool interface {
	TryAcquire() (release func(), ok bool)
}
