package application

import (
	"http-fileserver/server/fileserver/domain"
)

// AdmissionService concentra a regra de admissão de conexões,
// sem saber nada sobre sockets.
//
// Diferente de um semáforo clássico, a admissão nunca espera: conexão além
// do limite é recusada na hora, não enfileirada.
type AdmissionService struct {
	Pool domain.SlotPool
}

// TryAcquire tenta adquirir uma vaga.
// - Se não há Pool configurado, sempre permite (sem limite).
// Retorna (release, ok). Se ok=false, nenhuma vaga foi adquirida.
func (s AdmissionService) TryAcquire() (func(), bool) {
	if s.Pool == nil {
		return func() {}, true
	}
	return s.Pool.TryAcquire()
}
