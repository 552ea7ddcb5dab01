// Package infra contém implementações concretas (infraestrutura) para os contratos
// definidos no pacote domain.
//
// Exemplos:
//   - WindowStore: janela deslizante de timestamps por IP para o rate limit
//   - ChanPool: semáforo simples (não bloqueante) para admissão de conexões
//   - MemoryCounterStore: contadores de acesso por caminho, com modo racy de demonstração
//   - DocRootResolver: resolução de caminhos com sandbox no document root
package infra
