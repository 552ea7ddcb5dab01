// Package fileserver implementa o motor concorrente de servir arquivos por HTTP/1.1.
//
// Visão geral (camadas):
//
//   - domain: contratos e tipos do domínio (sem dependência de net)
//   - application: casos de uso (decisão allow/deny, admissão de conexão) sem net
//   - infra: implementações concretas (janela deslizante, semáforo, contadores, resolver)
//   - fileserver (este pacote): listener TCP + handler por conexão + framing HTTP
//
// Fluxo por conexão aceita:
//
//  1. Admissão: pede uma vaga ao pool; sem vaga, a conexão é fechada sem resposta
//  2. Lê e interpreta o request line (só GET; um request por conexão)
//  3. Rate limit por IP do cliente (janela deslizante); bloqueado responde 429
//  4. Resolve o caminho no sandbox do document root e serve arquivo ou listagem
//  5. Escreve exatamente uma resposta, fecha o socket e libera a vaga
//
// Variáveis de ambiente do binário (cmd/fileserver) controlam o comportamento,
// como DOC_ROOT, MAX_ACTIVE, RATE_LIMIT, RATE_WINDOW e DEMO_RACE.
package fileserver
