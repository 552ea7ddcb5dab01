// Package application contém os casos de uso (regras de aplicação) para rate limit
// e admissão de conexões do servidor de arquivos.
//
// Ele depende apenas do pacote domain e não conhece sockets.
// Ex.: RateService.Decide(key, now) retorna uma Decision (allow/deny + retry-after).
package application
