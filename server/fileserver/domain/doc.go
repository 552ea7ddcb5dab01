// Package domain define contratos e tipos de domínio do servidor de arquivos:
// rate limit, admissão de conexões, contadores de acesso e resolução de caminhos.
//
// Este pacote não depende de net nem de implementações concretas.
// A intenção é permitir testes de unidade puros e desacoplar regras de negócio
// de detalhes de infraestrutura.
package domain
