package main

// Servidor de referência sequencial: atende uma conexão por vez, no mesmo
// handler do motor concorrente, sem pool nem rate limit. Serve para comparar
// o antes/depois nos testes de carga (com o delay de trabalho ligado, N
// requisições levam ~N segundos aqui).

import (
	"fmt"
	"log"
	"net"
	"os"
	"time"

	"http-fileserver/server/fileserver"
	"http-fileserver/server/fileserver/infra"
)

func main() {
	addr := ":8081"
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		addr = v
	}
	docRoot := "public"
	if v := os.Getenv("DOC_ROOT"); v != "" {
		docRoot = v
	}

	resolver, err := infra.NewDocRootResolver(docRoot)
	if err != nil {
		log.Fatalf("resolver error: %v", err)
	}

	srv := fileserver.New(fileserver.Options{
		Resolver:  resolver,
		Counters:  infra.NewMemoryCounterStore(),
		WorkDelay: 1 * time.Second,
	})

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatalf("listen error: %v", err)
	}
	defer ln.Close()

	fmt.Printf("Servidor sequencial rodando em %s (dir %s)\n", addr, docRoot)
	for {
		conn, err := ln.Accept()
		if err != nil {
			log.Println(err)
			continue
		}
		srv.HandleConn(conn)
	}
}
