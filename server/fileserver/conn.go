package fileserver

import (
	"context"
	"net"
	"os"
	"strings"
	"time"

	"http-fileserver/server/fileserver/domain"
)

// HandleConn atende uma conexão do início ao fim: lê a requisição, aplica o
// rate limit, resolve o caminho e escreve no máximo uma resposta antes de
// fechar o socket.
//
// Pode ser chamado inline (servidor sequencial de referência) ou de uma
// goroutine por conexão (Serve). O close do socket é garantido em todo
// caminho de saída, inclusive panic.
func (s *Server) HandleConn(conn net.Conn) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Printf("panic handling %s: %v", conn.RemoteAddr(), r)
			_ = writeError(conn, 500)
		}
		_ = conn.Close()
	}()

	key := clientKey(conn.RemoteAddr())

	// o contrato de io.Reader permite n>0 junto com err: o que chegou é
	// processado normalmente e o erro vale como peer-close depois
	buf := make([]byte, readBufferSize)
	n, _ := conn.Read(buf)
	if n == 0 {
		// peer fechou sem mandar nada; termina em silêncio
		return
	}

	req, status := parseRequest(buf[:n])
	if status != 0 {
		s.record(key, true, status, req.rawPath)
		_ = writeError(conn, status)
		return
	}

	if s.opts.PreCheckDelay > 0 {
		time.Sleep(s.opts.PreCheckDelay)
	}

	dec := s.rate.Decide(key, time.Now())
	if !dec.Allowed {
		s.record(key, false, 429, req.path)
		_ = writeRateLimited(conn, dec.RetryAfter)
		return
	}

	if s.opts.WorkDelay > 0 {
		s.logger.Printf("simulating %s of work for %s", s.opts.WorkDelay, req.path)
		time.Sleep(s.opts.WorkDelay)
	}

	target := s.opts.Resolver.Resolve(req.path)
	switch target.Kind {
	case domain.TargetForbidden:
		s.record(key, true, 403, req.path)
		_ = writeError(conn, 403)
	case domain.TargetNotFound:
		s.record(key, true, 404, req.path)
		_ = writeError(conn, 404)
	case domain.TargetDirectory:
		s.serveDirectory(conn, key, target.Path, req.path)
	case domain.TargetFile:
		s.serveFile(conn, key, target.Path, req.path)
	}
}

func (s *Server) serveDirectory(conn net.Conn, key domain.Key, dirPath, urlPath string) {
	html, err := renderListing(context.Background(), dirPath, urlPath, s.opts.Counters)
	if err != nil {
		s.logger.Printf("error listing %s: %v", dirPath, err)
		s.record(key, true, 500, urlPath)
		_ = writeError(conn, 500)
		return
	}

	s.record(key, true, 200, urlPath)
	_ = writeResponse(conn, 200, "text/html", []byte(html))
}

func (s *Server) serveFile(conn net.Conn, key domain.Key, filePath, urlPath string) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		s.logger.Printf("error reading %s: %v", filePath, err)
		s.record(key, true, 500, urlPath)
		_ = writeError(conn, 500)
		return
	}

	s.record(key, true, 200, urlPath)
	_ = writeResponse(conn, 200, contentTypeFor(filePath), data)

	// só arquivos servidos contam; diretórios e erros nunca incrementam
	if s.opts.Counters == nil {
		return
	}
	ctx := context.Background()
	if err := s.opts.Counters.Increment(ctx, urlPath); err != nil {
		s.logger.Printf("error incrementing counter for %s: %v", urlPath, err)
		return
	}
	if count, err := s.opts.Counters.Get(ctx, urlPath); err == nil {
		s.logger.Printf("counter for %s = %d", urlPath, count)
	}
}

func (s *Server) record(key domain.Key, allowed bool, status int, path string) {
	if s.opts.Stats == nil {
		return
	}
	_ = s.opts.Stats.Record(context.Background(), domain.StatsEvent{
		Key:     key,
		Allowed: allowed,
		Status:  status,
		Path:    path,
		At:      time.Now(),
	})
}

// clientKey extrai o IP do cliente do endereço remoto.
func clientKey(addr net.Addr) domain.Key {
	host, _, err := net.SplitHostPort(strings.TrimSpace(addr.String()))
	if err == nil && host != "" {
		return domain.Key(host)
	}
	if addr.String() != "" {
		return domain.Key(addr.String())
	}
	return domain.Key("unknown")
}
