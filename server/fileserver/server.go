package fileserver

import (
	"context"
	"errors"
	"log"
	"net"
	"time"

	"http-fileserver/server/fileserver/application"
	"http-fileserver/server/fileserver/domain"
)

type Options struct {
	Addr string

	Resolver domain.Resolver
	Counters domain.CounterStore

	// Limiter nil desliga o rate limit; Pool nil desliga o limite de conexões.
	Limiter domain.Limiter
	Pool    domain.SlotPool

	// Stats é best-effort: erro de Record nunca afeta a conexão.
	Stats domain.StatsStore

	RetryAfter time.Duration

	// PreCheckDelay atrasa artificialmente a checagem de rate limit;
	// WorkDelay simula trabalho lento depois dela. Ambos servem só para
	// tornar diferenças de concorrência observáveis.
	PreCheckDelay time.Duration
	WorkDelay     time.Duration

	Logger *log.Logger
}

// Server é o motor do servidor de arquivos: aceita conexões TCP, admite cada
// uma sob o orçamento do pool e despacha uma goroutine por conexão admitida.
type Server struct {
	opts   Options
	rate   application.RateService
	admit  application.AdmissionService
	logger *log.Logger
}

func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		opts:   opts,
		rate:   application.RateService{Limiter: opts.Limiter, RetryAfter: opts.RetryAfter},
		admit:  application.AdmissionService{Pool: opts.Pool},
		logger: logger,
	}
}

// ListenAndServe abre o listener TCP e atende até o contexto encerrar.
// (net.Listen já aplica SO_REUSEADDR em sistemas unix.)
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve atende conexões do listener até o contexto encerrar.
//
// Conexão além do orçamento do pool é recusada na hora com um close seco,
// sem ler nem escrever nenhum byte. Falha em um handler nunca derruba o
// loop de accept.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.logger.Printf("accept error: %v", err)
			continue
		}

		release, ok := s.admit.TryAcquire()
		if !ok {
			s.logger.Printf("connection budget full, rejecting %s", conn.RemoteAddr())
			_ = conn.Close()
			continue
		}

		go func(c net.Conn) {
			defer release()
			s.HandleConn(c)
		}(conn)
	}
}
