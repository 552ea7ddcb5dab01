package fileserver

import (
	"bytes"
	"io"
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"http-fileserver/server/fileserver/infra"
)

// eofConn devolve a requisição inteira e io.EOF na mesma chamada de Read,
// como o contrato de io.Reader permite.
type eofConn struct {
	data   []byte
	read   bool
	out    bytes.Buffer
	closed bool
}

func (c *eofConn) Read(p []byte) (int, error) {
	if c.read {
		return 0, io.EOF
	}
	c.read = true
	return copy(p, c.data), io.EOF
}

func (c *eofConn) Write(p []byte) (int, error) { return c.out.Write(p) }
func (c *eofConn) Close() error                { c.closed = true; return nil }

func (c *eofConn) LocalAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 80}
}

func (c *eofConn) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 9999}
}

func (c *eofConn) SetDeadline(time.Time) error      { return nil }
func (c *eofConn) SetReadDeadline(time.Time) error  { return nil }
func (c *eofConn) SetWriteDeadline(time.Time) error { return nil }

func TestHandleConn_ServesBytesDeliveredWithEOF(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a.html"), []byte("<h1>oi</h1>"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	resolver, err := infra.NewDocRootResolver(root)
	if err != nil {
		t.Fatalf("NewDocRootResolver: %v", err)
	}

	srv := New(Options{
		Resolver: resolver,
		Counters: infra.NewMemoryCounterStore(),
		Logger:   log.New(io.Discard, "", 0),
	})

	conn := &eofConn{data: []byte("GET /a.html HTTP/1.1\r\nHost: test\r\nConnection: close\r\n\r\n")}
	srv.HandleConn(conn)

	got := conn.out.String()
	if !strings.HasPrefix(got, "HTTP/1.1 200 OK\r\n") {
		t.Fatalf("expected the delivered bytes to be served, got %q", got)
	}
	if !strings.HasSuffix(got, "<h1>oi</h1>") {
		t.Fatalf("expected file body in response, got %q", got)
	}
	if !conn.closed {
		t.Fatalf("expected connection to be closed")
	}
}

func TestHandleConn_EmptyReadTerminatesSilently(t *testing.T) {
	root := t.TempDir()
	resolver, err := infra.NewDocRootResolver(root)
	if err != nil {
		t.Fatalf("NewDocRootResolver: %v", err)
	}
	srv := New(Options{Resolver: resolver, Logger: log.New(io.Discard, "", 0)})

	conn := &eofConn{}
	srv.HandleConn(conn)

	if conn.out.Len() != 0 {
		t.Fatalf("expected no response bytes on empty read, got %q", conn.out.String())
	}
	if !conn.closed {
		t.Fatalf("expected connection to be closed")
	}
}
