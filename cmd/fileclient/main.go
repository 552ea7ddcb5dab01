package main

// Cliente one-shot: abre uma conexão TCP, manda um único GET com
// Connection: close, lê até EOF e separa header/body no primeiro CRLFCRLF
// (com fallback para LFLF). Corpo text/html vai para o stdout; corpo binário
// é salvo no diretório de downloads.

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

func main() {
	if len(os.Args) != 4 {
		fmt.Println("Usage: fileclient <server_host> <server_port> <filename>")
		fmt.Println("Example: fileclient localhost 8080 index.html")
		fmt.Println("For directory listing, use empty string: fileclient localhost 8080 \"\"")
		os.Exit(1)
	}

	host := os.Args[1]
	port := os.Args[2]
	filename := os.Args[3]
	saveDir := getenvDefault("DOWNLOAD_DIR", "downloads")

	if err := download(host, port, filename, saveDir); err != nil {
		log.Fatalf("download error: %v", err)
	}
}

func download(host, port, filename, saveDir string) error {
	conn, err := net.Dial("tcp", net.JoinHostPort(host, port))
	if err != nil {
		return err
	}
	defer conn.Close()

	reqPath := "/" + strings.TrimPrefix(filename, "/")
	request := "GET " + reqPath + " HTTP/1.1\r\n" +
		"Host: " + host + ":" + port + "\r\n" +
		"Connection: close\r\n" +
		"\r\n"
	if _, err := conn.Write([]byte(request)); err != nil {
		return err
	}

	raw, err := io.ReadAll(conn)
	if err != nil {
		return err
	}
	fmt.Printf("Received %s from server\n", humanize.IBytes(uint64(len(raw))))

	head, body, err := splitResponse(raw)
	if err != nil {
		return err
	}

	status, headers, err := parseHead(head)
	if err != nil {
		return err
	}
	if status != 200 {
		return fmt.Errorf("server returned status %d", status)
	}

	if strings.Contains(headers["content-type"], "text/html") {
		fmt.Println(string(body))
		return nil
	}

	if err := os.MkdirAll(saveDir, 0o755); err != nil {
		return err
	}
	savePath := filepath.Join(saveDir, filepath.Base(reqPath))
	if err := os.WriteFile(savePath, body, 0o644); err != nil {
		return err
	}
	fmt.Printf("File saved: %s\n", savePath)
	fmt.Printf("File size: %s\n", humanize.IBytes(uint64(len(body))))
	return nil
}

// splitResponse separa header e body no primeiro CRLFCRLF, com fallback LFLF.
func splitResponse(raw []byte) (string, []byte, error) {
	if i := bytes.Index(raw, []byte("\r\n\r\n")); i >= 0 {
		return string(raw[:i]), raw[i+4:], nil
	}
	if i := bytes.Index(raw, []byte("\n\n")); i >= 0 {
		return string(raw[:i]), raw[i+2:], nil
	}
	return "", nil, errors.New("invalid HTTP response format")
}

func parseHead(head string) (int, map[string]string, error) {
	lines := strings.Split(head, "\n")
	parts := strings.Fields(strings.TrimSpace(lines[0]))
	if len(parts) < 2 {
		return 0, nil, errors.New("malformed status line")
	}
	status, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, nil, fmt.Errorf("malformed status code: %w", err)
	}

	headers := make(map[string]string)
	for _, line := range lines[1:] {
		k, v, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		headers[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}
	return status, headers, nil
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
