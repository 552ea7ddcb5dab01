package fileserver

import (
	"bytes"
	"io"
	"net/url"
	"strings"
	"time"
)

// Framing HTTP/1.1 mínimo: um request line + headers na entrada, uma resposta
// com Content-Length na saída e a conexão é fechada (sem keep-alive, sem
// chunked, sem TLS).

// readBufferSize limita a leitura da requisição a um único recv.
const readBufferSize = 1024

var reasonPhrases = map[int]string{
	200: "OK",
	400: "Bad Request",
	403: "Forbidden",
	404: "Not Found",
	405: "Method Not Allowed",
	429: "Too Many Requests",
	500: "Internal Server Error",
}

func reasonFor(status int) string {
	if r, ok := reasonPhrases[status]; ok {
		return r
	}
	return "Unknown Error"
}

type request struct {
	method  string
	rawPath string
	version string
	// path é rawPath com percent-escapes decodificados
	path string
}

// parseRequest interpreta os bytes lidos do socket.
// Retorna o status de erro (400/405) quando a requisição é inválida; 0 quando ok.
// Headers além do request line são aceitos e ignorados.
func parseRequest(raw []byte) (request, int) {
	lines := strings.Split(string(raw), "\n")
	first := strings.TrimSpace(lines[0])

	parts := strings.Fields(first)
	if len(parts) < 3 {
		return request{}, 400
	}

	req := request{method: parts[0], rawPath: parts[1], version: parts[2]}
	if req.method != "GET" {
		return req, 405
	}

	decoded, err := url.PathUnescape(req.rawPath)
	if err != nil {
		return req, 400
	}
	req.path = decoded
	return req, 0
}

// writeResponse monta a resposta inteira em memória e escreve de uma vez.
func writeResponse(w io.Writer, status int, contentType string, body []byte) error {
	return writeResponseHeaders(w, status, contentType, nil, body)
}

// writeResponseHeaders aceita headers extras além dos fixos (ex: Retry-After no 429).
func writeResponseHeaders(w io.Writer, status int, contentType string, extra []string, body []byte) error {
	var b bytes.Buffer
	b.WriteString("HTTP/1.1 " + formatInt(status) + " " + reasonFor(status) + "\r\n")
	b.WriteString("Content-Type: " + contentType + "\r\n")
	for _, h := range extra {
		b.WriteString(h + "\r\n")
	}
	b.WriteString("Content-Length: " + formatInt(len(body)) + "\r\n")
	b.WriteString("\r\n")
	b.Write(body)

	_, err := w.Write(b.Bytes())
	return err
}

// writeRateLimited envia o envelope 429 com o Retry-After recomendado pela decisão.
func writeRateLimited(w io.Writer, retryAfter time.Duration) error {
	retry := "Retry-After: " + formatInt(int(retryAfter.Seconds()))
	return writeResponseHeaders(w, 429, "text/html", []string{retry}, []byte(errorBody(429)))
}

// writeError envia o envelope fixo de erro. Falha de escrita é do chamador
// decidir ignorar (o peer pode já ter fechado).
func writeError(w io.Writer, status int) error {
	return writeResponse(w, status, "text/html", []byte(errorBody(status)))
}

func errorBody(status int) string {
	reason := reasonFor(status)
	code := formatInt(status)
	return `<!DOCTYPE html>
<html>
<head>
    <title>` + code + ` ` + reason + `</title>
</head>
<body>
    <h1>` + code + ` ` + reason + `</h1>
    <p>` + reason + `</p>
</body>
</html>`
}
