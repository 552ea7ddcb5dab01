package fileserver

import (
	"context"
	"os"
	"strings"

	"http-fileserver/server/fileserver/domain"

	"github.com/dustin/go-humanize"
)

const listingHeader = `<!DOCTYPE html>
<html>
<head>
    <title>Directory listing for /%TITLE%</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; }
        h1 { color: #333; }
        ul { list-style-type: none; padding: 0; }
        li { margin: 10px 0; }
        a { text-decoration: none; color: #0066cc; }
        a:hover { text-decoration: underline; }
        .file-icon { margin-right: 10px; }
    </style>
</head>
<body>
    <h1>Directory listing for /%TITLE%</h1>
    <ul>
`

const listingFooter = `    </ul>
</body>
</html>
`

// renderListing monta o HTML da listagem de um diretório em um único buffer.
//
// Filhos imediatos em ordem lexicográfica; link para o diretório pai exceto na
// raiz; arquivos são anotados com ícone, tamanho e o valor corrente do contador
// de acessos (diretórios nunca são contados).
func renderListing(ctx context.Context, dirPath, urlPath string, counters domain.CounterStore) (string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return "", err
	}

	trimmed := strings.Trim(urlPath, "/")

	var b strings.Builder
	b.WriteString(strings.ReplaceAll(listingHeader, "%TITLE%", trimmed))

	if trimmed != "" {
		parent := ""
		if i := strings.LastIndex(trimmed, "/"); i >= 0 {
			parent = trimmed[:i]
		}
		b.WriteString(`        <li><a href="/` + parent + `">..</a> (parent directory)</li>` + "\n")
	}

	for _, e := range entries {
		link := "/" + e.Name()
		if trimmed != "" {
			link = "/" + trimmed + "/" + e.Name()
		}

		if e.IsDir() {
			b.WriteString(`        <li>` + dirIcon + ` <a href="` + link + `">` + e.Name() + `</a> (directory)</li>` + "\n")
			continue
		}

		var count int64
		if counters != nil {
			count, _ = counters.Get(ctx, link)
		}

		size := "?"
		if info, err := e.Info(); err == nil {
			size = humanize.IBytes(uint64(info.Size()))
		}

		b.WriteString(`        <li>` + iconFor(e.Name()) + ` <a href="` + link + `">` + e.Name() +
			`</a> (file, ` + size + `) - <strong>` + formatInt64(count) + ` requests</strong></li>` + "\n")
	}

	b.WriteString(listingFooter)
	return b.String(), nil
}
