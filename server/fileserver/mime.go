package fileserver

import (
	"path/filepath"
	"strings"
)

// Classificação de conteúdo por extensão: content type da resposta e ícone
// exibido na listagem de diretórios.

const dirIcon = "[DIR]"

func contentTypeFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
		return "text/html"
	case ".png":
		return "image/png"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

func iconFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
		return "[HTML]"
	case ".pdf":
		return "[PDF]"
	case ".png", ".jpg", ".jpeg":
		return "[IMG]"
	default:
		return "[FILE]"
	}
}
