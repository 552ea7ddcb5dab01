package infra

import (
	"os"
	"path/filepath"
	"strings"

	"http-fileserver/server/fileserver/domain"
)

// DocRootResolver resolve caminhos de URL contra um document root absoluto.
//
// O sandbox é um prefixo textual: o caminho candidato (depois do Join) precisa
// começar com o document root, senão é Forbidden. A checagem não resolve
// symlinks nem canonicaliza além do Join (fraqueza conhecida e proposital).
type DocRootResolver struct {
	root string
}

func NewDocRootResolver(root string) (*DocRootResolver, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	return &DocRootResolver{root: abs}, nil
}

func (r *DocRootResolver) Root() string { return r.root }

// Resolve implementa domain.Resolver. `urlPath` já vem decodificado.
func (r *DocRootResolver) Resolve(urlPath string) domain.Target {
	var candidate string
	if urlPath == "/" || urlPath == "" {
		candidate = r.root
	} else {
		candidate = filepath.Join(r.root, strings.TrimPrefix(urlPath, "/"))
	}

	if !strings.HasPrefix(candidate, r.root) {
		return domain.Target{Kind: domain.TargetForbidden}
	}

	info, err := os.Stat(candidate)
	if err != nil {
		return domain.Target{Kind: domain.TargetNotFound}
	}

	if info.IsDir() {
		return domain.Target{Kind: domain.TargetDirectory, Path: candidate}
	}
	return domain.Target{Kind: domain.TargetFile, Path: candidate}
}
