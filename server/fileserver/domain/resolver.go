package domain

// TargetKind discrimina o resultado da resolução de um caminho de URL
// contra o document root.
type TargetKind int

const (
	TargetFile TargetKind = iota
	TargetDirectory
	TargetForbidden
	TargetNotFound
)

// Target é o resultado da resolução. Path é o caminho absoluto no
// filesystem e só é preenchido para TargetFile e TargetDirectory.
type Target struct {
	Kind TargetKind
	Path string
}

// Resolver mapeia um caminho de URL (já com percent-escapes decodificados)
// para um alvo dentro do sandbox do document root.
type Resolver interface {
	Resolve(urlPath string) Target
}
