package infra

import (
	"os"
	"path/filepath"
	"testing"

	"http-fileserver/server/fileserver/domain"
)

func newTestResolver(t *testing.T) (*DocRootResolver, string) {
	t.Helper()
	root := t.TempDir()

	if err := os.MkdirAll(filepath.Join(root, "sub"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "sub", "file.txt"), []byte("conteudo"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	r, err := NewDocRootResolver(root)
	if err != nil {
		t.Fatalf("NewDocRootResolver: %v", err)
	}
	return r, root
}

func TestDocRootResolver_RootIsDirectory(t *testing.T) {
	r, root := newTestResolver(t)

	got := r.Resolve("/")
	if got.Kind != domain.TargetDirectory {
		t.Fatalf("expected directory for /, got kind=%d", got.Kind)
	}
	if got.Path != root {
		t.Fatalf("expected path %q, got %q", root, got.Path)
	}
}

func TestDocRootResolver_NestedFile(t *testing.T) {
	r, root := newTestResolver(t)

	got := r.Resolve("/sub/file.txt")
	if got.Kind != domain.TargetFile {
		t.Fatalf("expected file, got kind=%d", got.Kind)
	}
	if got.Path != filepath.Join(root, "sub", "file.txt") {
		t.Fatalf("unexpected path %q", got.Path)
	}
}

func TestDocRootResolver_TraversalIsForbidden(t *testing.T) {
	r, _ := newTestResolver(t)

	got := r.Resolve("/../../etc/passwd")
	if got.Kind != domain.TargetForbidden {
		t.Fatalf("expected forbidden for traversal, got kind=%d", got.Kind)
	}
}

func TestDocRootResolver_MissingPathIsNotFound(t *testing.T) {
	r, _ := newTestResolver(t)

	got := r.Resolve("/missing.pdf")
	if got.Kind != domain.TargetNotFound {
		t.Fatalf("expected not found, got kind=%d", got.Kind)
	}
}

func TestDocRootResolver_EmptyPathIsRoot(t *testing.T) {
	r, _ := newTestResolver(t)

	got := r.Resolve("")
	if got.Kind != domain.TargetDirectory {
		t.Fatalf("expected directory for empty path, got kind=%d", got.Kind)
	}
}
