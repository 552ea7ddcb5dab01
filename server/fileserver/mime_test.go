package fileserver

import "testing"

func TestContentTypeFor(t *testing.T) {
	cases := map[string]string{
		"index.html": "text/html",
		"page.HTM":   "text/html",
		"logo.png":   "image/png",
		"doc.pdf":    "application/pdf",
		"data.bin":   "application/octet-stream",
		"semext":     "application/octet-stream",
	}
	for name, want := range cases {
		if got := contentTypeFor(name); got != want {
			t.Fatalf("contentTypeFor(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestIconFor(t *testing.T) {
	cases := map[string]string{
		"index.html": "[HTML]",
		"doc.pdf":    "[PDF]",
		"logo.png":   "[IMG]",
		"foto.jpeg":  "[IMG]",
		"data.bin":   "[FILE]",
	}
	for name, want := range cases {
		if got := iconFor(name); got != want {
			t.Fatalf("iconFor(%q) = %q, want %q", name, got, want)
		}
	}
}
