package domain

import (
	"os"
	"path/filepath"
	"testing"

	m "github.com/cytsaiap-xyz/opencode-evals/internal/model"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// writeTree creates every relative path of files below root.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		writeFile(t, filepath.Join(root, filepath.FromSlash(rel)), content)
	}
}

func shortPaths(files []m.SourceFile) []m.Path {
	paths := make([]m.Path, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.ShortPath)
	}

	return paths
}

func corpusOf(files map[string]string, order ...string) Corpus {
	sources := make([]m.SourceFile, 0, len(order))
	for _, name := range order {
		sources = append(sources, m.SourceFile{ShortPath: m.Path(name), FullPath: m.Path(name), Content: files[name]})
	}

	return NewCorpus("test", sources, nil)
}
