package domain

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cytsaiap-xyz/opencode-evals/internal/adapter"
	m "github.com/cytsaiap-xyz/opencode-evals/internal/model"
)

var importFromPattern = regexp.MustCompile(`from\s+['"]([^'"]+)['"]`)

// DefaultLocalPrefixes mark a specifier as an own-project import.
var DefaultLocalPrefixes = []string{"./", "../"}

// DefaultResolveSuffixes is the candidate order tried after the exact path.
var DefaultResolveSuffixes = []string{
	".tsx", ".ts", ".jsx", ".js",
	"/index.tsx", "/index.ts", "/index.jsx", "/index.js",
}

// ResolverConfig tunes import following.
type ResolverConfig struct {
	LocalPrefixes []string
	Suffixes      []string
	// Depth is how many import hops are followed from the entry. Zero
	// selects one hop; EntryOnly follows none.
	Depth int
}

// EntryOnly is the Depth that keeps just the entry file.
const EntryOnly = -1

// DefaultResolverConfig follows ./ and ../ imports exactly one level deep.
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		LocalPrefixes: DefaultLocalPrefixes,
		Suffixes:      DefaultResolveSuffixes,
		Depth:         1,
	}
}

// ImportResolver gathers an entry file and the local files it imports.
type ImportResolver interface {
	ResolveFromEntry(ctx context.Context, root, entry m.Path) ([]m.SourceFile, error)
}

type importResolver struct {
	fsAdapter adapter.SourceFSAdapter
	cfg       ResolverConfig
}

// NewImportResolver constructs an ImportResolver. Zero-valued config
// fields fall back to the defaults.
func NewImportResolver(fsAdapter adapter.SourceFSAdapter, cfg ResolverConfig) ImportResolver {
	def := DefaultResolverConfig()

	if cfg.LocalPrefixes == nil {
		cfg.LocalPrefixes = def.LocalPrefixes
	}

	if cfg.Suffixes == nil {
		cfg.Suffixes = def.Suffixes
	}

	if cfg.Depth == 0 {
		cfg.Depth = def.Depth
	}

	return &importResolver{fsAdapter: fsAdapter, cfg: cfg}
}

// ResolveFromEntry returns the entry file followed by every resolved local
// import, in specifier order. A missing entry yields no files. Specifiers
// that resolve to nothing are skipped. Each file appears at most once.
func (r *importResolver) ResolveFromEntry(ctx context.Context, root, entry m.Path) ([]m.SourceFile, error) {
	entryPath := entry
	if !filepath.IsAbs(string(entryPath)) {
		entryPath = r.fsAdapter.JoinPath(ctx, string(root), string(entry))
	}

	first, ok, err := r.load(ctx, root, entryPath)
	if err != nil {
		return nil, err
	}

	if !ok {
		slog.Debug("entry file missing", "entry", entryPath)
		return []m.SourceFile{}, nil
	}

	files := []m.SourceFile{first}
	seen := map[m.Path]bool{cleanPath(entryPath): true}
	frontier := []m.SourceFile{first}

	for depth := 0; depth < r.cfg.Depth && len(frontier) > 0; depth++ {
		var next []m.SourceFile

		for _, importer := range frontier {
			for _, spec := range r.localSpecifiers(importer.Content) {
				target, found := r.resolve(ctx, importer.FullPath, spec)
				if !found {
					slog.Debug("unresolved import skipped", "importer", importer.ShortPath, "specifier", spec)
					continue
				}

				if seen[cleanPath(target)] {
					continue
				}

				seen[cleanPath(target)] = true

				file, ok, err := r.load(ctx, root, target)
				if err != nil {
					return nil, err
				}

				if !ok {
					continue
				}

				files = append(files, file)
				next = append(next, file)
			}
		}

		frontier = next
	}

	return files, nil
}

// localSpecifiers extracts own-project specifiers from `from '...'` clauses.
func (r *importResolver) localSpecifiers(content string) []string {
	var specs []string

	for _, match := range importFromPattern.FindAllStringSubmatch(content, -1) {
		spec := match[1]
		if r.isLocal(spec) {
			specs = append(specs, spec)
		}
	}

	return specs
}

func (r *importResolver) isLocal(spec string) bool {
	for _, prefix := range r.cfg.LocalPrefixes {
		if strings.HasPrefix(spec, prefix) {
			return true
		}
	}

	return false
}

// resolve tries the exact path, then each suffix in order, and returns the
// first candidate that is a regular file.
func (r *importResolver) resolve(ctx context.Context, importer m.Path, spec string) (m.Path, bool) {
	base := r.fsAdapter.JoinPath(ctx, filepath.Dir(string(importer)), filepath.FromSlash(spec))

	candidates := make([]m.Path, 0, len(r.cfg.Suffixes)+1)
	candidates = append(candidates, base)

	for _, suffix := range r.cfg.Suffixes {
		candidates = append(candidates, m.Path(string(base)+filepath.FromSlash(suffix)))
	}

	for _, candidate := range candidates {
		info, err := r.fsAdapter.FileInfo(ctx, candidate)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		return candidate, true
	}

	return "", false
}

// load reads one file. ok is false when the file does not exist.
func (r *importResolver) load(ctx context.Context, root, full m.Path) (m.SourceFile, bool, error) {
	content, err := r.fsAdapter.ReadFile(ctx, full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return m.SourceFile{}, false, nil
		}

		return m.SourceFile{}, false, fmt.Errorf("read %s: %w", full, err)
	}

	short := full
	if rel, err := r.fsAdapter.RelPath(ctx, root, full); err == nil {
		short = rel
	}

	return m.SourceFile{
		ShortPath: m.Path(path.Clean(filepath.ToSlash(string(short)))),
		FullPath:  full,
		Content:   string(content),
	}, true, nil
}

func cleanPath(p m.Path) m.Path {
	return m.Path(filepath.Clean(string(p)))
}
