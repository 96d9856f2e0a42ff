package domain

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"

	"github.com/cytsaiap-xyz/opencode-evals/internal/adapter"
	m "github.com/cytsaiap-xyz/opencode-evals/internal/model"
)

// FileCatalog discovers source files under a directory tree.
type FileCatalog interface {
	Discover(ctx context.Context, cfg m.DiscoveryConfig) ([]m.SourceFile, error)
}

type fileCatalog struct {
	fsAdapter adapter.SourceFSAdapter
}

// NewFileCatalog constructs a FileCatalog backed by the filesystem adapter.
func NewFileCatalog(fsAdapter adapter.SourceFSAdapter) FileCatalog {
	return &fileCatalog{fsAdapter: fsAdapter}
}

// Discover walks cfg.Root depth-first in lexical order. Ignored directory
// names are pruned before recursion; ignored file names are excluded
// whatever their extension. A missing root yields no files and no error.
// ShortPath values are slash-separated and relative to cfg.Root.
func (fc *fileCatalog) Discover(ctx context.Context, cfg m.DiscoveryConfig) ([]m.SourceFile, error) {
	info, err := fc.fsAdapter.FileInfo(ctx, cfg.Root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("discovery root missing", "root", cfg.Root)
			return []m.SourceFile{}, nil
		}

		return nil, fmt.Errorf("stat root %s: %w", cfg.Root, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("discovery root %s is not a directory", cfg.Root)
	}

	files := []m.SourceFile{}
	if err := fc.walk(ctx, cfg, cfg.Root, "", &files); err != nil {
		return nil, err
	}

	return files, nil
}

func (fc *fileCatalog) walk(ctx context.Context, cfg m.DiscoveryConfig, dir m.Path, rel string, files *[]m.SourceFile) error {
	entries, err := fc.fsAdapter.ReadDir(ctx, dir)
	if err != nil {
		return fmt.Errorf("read dir %s: %w", dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		fullPath := fc.fsAdapter.JoinPath(ctx, string(dir), name)
		shortPath := path.Join(rel, name)

		// Symlinks report a non-dir type here and are treated as plain
		// files; linked directories are never descended into.
		if entry.IsDir() {
			if cfg.IgnoresDir(name) {
				slog.Debug("pruned ignored directory", "path", fullPath)
				continue
			}

			if err := fc.walk(ctx, cfg, fullPath, shortPath, files); err != nil {
				return err
			}

			continue
		}

		if !cfg.Allows(name) {
			continue
		}

		if !entry.Type().IsRegular() && !fc.isRegularTarget(ctx, fullPath) {
			continue
		}

		content, err := fc.fsAdapter.ReadFile(ctx, fullPath)
		if err != nil {
			slog.Error("failed to read source file", "path", fullPath, "error", err)
			return fmt.Errorf("read %s: %w", fullPath, err)
		}

		*files = append(*files, m.SourceFile{
			ShortPath: m.Path(shortPath),
			FullPath:  fullPath,
			Content:   string(content),
		})
	}

	return nil
}

// isRegularTarget follows a symlink and reports whether it ends at a regular file.
func (fc *fileCatalog) isRegularTarget(ctx context.Context, p m.Path) bool {
	info, err := fc.fsAdapter.FileInfo(ctx, p)
	if err != nil {
		return false
	}

	return info.Mode().IsRegular()
}
