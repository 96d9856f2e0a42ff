package domain

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cytsaiap-xyz/opencode-evals/internal/adapter"
	m "github.com/cytsaiap-xyz/opencode-evals/internal/model"
)

const recursiveSuffix = "/..."

// FindScenarios expands path arguments into scenario directories.
//   - dir       the directory must hold the scenario file
//   - dir/...   every directory below dir holding the scenario file
//
// Ignored directory names are never descended into.
func FindScenarios(ctx context.Context, fsAdapter adapter.SourceFSAdapter, paths []m.Path, scenarioFile string) ([]m.Path, error) {
	if len(paths) == 0 {
		paths = []m.Path{"./..."}
	}

	var found []m.Path

	for _, p := range paths {
		raw := string(p)

		if raw == "..." || strings.HasSuffix(raw, recursiveSuffix) {
			root := strings.TrimSuffix(strings.TrimSuffix(raw, "..."), "/")
			if root == "" {
				root = "."
			}

			dirs, err := scanScenarioDirs(ctx, fsAdapter, m.Path(root), scenarioFile)
			if err != nil {
				return nil, err
			}

			found = append(found, dirs...)

			continue
		}

		if _, err := fsAdapter.FileInfo(ctx, fsAdapter.JoinPath(ctx, raw, scenarioFile)); err != nil {
			return nil, fmt.Errorf("no %s in %s: %w", scenarioFile, raw, err)
		}

		found = append(found, p)
	}

	return uniquePaths(found), nil
}

// uniquePaths drops repeats of the same directory, keeping the first spelling.
func uniquePaths(paths []m.Path) []m.Path {
	seen := make(map[string]bool, len(paths))
	unique := make([]m.Path, 0, len(paths))

	for _, p := range paths {
		key := filepath.Clean(string(p))
		if seen[key] {
			continue
		}

		seen[key] = true
		unique = append(unique, p)
	}

	return unique
}

func scanScenarioDirs(ctx context.Context, fsAdapter adapter.SourceFSAdapter, dir m.Path, scenarioFile string) ([]m.Path, error) {
	entries, err := fsAdapter.ReadDir(ctx, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("scenario root %s: %w", dir, err)
		}

		return nil, err
	}

	var found []m.Path

	for _, entry := range entries {
		if !entry.IsDir() && entry.Name() == scenarioFile {
			found = append(found, dir)
			break
		}
	}

	for _, entry := range entries {
		if !entry.IsDir() || slices.Contains(m.DefaultIgnoredDirs, entry.Name()) {
			continue
		}

		nested, err := scanScenarioDirs(ctx, fsAdapter, fsAdapter.JoinPath(ctx, string(dir), entry.Name()), scenarioFile)
		if err != nil {
			return nil, err
		}

		found = append(found, nested...)
	}

	return found, nil
}
