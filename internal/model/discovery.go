package model

import (
	"path/filepath"
	"slices"
)

// DefaultExtensions are the source extensions scanned when none are configured.
var DefaultExtensions = []string{".ts", ".tsx", ".js", ".jsx"}

// DefaultIgnoredDirs are directory names never descended into.
var DefaultIgnoredDirs = []string{".git", ".next", "node_modules", "dist", "build", "coverage"}

// DefaultIgnoredFiles are harness files that often contain the rule text itself.
var DefaultIgnoredFiles = []string{"EVAL.ts", "PROMPT.md"}

// DiscoveryConfig controls which files a bulk walk returns.
type DiscoveryConfig struct {
	Root              Path
	AllowedExtensions []string
	IgnoredDirNames   []string
	IgnoredFileNames  []string
}

// DefaultDiscoveryConfig returns the harness defaults rooted at root.
func DefaultDiscoveryConfig(root Path) DiscoveryConfig {
	return DiscoveryConfig{
		Root:              root,
		AllowedExtensions: slices.Clone(DefaultExtensions),
		IgnoredDirNames:   slices.Clone(DefaultIgnoredDirs),
		IgnoredFileNames:  slices.Clone(DefaultIgnoredFiles),
	}
}

// IgnoresDir reports whether a directory with this base name must be pruned.
func (c DiscoveryConfig) IgnoresDir(name string) bool {
	return slices.Contains(c.IgnoredDirNames, name)
}

// Allows reports whether a file with this base name belongs in the catalog.
// Ignored file names win over a matching extension.
func (c DiscoveryConfig) Allows(name string) bool {
	if slices.Contains(c.IgnoredFileNames, name) {
		return false
	}

	return slices.Contains(c.AllowedExtensions, filepath.Ext(name))
}

// WithRoot returns a copy of the config rooted elsewhere.
func (c DiscoveryConfig) WithRoot(root Path) DiscoveryConfig {
	c.Root = root
	return c
}
