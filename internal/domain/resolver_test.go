package domain

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cytsaiap-xyz/opencode-evals/internal/adapter"
	m "github.com/cytsaiap-xyz/opencode-evals/internal/model"
)

func TestImportResolver_ResolveFromEntry(t *testing.T) {
	ctx := context.Background()
	fsAdapter := adapter.NewLocalSourceFSAdapter()

	tests := []struct {
		name  string
		files map[string]string
		entry m.Path
		depth int
		want  []m.Path
	}{
		{
			name:  "entry without imports yields itself",
			files: map[string]string{"app/page.tsx": "export default function Page() {}"},
			entry: "app/page.tsx",
			want:  []m.Path{"app/page.tsx"},
		},
		{
			name:  "missing entry yields nothing",
			files: map[string]string{"app/other.tsx": ""},
			entry: "app/page.tsx",
			want:  []m.Path{},
		},
		{
			name: "follows local imports in specifier order",
			files: map[string]string{
				"app/page.tsx":  "import { B } from './b'\nimport { A } from \"./a\"\n",
				"app/a.ts":      "export const A = 1",
				"app/b.tsx":     "export const B = 2",
				"app/unused.ts": "",
			},
			entry: "app/page.tsx",
			want:  []m.Path{"app/page.tsx", "app/b.tsx", "app/a.ts"},
		},
		{
			name: "package specifiers are never followed",
			files: map[string]string{
				"app/page.tsx":             "import React from 'react'\nimport { x } from 'next/cache'\n",
				"app/react.ts":             "",
				"node_modules/react/index": "",
			},
			entry: "app/page.tsx",
			want:  []m.Path{"app/page.tsx"},
		},
		{
			name: "unresolvable specifier is skipped",
			files: map[string]string{
				"app/page.tsx": "import a from './missing'\nimport b from './b'\n",
				"app/b.ts":     "",
			},
			entry: "app/page.tsx",
			want:  []m.Path{"app/page.tsx", "app/b.ts"},
		},
		{
			name: "parent-relative and index imports",
			files: map[string]string{
				"app/page.tsx":             "import { db } from '../lib/db'\nimport Nav from './components'\nexport * from './types'\n",
				"lib/db.ts":                "export const db = {}",
				"app/components/index.tsx": "export default function Nav() {}",
				"app/types.d.ts":           "",
			},
			entry: "app/page.tsx",
			want:  []m.Path{"app/page.tsx", "lib/db.ts", "app/components/index.tsx"},
		},
		{
			name: "tsx wins over ts for the same stem",
			files: map[string]string{
				"app/page.tsx":   "import W from './Widget'",
				"app/Widget.ts":  "ts",
				"app/Widget.tsx": "tsx",
			},
			entry: "app/page.tsx",
			want:  []m.Path{"app/page.tsx", "app/Widget.tsx"},
		},
		{
			name: "exact path with extension wins",
			files: map[string]string{
				"app/page.tsx":     "import './styles.js'\nimport s from './styles.js'",
				"app/styles.js":    "",
				"app/styles.js.ts": "",
			},
			entry: "app/page.tsx",
			want:  []m.Path{"app/page.tsx", "app/styles.js"},
		},
		{
			name: "duplicates and self imports appear once",
			files: map[string]string{
				"app/page.tsx": "import a from './a'\nimport again from './a.ts'\nimport self from './page'\n",
				"app/a.ts":     "",
			},
			entry: "app/page.tsx",
			want:  []m.Path{"app/page.tsx", "app/a.ts"},
		},
		{
			name: "stops after one level by default",
			files: map[string]string{
				"app/page.tsx": "import a from './a'",
				"app/a.ts":     "import b from './b'",
				"app/b.ts":     "",
			},
			entry: "app/page.tsx",
			want:  []m.Path{"app/page.tsx", "app/a.ts"},
		},
		{
			name: "deeper levels when configured",
			files: map[string]string{
				"app/page.tsx": "import a from './a'",
				"app/a.ts":     "import b from './b'\nimport p from './page'",
				"app/b.ts":     "import c from './c'",
				"app/c.ts":     "",
			},
			entry: "app/page.tsx",
			depth: 2,
			want:  []m.Path{"app/page.tsx", "app/a.ts", "app/b.ts"},
		},
		{
			name: "entry only follows nothing",
			files: map[string]string{
				"app/page.tsx":    "import Counter from './Counter'",
				"app/Counter.tsx": "'use client'",
			},
			entry: "app/page.tsx",
			depth: EntryOnly,
			want:  []m.Path{"app/page.tsx"},
		},
		{
			name: "directories are not import targets",
			files: map[string]string{
				"app/page.tsx":   "import u from './utils'",
				"app/utils/x.ts": "",
			},
			entry: "app/page.tsx",
			want:  []m.Path{"app/page.tsx"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeTree(t, root, tt.files)

			resolver := NewImportResolver(fsAdapter, ResolverConfig{Depth: tt.depth})

			files, err := resolver.ResolveFromEntry(ctx, m.Path(root), tt.entry)
			require.NoError(t, err)
			assert.Equal(t, tt.want, shortPaths(files))
		})
	}
}

func TestImportResolver_ContentAndFullPath(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"app/Widget.tsx": "import { helper } from './Helper'\n",
		"app/Helper.tsx": "import { useState } from 'react'\nexport function helper() { useState() }\n",
	})

	resolver := NewImportResolver(adapter.NewLocalSourceFSAdapter(), DefaultResolverConfig())

	files, err := resolver.ResolveFromEntry(context.Background(), m.Path(root), "app/Widget.tsx")
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, m.Path(filepath.Join(root, "app", "Helper.tsx")), files[1].FullPath)
	assert.Contains(t, files[1].Content, "useState")
}

func TestImportResolver_AbsoluteEntry(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"main.ts": "import x from './x'", "x.js": ""})

	resolver := NewImportResolver(adapter.NewLocalSourceFSAdapter(), ResolverConfig{})

	files, err := resolver.ResolveFromEntry(context.Background(), m.Path(root), m.Path(filepath.Join(root, "main.ts")))
	require.NoError(t, err)
	assert.Equal(t, []m.Path{"main.ts", "x.js"}, shortPaths(files))
}
