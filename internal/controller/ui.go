// Package controller provides output adapters for displaying verification results.
package controller

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "github.com/cytsaiap-xyz/opencode-evals/internal/model"
)

// UI defines how verification results reach the user.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	DisplayReports(ctx context.Context, reports []m.VerificationReport) error
	DisplayCorpora(ctx context.Context, listings []m.CorpusListing) error
	DisplayDiff(ctx context.Context, diff string) error
}

// NewUI picks the interactive TUI for terminals and plain tables otherwise.
func NewUI(cmd *cobra.Command, isTTY bool) UI {
	if isTTY {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether w is an interactive terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
