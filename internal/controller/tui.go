package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "github.com/cytsaiap-xyz/opencode-evals/internal/model"
)

const (
	headerHeight = 3
	footerHeight = 2
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1).Border(lipgloss.RoundedBorder())
	passStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	failStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	dimStyle   = lipgloss.NewStyle().Faint(true)
	addStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	delStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// TUI implements UI with styled output and a scrollable pager for content
// taller than the terminal.
type TUI struct {
	cmd *cobra.Command
}

// NewTUI creates a new TUI.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{cmd: cmd}
}

// DisplayReports renders every scenario with styled verdicts.
func (t *TUI) DisplayReports(ctx context.Context, reports []m.VerificationReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return t.show("evalcheck · verification reports", renderStyledReports(reports))
}

// DisplayCorpora renders the files behind each corpus.
func (t *TUI) DisplayCorpora(ctx context.Context, listings []m.CorpusListing) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return t.show("evalcheck · corpora", renderStyledCorpora(listings))
}

// DisplayDiff renders a colored unified diff.
func (t *TUI) DisplayDiff(ctx context.Context, diff string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if diff == "" {
		return t.show("evalcheck · baseline diff", dimStyle.Render("No verdict changes against baseline")+"\n")
	}

	return t.show("evalcheck · baseline diff", renderStyledDiff(diff))
}

// show prints short content directly and pages long content.
func (t *TUI) show(title, content string) error {
	out := t.cmd.OutOrStdout()
	width, height := terminalSize(out)

	lines := strings.Count(content, "\n") + headerHeight
	if height == 0 || lines <= height {
		_, err := fmt.Fprintf(out, "%s\n%s", titleStyle.Render(title), content)
		return err
	}

	program := tea.NewProgram(newPagerModel(title, content, width, height), tea.WithOutput(out), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

func terminalSize(w io.Writer) (int, int) {
	f, ok := w.(*os.File)
	if !ok {
		return 0, 0
	}

	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0, 0
	}

	return width, height
}

func renderStyledReports(reports []m.VerificationReport) string {
	var b strings.Builder

	if len(reports) == 0 {
		b.WriteString("  📭 No reports found\n")
		return b.String()
	}

	passedScenarios := 0

	for _, report := range reports {
		if report.Passed() {
			passedScenarios++

			fmt.Fprintf(&b, "\n%s %s\n", passStyle.Render("✔"), report.Scenario)
		} else {
			fmt.Fprintf(&b, "\n%s %s\n", failStyle.Render("✘"), report.Scenario)
		}

		for _, result := range report.Results {
			badge := passStyle.Render(passLabel)
			if !result.Passed {
				badge = failStyle.Render(failLabel)
			}

			fmt.Fprintf(&b, "  %s  %s\n", badge, result.Rule)

			if result.Detail != "" && !result.Passed {
				for _, line := range strings.Split(strings.TrimRight(result.Detail, "\n"), "\n") {
					fmt.Fprintf(&b, "        %s\n", dimStyle.Render(line))
				}
			}
		}
	}

	fmt.Fprintf(&b, "\n  📊 %d/%d scenario(s) passed\n", passedScenarios, len(reports))

	return b.String()
}

func renderStyledCorpora(listings []m.CorpusListing) string {
	var b strings.Builder

	if len(listings) == 0 {
		b.WriteString("  📭 No corpora found\n")
		return b.String()
	}

	for _, listing := range listings {
		fmt.Fprintf(&b, "\n%s %s\n", passStyle.Render(listing.Scenario), dimStyle.Render("["+listing.Corpus+"]"))

		if len(listing.Files) == 0 {
			fmt.Fprintf(&b, "  %s\n", dimStyle.Render("(no files)"))
			continue
		}

		for _, file := range listing.Files {
			fmt.Fprintf(&b, "  %s\n", file)
		}
	}

	return b.String()
}

func renderStyledDiff(diff string) string {
	var b strings.Builder

	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
			b.WriteString(addStyle.Render(line))
		case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
			b.WriteString(delStyle.Render(line))
		default:
			b.WriteString(line)
		}

		b.WriteString("\n")
	}

	return b.String()
}

type pagerKeyMap struct {
	Quit key.Binding
	Top  key.Binding
	End  key.Binding
}

func defaultPagerKeyMap() pagerKeyMap {
	return pagerKeyMap{
		Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
		Top:  key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		End:  key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
	}
}

// pagerModel is the Bubble Tea model scrolling long output.
type pagerModel struct {
	title    string
	viewport viewport.Model
	keys     pagerKeyMap
	quitting bool
}

func newPagerModel(title, content string, width, height int) pagerModel {
	vp := viewport.New(width, max(height-headerHeight-footerHeight, 1))
	vp.SetContent(content)

	return pagerModel{
		title:    title,
		viewport: vp,
		keys:     defaultPagerKeyMap(),
	}
}

func (pm pagerModel) Init() tea.Cmd {
	return nil
}

func (pm pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, pm.keys.Quit):
			pm.quitting = true
			return pm, tea.Quit
		case key.Matches(msg, pm.keys.Top):
			pm.viewport.GotoTop()
			return pm, nil
		case key.Matches(msg, pm.keys.End):
			pm.viewport.GotoBottom()
			return pm, nil
		}

	case tea.WindowSizeMsg:
		pm.viewport.Width = msg.Width
		pm.viewport.Height = max(msg.Height-headerHeight-footerHeight, 1)

		return pm, nil
	}

	var cmd tea.Cmd

	pm.viewport, cmd = pm.viewport.Update(msg)

	return pm, cmd
}

func (pm pagerModel) View() string {
	if pm.quitting {
		return ""
	}

	footer := dimStyle.Render(fmt.Sprintf("%3.0f%% | ↑/k ↓/j scroll | g top | G bottom | q quit", pm.viewport.ScrollPercent()*100))

	return fmt.Sprintf("%s\n%s\n%s", titleStyle.Render(pm.title), pm.viewport.View(), footer)
}
