package preview

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Railly/tinte-sub002/internal/models"
	"github.com/Railly/tinte-sub002/internal/providers"
	"github.com/Railly/tinte-sub002/internal/session"
	"github.com/Railly/tinte-sub002/internal/tokens"
)

const (
	minWidth  = 48
	minHeight = 12
)

const sampleMarkdown = "## Sample\n\nSome `inline code`, a [link](https://example.com) and:\n\n```go\nfunc main() {\n\tfmt.Println(\"hello\")\n}\n```\n"

// Model is the interactive preview over an editing session.
type Model struct {
	ctx      context.Context
	session  *session.Session
	mode     models.Mode
	styles   Styles
	markdown string
	status   string
	width    int
	height   int
}

type savedMsg session.SaveOutcome

// NewModel builds a preview for sess in mode.
func NewModel(ctx context.Context, sess *session.Session, mode models.Mode) Model {
	m := Model{ctx: ctx, session: sess, mode: mode}
	m.refresh()
	return m
}

// Run launches the preview program.
func Run(ctx context.Context, sess *session.Session, mode models.Mode) error {
	program := tea.NewProgram(NewModel(ctx, sess, mode), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// Mode returns the previewed mode.
func (m Model) Mode() models.Mode {
	return m.mode
}

func (m *Model) refresh() {
	m.styles = BuildStyles(m.session.Tokens(m.mode))

	rendered, err := providers.RenderMarkdown(m.session.Theme(), m.mode, sampleMarkdown, 60)
	if err != nil {
		rendered = sampleMarkdown
	}
	m.markdown = strings.TrimRight(rendered, "\n")
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "m":
			if m.mode == models.ModeLight {
				m.mode = models.ModeDark
			} else {
				m.mode = models.ModeLight
			}
			m.status = fmt.Sprintf("mode: %s", m.mode)
			m.refresh()
		case "u":
			if m.session.Undo() {
				m.status = "undo"
				m.refresh()
			} else {
				m.status = "nothing to undo"
			}
		case "r":
			if m.session.Redo() {
				m.status = "redo"
				m.refresh()
			} else {
				m.status = "nothing to redo"
			}
		case "s":
			m.status = "saving..."
			return m, m.saveCmd()
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case savedMsg:
		if msg.Err != nil {
			m.status = fmt.Sprintf("save failed: %v", msg.Err)
		} else {
			m.status = "saved"
		}
		m.refresh()
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m Model) saveCmd() tea.Cmd {
	done := m.session.Save(m.ctx, false)
	return func() tea.Msg {
		return savedMsg(<-done)
	}
}

func (m Model) View() string {
	if m.width > 0 && m.height > 0 && (m.width < minWidth || m.height < minHeight) {
		return m.styles.StatusStyle("warning").Render(
			fmt.Sprintf("Terminal too small (%dx%d). Resize to at least %dx%d.", m.width, m.height, minWidth, minHeight),
		) + "\n"
	}

	theme := m.session.Theme()
	hist := m.session.History()

	lines := []string{
		m.styles.Title.Render(theme.Name) + " " + m.styles.Muted.Render(fmt.Sprintf("(%s)", m.mode)),
		"",
		Swatches(m.styles.Tokens, RoleKeys(), 5),
		"",
		StatusBadges(m.styles),
		"",
		m.markdown,
		"",
		m.styles.Faint.Render(fmt.Sprintf("history: %s  undo %d  redo %d", hist.State(), hist.UndoDepth(), hist.RedoDepth())),
	}
	if m.status != "" {
		lines = append(lines, m.styles.Accent.Render(m.status))
	}
	lines = append(lines, m.styles.Muted.Render("m mode | u undo | r redo | s save | q quit"))

	return strings.Join(lines, "\n") + "\n"
}

func statusNames() []string {
	names := make([]string, len(tokens.Statuses))
	for i, status := range tokens.Statuses {
		names[i] = status.Name
	}
	return names
}
