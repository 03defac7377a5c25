package preview

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Railly/tinte-sub002/internal/models"
	"github.com/Railly/tinte-sub002/internal/ownership"
	"github.com/Railly/tinte-sub002/internal/persistence"
	"github.com/Railly/tinte-sub002/internal/session"
	"github.com/Railly/tinte-sub002/internal/tokens"
)

func testTheme() models.Theme {
	return models.Theme{
		ID:      "preview",
		Name:    "Preview",
		OwnerID: ownership.OwnerMine,
		Light: models.Block{
			Bg: "#ffffff", Bg2: "#f5f5f4",
			UI: "#e7e5e4", UI2: "#d6d3d1", UI3: "#a8a29e",
			Tx3: "#78716c", Tx2: "#44403c", Tx: "#1c1917",
			Pr: "#1e40af", Sc: "#7c3aed",
			Ac1: "#dc2626", Ac2: "#16a34a", Ac3: "#ca8a04",
		},
		Dark: models.Block{
			Bg: "#0c0a09", Bg2: "#1c1917",
			UI: "#292524", UI2: "#44403c", UI3: "#57534e",
			Tx3: "#78716c", Tx2: "#a8a29e", Tx: "#fafaf9",
			Pr: "#60a5fa", Sc: "#a78bfa",
			Ac1: "#f87171", Ac2: "#4ade80", Ac3: "#facc15",
		},
	}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBuildStylesCoversStatuses(t *testing.T) {
	tm := tokens.Resolve(testTheme(), models.ModeDark, nil)
	s := BuildStyles(tm)

	for _, status := range tokens.Statuses {
		_, ok := s.Status[status.Name]
		assert.True(t, ok, status.Name)
		_, ok = s.Badge[status.Name]
		assert.True(t, ok, status.Name)
	}
	assert.Equal(t, "#60a5fa", s.Tokens["pr"])

	// The style keeps its own copy of the tokens.
	tm["pr"] = "#000000"
	assert.Equal(t, "#60a5fa", s.Tokens["pr"])
}

func TestSwatches(t *testing.T) {
	tm := models.TokenMap{"bg": "#ffffff", "tx": "#000000", "pr": "#1e40af"}

	out := Swatches(tm, []string{"bg", "missing", "tx", "pr"}, 2)
	assert.Contains(t, out, "#ffffff")
	assert.Contains(t, out, "#1e40af")
	assert.NotContains(t, out, "missing")
	assert.Len(t, strings.Split(out, "\n"), 2)

	assert.Empty(t, Swatches(tm, nil, 3))
}

func TestModelKeys(t *testing.T) {
	sess := session.New(testTheme(), ownership.Identity{}, persistence.NewMemoryStore(), session.WithLogger(zerolog.Nop()))
	require.NoError(t, sess.Edit(context.Background(), models.ModeDark, models.RoleBg, "#111111"))

	m := NewModel(context.Background(), sess, models.ModeDark)
	assert.Equal(t, "#111111", m.styles.Tokens["bg"])

	next, _ := m.Update(key("m"))
	m = next.(Model)
	assert.Equal(t, models.ModeLight, m.Mode())
	assert.Equal(t, "#ffffff", m.styles.Tokens["bg"])

	next, _ = m.Update(key("m"))
	m = next.(Model)
	next, _ = m.Update(key("u"))
	m = next.(Model)
	assert.Equal(t, "#0c0a09", m.styles.Tokens["bg"])

	next, _ = m.Update(key("u"))
	m = next.(Model)
	assert.Equal(t, "nothing to undo", m.status)

	next, _ = m.Update(key("r"))
	m = next.(Model)
	assert.Equal(t, "#111111", m.styles.Tokens["bg"])

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelSave(t *testing.T) {
	store := persistence.NewMemoryStore()
	sess := session.New(testTheme(), ownership.Identity{}, store, session.WithLogger(zerolog.Nop()))
	m := NewModel(context.Background(), sess, models.ModeDark)

	next, cmd := m.Update(key("s"))
	require.NotNil(t, cmd)
	m = next.(Model)

	next, _ = m.Update(cmd())
	m = next.(Model)
	assert.Equal(t, "saved", m.status)
	assert.Equal(t, 1, store.Len())
}

func TestModelView(t *testing.T) {
	sess := session.New(testTheme(), ownership.Identity{}, nil, session.WithLogger(zerolog.Nop()))
	m := NewModel(context.Background(), sess, models.ModeLight)

	view := m.View()
	assert.Contains(t, view, "Preview")
	assert.Contains(t, view, "(light)")
	assert.Contains(t, view, "#1e40af")
	assert.Contains(t, view, "history: at-tip")

	next, _ := m.Update(tea.WindowSizeMsg{Width: 20, Height: 5})
	assert.Contains(t, next.(Model).View(), "Terminal too small")
}
