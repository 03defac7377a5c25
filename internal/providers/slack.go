package providers

import (
	"strings"

	"github.com/Railly/tinte-sub002/internal/color"
	"github.com/Railly/tinte-sub002/internal/models"
	"github.com/Railly/tinte-sub002/internal/tokens"
)

// SlackKeys are the sidebar theme slots in the order Slack expects them.
var SlackKeys = []string{
	"column_bg",
	"menu_bg_hover",
	"active_item",
	"active_item_text",
	"hover_item",
	"text_color",
	"active_presence",
	"mention_badge",
}

// SlackTheme maps each of SlackKeys to a color.
type SlackTheme map[string]string

// String renders the comma separated form pasted into Slack preferences.
func (s SlackTheme) String() string {
	values := make([]string, 0, len(SlackKeys))
	for _, key := range SlackKeys {
		values = append(values, strings.ToUpper(s[key]))
	}
	return strings.Join(values, ",")
}

type slack struct {
	desc Descriptor
}

// NewSlack returns the Slack sidebar theme provider.
func NewSlack() Provider {
	return &slack{desc: Descriptor{
		ID:        "slack",
		Name:      "Slack",
		Category:  CategoryChat,
		Tags:      []string{"chat", "sidebar"},
		Links:     []string{"https://slack.com/help/articles/205166337-Change-your-Slack-theme"},
		Extension: "txt",
		MimeType:  "text/plain",
	}}
}

func (s *slack) Descriptor() Descriptor { return s.desc }

func (s *slack) Channel() models.Channel { return models.ChannelChat }

func (s *slack) Convert(theme models.Theme) (Output, error) {
	return s.ConvertWithOverrides(theme, nil)
}

func (s *slack) ConvertWithOverrides(theme models.Theme, layers []models.OverrideLayer) (Output, error) {
	return Dual[SlackTheme]{
		Light: slackTheme(theme.Light, models.ModeLight, layers),
		Dark:  slackTheme(theme.Dark, models.ModeDark, layers),
	}, nil
}

func slackTheme(b models.Block, mode models.Mode, layers []models.OverrideLayer) SlackTheme {
	base := map[string]string{
		"column_bg":        b.Bg2,
		"menu_bg_hover":    b.UI,
		"active_item":      b.Pr,
		"active_item_text": color.Contrasting(b.Pr, "#000000", "#ffffff"),
		"hover_item":       b.UI2,
		"text_color":       b.Tx,
		"active_presence":  b.Ac2,
		"mention_badge":    b.Ac1,
	}
	return SlackTheme(tokens.Apply(base, mode, layers, models.ChannelChat))
}

func (s *slack) Export(theme models.Theme, opts ExportOptions) (*Artifact, error) {
	mode := opts.mode()
	out := slackTheme(theme.Block(mode), mode, opts.Overrides)
	return newArtifact(s.desc, theme, opts, []byte(out.String()+"\n")), nil
}

func (s *slack) Validate(out Output) bool {
	if single, ok := outputAs[SlackTheme](out); ok {
		return slackValid(single)
	}
	dual, ok := outputAs[Dual[SlackTheme]](out)
	return ok && slackValid(dual.Light) && slackValid(dual.Dark)
}

func slackValid(t SlackTheme) bool {
	for _, key := range SlackKeys {
		if !color.Valid(t[key]) {
			return false
		}
	}
	return len(strings.Split(t.String(), ",")) == len(SlackKeys)
}
