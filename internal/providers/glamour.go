package providers

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"

	"github.com/Railly/tinte-sub002/internal/color"
	"github.com/Railly/tinte-sub002/internal/models"
)

type glamourProvider struct {
	desc Descriptor
}

// NewGlamour returns the provider for glamour markdown styles.
func NewGlamour() Provider {
	return &glamourProvider{desc: Descriptor{
		ID:        "glamour",
		Name:      "Glamour",
		Category:  CategoryOther,
		Tags:      []string{"markdown", "terminal", "json"},
		Links:     []string{"https://github.com/charmbracelet/glamour/tree/master/styles"},
		Extension: "json",
		MimeType:  "application/json",
	}}
}

func (g *glamourProvider) Descriptor() Descriptor { return g.desc }

func (g *glamourProvider) Convert(theme models.Theme) (Output, error) {
	return convertDual(theme, GlamourStyle), nil
}

func ptr[T any](v T) *T { return &v }

func fg(hex string) ansi.StylePrimitive {
	return ansi.StylePrimitive{Color: ptr(hex)}
}

// GlamourStyle builds the glamour style config for one mode.
func GlamourStyle(b models.Block, _ models.Mode) ansi.StyleConfig {
	heading := func(prefix string, c string) ansi.StyleBlock {
		return ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: prefix, Color: ptr(c), Bold: ptr(true)}}
	}
	onPrimary := color.Contrasting(b.Pr, "#000000", "#ffffff")

	return ansi.StyleConfig{
		Document: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{BlockPrefix: "\n", BlockSuffix: "\n", Color: ptr(b.Tx)},
			Margin:         ptr(uint(2)),
		},
		BlockQuote: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Color: ptr(b.Tx2), Italic: ptr(true)},
			Indent:         ptr(uint(1)),
			IndentToken:    ptr("│ "),
		},
		Paragraph: ansi.StyleBlock{},
		List:      ansi.StyleList{LevelIndent: 2},
		Heading: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{BlockSuffix: "\n", Color: ptr(b.Pr), Bold: ptr(true)},
		},
		H1: ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{
			Prefix: " ", Suffix: " ", Color: ptr(onPrimary), BackgroundColor: ptr(b.Pr), Bold: ptr(true),
		}},
		H2:             heading("## ", b.Pr),
		H3:             heading("### ", b.Sc),
		H4:             heading("#### ", b.Ac3),
		H5:             heading("##### ", b.Tx2),
		H6:             heading("###### ", b.Tx3),
		Text:           fg(b.Tx),
		Strikethrough:  ansi.StylePrimitive{CrossedOut: ptr(true)},
		Emph:           ansi.StylePrimitive{Italic: ptr(true), Color: ptr(b.Tx2)},
		Strong:         ansi.StylePrimitive{Bold: ptr(true), Color: ptr(b.Tx)},
		HorizontalRule: ansi.StylePrimitive{Color: ptr(b.UI2), Format: "\n--------\n"},
		Item:           ansi.StylePrimitive{BlockPrefix: "• "},
		Enumeration:    ansi.StylePrimitive{BlockPrefix: ". ", Color: ptr(b.Tx2)},
		Task:           ansi.StyleTask{Ticked: "[✓] ", Unticked: "[ ] "},
		Link:           ansi.StylePrimitive{Color: ptr(b.Pr), Underline: ptr(true)},
		LinkText:       ansi.StylePrimitive{Color: ptr(b.Sc), Bold: ptr(true)},
		Image:          ansi.StylePrimitive{Color: ptr(b.Pr), Underline: ptr(true)},
		ImageText:      ansi.StylePrimitive{Color: ptr(b.Tx2), Format: "Image: {{.text}} →"},
		Code: ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{
			Prefix: " ", Suffix: " ", Color: ptr(b.Ac1), BackgroundColor: ptr(b.Bg2),
		}},
		CodeBlock: ansi.StyleCodeBlock{
			StyleBlock: ansi.StyleBlock{
				StylePrimitive: ansi.StylePrimitive{Color: ptr(b.Tx2)},
				Margin:         ptr(uint(2)),
			},
			Chroma: glamourChroma(b),
		},
		Table:                 ansi.StyleTable{CenterSeparator: ptr("┼"), ColumnSeparator: ptr("│"), RowSeparator: ptr("─")},
		DefinitionDescription: ansi.StylePrimitive{BlockPrefix: "\n🠶 "},
	}
}

func glamourChroma(b models.Block) *ansi.Chroma {
	role := func(category SyntaxCategory) ansi.StylePrimitive {
		return fg(b.Get(SyntaxRole(category)))
	}
	comment := role(SyntaxComment)
	comment.Italic = ptr(true)

	return &ansi.Chroma{
		Text:                fg(b.Tx),
		Error:               ansi.StylePrimitive{Color: ptr(b.Bg), BackgroundColor: ptr(b.Ac1)},
		Comment:             comment,
		CommentPreproc:      role(SyntaxDecorator),
		Keyword:             role(SyntaxKeyword),
		KeywordReserved:     role(SyntaxKeyword),
		KeywordNamespace:    role(SyntaxNamespace),
		KeywordType:         role(SyntaxType),
		Operator:            role(SyntaxOperator),
		Punctuation:         role(SyntaxPunctuation),
		Name:                role(SyntaxVariable),
		NameBuiltin:         role(SyntaxFunction),
		NameTag:             role(SyntaxTag),
		NameAttribute:       role(SyntaxAttribute),
		NameClass:           ansi.StylePrimitive{Color: ptr(b.Get(SyntaxRole(SyntaxType))), Bold: ptr(true)},
		NameConstant:        role(SyntaxConstant),
		NameDecorator:       role(SyntaxDecorator),
		NameFunction:        role(SyntaxFunction),
		NameOther:           role(SyntaxVariable),
		LiteralNumber:       role(SyntaxNumber),
		LiteralString:       role(SyntaxString),
		LiteralStringEscape: role(SyntaxConstant),
		GenericDeleted:      fg(b.Ac1),
		GenericEmph:         ansi.StylePrimitive{Italic: ptr(true)},
		GenericInserted:     fg(b.Ac2),
		GenericStrong:       ansi.StylePrimitive{Bold: ptr(true)},
		GenericSubheading:   fg(b.Tx2),
		Background:          ansi.StylePrimitive{BackgroundColor: ptr(b.Bg2)},
	}
}

func (g *glamourProvider) Export(theme models.Theme, opts ExportOptions) (*Artifact, error) {
	mode := opts.mode()
	content, err := marshalJSON(GlamourStyle(theme.Block(mode), mode))
	if err != nil {
		return nil, fmt.Errorf("encode glamour style: %w", err)
	}
	return newArtifact(g.desc, theme, opts, content), nil
}

func (g *glamourProvider) Validate(out Output) bool {
	if single, ok := outputAs[ansi.StyleConfig](out); ok {
		return glamourValid(single)
	}
	dual, ok := outputAs[Dual[ansi.StyleConfig]](out)
	return ok && glamourValid(dual.Light) && glamourValid(dual.Dark)
}

func glamourValid(cfg ansi.StyleConfig) bool {
	return cfg.Document.Color != nil && cfg.CodeBlock.Chroma != nil && cfg.CodeBlock.Chroma.Text.Color != nil
}

// RenderMarkdown renders md with the glamour style of theme in mode.
func RenderMarkdown(theme models.Theme, mode models.Mode, md string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(GlamourStyle(theme.Block(mode), mode)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	return renderer.Render(md)
}
