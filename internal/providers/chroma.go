package providers

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"

	"github.com/Railly/tinte-sub002/internal/models"
)

var chromaTokens = map[SyntaxCategory][]chroma.TokenType{
	SyntaxComment:     {chroma.Comment},
	SyntaxKeyword:     {chroma.Keyword},
	SyntaxString:      {chroma.LiteralString},
	SyntaxFunction:    {chroma.NameFunction, chroma.NameBuiltin},
	SyntaxType:        {chroma.KeywordType, chroma.NameClass},
	SyntaxNumber:      {chroma.LiteralNumber},
	SyntaxConstant:    {chroma.NameConstant, chroma.KeywordConstant},
	SyntaxOperator:    {chroma.Operator},
	SyntaxTag:         {chroma.NameTag},
	SyntaxAttribute:   {chroma.NameAttribute},
	SyntaxDecorator:   {chroma.NameDecorator, chroma.CommentPreproc},
	SyntaxVariable:    {chroma.NameVariable, chroma.Name},
	SyntaxProperty:    {chroma.NameProperty},
	SyntaxPunctuation: {chroma.Punctuation},
	SyntaxNamespace:   {chroma.NameNamespace, chroma.KeywordNamespace},
}

type chromaProvider struct {
	desc Descriptor
}

// NewChroma returns the provider for chroma syntax highlighting styles.
func NewChroma() Provider {
	return &chromaProvider{desc: Descriptor{
		ID:        "chroma",
		Name:      "Chroma",
		Category:  CategoryOther,
		Tags:      []string{"syntax", "xml", "css", "hugo"},
		Links:     []string{"https://github.com/alecthomas/chroma"},
		Extension: "xml",
		MimeType:  "application/xml",
	}}
}

func (c *chromaProvider) Descriptor() Descriptor { return c.desc }

func (c *chromaProvider) Convert(theme models.Theme) (Output, error) {
	light, err := ChromaStyle(theme, models.ModeLight)
	if err != nil {
		return nil, err
	}
	dark, err := ChromaStyle(theme, models.ModeDark)
	if err != nil {
		return nil, err
	}
	return Dual[*chroma.Style]{Light: light, Dark: dark}, nil
}

// ChromaStyle builds the chroma style for theme in mode.
func ChromaStyle(theme models.Theme, mode models.Mode) (*chroma.Style, error) {
	b := theme.Block(mode)
	entries := chroma.StyleEntries{
		chroma.Background:        fmt.Sprintf("bg:%s %s", b.Bg, b.Tx),
		chroma.Text:              b.Tx,
		chroma.Error:             fmt.Sprintf("%s bg:%s", b.Ac1, b.Bg),
		chroma.LineNumbers:       b.Tx3,
		chroma.LineHighlight:     "bg:" + flatten(b.Tx, b.Bg, SurfaceLineHighlight, mode),
		chroma.GenericDeleted:    b.Ac1,
		chroma.GenericInserted:   b.Ac2,
		chroma.GenericHeading:    "bold " + b.Pr,
		chroma.GenericSubheading: b.Sc,
		chroma.GenericEmph:       "italic",
		chroma.GenericStrong:     "bold",
	}
	for _, rule := range syntaxRules(b, chromaPatterns) {
		style := rule.Color
		if rule.Category == SyntaxComment {
			style = "italic " + style
		}
		for _, tt := range chromaTokens[rule.Category] {
			entries[tt] = style
		}
	}

	style, err := chroma.NewStyle(theme.Slug()+"-"+string(mode), entries)
	if err != nil {
		return nil, fmt.Errorf("build chroma style: %w", err)
	}
	return style, nil
}

// chromaPatterns names each category by its chroma token types so the
// shared rule builder can be reused.
var chromaPatterns = func() map[SyntaxCategory][]string {
	out := make(map[SyntaxCategory][]string, len(chromaTokens))
	for category, types := range chromaTokens {
		for _, tt := range types {
			out[category] = append(out[category], tt.String())
		}
	}
	return out
}()

func (c *chromaProvider) Export(theme models.Theme, opts ExportOptions) (*Artifact, error) {
	style, err := ChromaStyle(theme, opts.mode())
	if err != nil {
		return nil, err
	}
	content, err := xml.MarshalIndent(style, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode chroma style: %w", err)
	}
	return newArtifact(c.desc, theme, opts, append(content, '\n')), nil
}

// ExportCSS renders the HTML formatter stylesheet for theme in mode.
func ExportCSS(theme models.Theme, mode models.Mode) ([]byte, error) {
	style, err := ChromaStyle(theme, mode)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := html.New(html.WithClasses(true)).WriteCSS(&buf, style); err != nil {
		return nil, fmt.Errorf("write chroma css: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *chromaProvider) Validate(out Output) bool {
	dual, ok := outputAs[Dual[*chroma.Style]](out)
	if !ok || dual.Light == nil || dual.Dark == nil {
		return false
	}
	return dual.Light.Has(chroma.Background) && dual.Dark.Has(chroma.Keyword)
}
