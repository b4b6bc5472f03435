package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"go.abhg.dev/goldmark/frontmatter"
)

var ErrNoFrontmatter = errors.New("template has no front matter")

type Parser struct {
	md goldmark.Markdown
}

func NewParser() *Parser {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
			&frontmatter.Extender{},
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithHardWraps(),
			goldmarkhtml.WithXHTML(),
		),
	)

	return &Parser{
		md: md,
	}
}

// Render converts markdown to HTML. Raw HTML in the source is omitted.
func (p *Parser) Render(source string) (string, error) {
	var buf bytes.Buffer
	if err := p.md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// TemplateMeta is the YAML front matter of a content template file.
type TemplateMeta struct {
	Name      string   `yaml:"name"`
	Category  string   `yaml:"category"`
	Variables []string `yaml:"variables"`
	Default   bool     `yaml:"default"`
}

// Template is a content template file split into metadata and markdown body.
type Template struct {
	Meta TemplateMeta
	Body string
}

// ParseTemplate reads a template file of the form
//
//	---
//	name: weekly-review
//	category: review
//	variables: [week, wins]
//	---
//	# Week {week}
func (p *Parser) ParseTemplate(source []byte) (*Template, error) {
	ctx := parser.NewContext()
	p.md.Parser().Parse(text.NewReader(source), parser.WithContext(ctx))

	data := frontmatter.Get(ctx)
	if data == nil {
		return nil, ErrNoFrontmatter
	}

	var meta TemplateMeta
	if err := data.Decode(&meta); err != nil {
		return nil, fmt.Errorf("invalid front matter: %w", err)
	}
	if meta.Name == "" {
		return nil, errors.New("front matter is missing name")
	}

	return &Template{Meta: meta, Body: stripFrontmatter(string(source))}, nil
}

func stripFrontmatter(source string) string {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	if !strings.HasPrefix(source, "---\n") {
		return source
	}
	rest := source[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return source
	}
	body := rest[end+len("\n---"):]
	body = strings.TrimPrefix(body, "\n")
	return strings.TrimLeft(body, "\n")
}

// Fill replaces {name} placeholders with values. Unknown placeholders are left as is.
func Fill(template string, values map[string]string) string {
	if len(values) == 0 {
		return template
	}
	pairs := make([]string, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
