package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	stdhtml "html"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrHTMLConversion indicates the preview could not be rendered.
var ErrHTMLConversion = errors.New("HTML preview conversion failed")

// previewTemplate wraps Goldmark's fragment output in a complete HTML5 document.
// Arguments: title, stylesheet, body.
const previewTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
%s</style>
</head>
<body>
%s
</body>
</html>`

// previewCSS styles the transcript and the chroma highlighting classes.
const previewCSS = `body { max-width: 48rem; margin: 2rem auto; padding: 0 1rem; font-family: system-ui, sans-serif; line-height: 1.6; color: #222; }
hr { border: 0; border-top: 1px solid #ddd; margin: 2rem 0; }
pre { background: #f6f8fa; padding: 0.75rem 1rem; overflow-x: auto; border-radius: 6px; }
code { font-family: ui-monospace, monospace; font-size: 0.9em; }
.chroma .k, .chroma .kd, .chroma .kn { color: #cf222e; }
.chroma .s, .chroma .s1, .chroma .s2 { color: #0a3069; }
.chroma .c, .chroma .c1, .chroma .cm { color: #6e7781; font-style: italic; }
.chroma .nf, .chroma .nx { color: #8250df; }
.chroma .m, .chroma .mi, .chroma .mf { color: #0550ae; }
`

// HTMLConverter abstracts Markdown to HTML preview rendering.
type HTMLConverter interface {
	ToHTML(ctx context.Context, title, content string) (string, error)
}

// GoldmarkConverter renders Markdown to a standalone HTML page using goldmark.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions and
// chroma syntax highlighting. allowRawHTML keeps all HTML found in the
// Markdown; when false only the elements the transcript passes through
// (lists, line breaks, leftover inline formatting) are kept, without their
// attributes, and everything else is dropped.
func NewGoldmarkConverter(allowRawHTML bool) *GoldmarkConverter {
	htmlOpts := []renderer.Option{
		html.WithXHTML(), // Self-closing tags
	}
	if allowRawHTML {
		htmlOpts = append(htmlOpts, html.WithUnsafe())
	} else {
		htmlOpts = append(htmlOpts, renderer.WithNodeRenderers(
			util.Prioritized(&passThroughRenderer{}, 100), // before the html renderer (1000)
		))
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // Classes styled by previewCSS
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(htmlOpts...),
	)
	return &GoldmarkConverter{md: md}
}

// ToHTML converts Markdown content to a standalone HTML5 document.
// Supports context cancellation via goroutine + select since goldmark
// doesn't take a context.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, title, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: fmt.Sprintf(previewTemplate, stdhtml.EscapeString(title), previewCSS, buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// passThroughTags are the elements kept when raw HTML is not allowed.
var passThroughTags = map[atom.Atom]bool{
	atom.Ol:     true,
	atom.Ul:     true,
	atom.Li:     true,
	atom.Br:     true,
	atom.P:      true,
	atom.B:      true,
	atom.I:      true,
	atom.Strong: true,
	atom.Em:     true,
	atom.Code:   true,
}

// passThroughRenderer renders raw HTML nodes through FilterPassThroughHTML.
type passThroughRenderer struct{}

func (r *passThroughRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindHTMLBlock, r.renderHTMLBlock)
	reg.Register(ast.KindRawHTML, r.renderRawHTML)
}

func (r *passThroughRenderer) renderHTMLBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.HTMLBlock)
	var raw strings.Builder
	if entering {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			raw.Write(line.Value(source))
		}
	} else if n.HasClosure() {
		raw.Write(n.ClosureLine.Value(source))
	}
	_, _ = w.WriteString(FilterPassThroughHTML(raw.String()))
	return ast.WalkContinue, nil
}

func (r *passThroughRenderer) renderRawHTML(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkSkipChildren, nil
	}
	n := node.(*ast.RawHTML)
	var raw strings.Builder
	for i := 0; i < n.Segments.Len(); i++ {
		seg := n.Segments.At(i)
		raw.Write(seg.Value(source))
	}
	_, _ = w.WriteString(FilterPassThroughHTML(raw.String()))
	return ast.WalkSkipChildren, nil
}

// FilterPassThroughHTML keeps the passThroughTags of markup, stripped of
// attributes, and the re-escaped text. Other tags, comments and doctypes
// are dropped.
func FilterPassThroughHTML(markup string) string {
	var b strings.Builder
	z := xhtml.NewTokenizer(strings.NewReader(markup))
	for {
		tt := z.Next()
		if tt == xhtml.ErrorToken {
			break
		}
		switch tt {
		case xhtml.TextToken:
			b.WriteString(stdhtml.EscapeString(string(z.Text())))
		case xhtml.StartTagToken, xhtml.SelfClosingTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			switch {
			case a == atom.Br:
				b.WriteString("<br />")
			case passThroughTags[a]:
				b.WriteString("<" + a.String() + ">")
			}
		case xhtml.EndTagToken:
			name, _ := z.TagName()
			if a := atom.Lookup(name); passThroughTags[a] && a != atom.Br {
				b.WriteString("</" + a.String() + ">")
			}
		}
	}
	return b.String()
}
