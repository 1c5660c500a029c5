package pipeline

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// EscapeSet lists the characters Markdown reads as structure in free text.
const EscapeSet = `_*^~#>|`

// literalEscaper prefixes every EscapeSet character with a backslash. A
// literal backslash is doubled first so that it cannot swallow the escape of
// the character after it.
var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	`_`, `\_`,
	`*`, `\*`,
	`^`, `\^`,
	`~`, `\~`,
	`#`, `\#`,
	`>`, `\>`,
	`|`, `\|`,
)

// markupTextEscaper is literalEscaper for text taken from serialized markup,
// where a literal ">" usually arrives entity-encoded. The entity is kept so
// that structural matching in later stages still sees no bare angle bracket;
// the Cleaner decodes it to "\>" at the very end.
var markupTextEscaper = strings.NewReplacer(
	`\`, `\\`,
	`_`, `\_`,
	`*`, `\*`,
	`^`, `\^`,
	`~`, `\~`,
	`#`, `\#`,
	`>`, `\>`,
	`|`, `\|`,
	`&gt;`, `\&gt;`,
)

// EscapeLiteral escapes plain text that contains no markup (e.g. a title).
func EscapeLiteral(text string) string {
	return literalEscaper.Replace(text)
}

// Escape escapes EscapeSet characters, and backslashes, in the text content
// of markup.
//
// Tags, comments and doctypes are copied byte-for-byte. Text nested inside
// <pre> or <code> is copied verbatim as well: it ends up in a fenced block or
// an inline code span, where a backslash would render literally.
func Escape(markup string) string {
	var b strings.Builder
	b.Grow(len(markup) + len(markup)/8)

	z := html.NewTokenizer(strings.NewReader(markup))
	codeDepth := 0

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// io.EOF is the only error a strings.Reader can produce.
			break
		}

		// Raw must be consumed before TagName, which lower-cases the buffer in place.
		raw := string(z.Raw())

		switch tt {
		case html.TextToken:
			if codeDepth > 0 {
				b.WriteString(raw)
			} else {
				b.WriteString(markupTextEscaper.Replace(raw))
			}
		case html.StartTagToken:
			b.WriteString(raw)
			if isCodeElement(z) {
				codeDepth++
			}
		case html.EndTagToken:
			b.WriteString(raw)
			if isCodeElement(z) && codeDepth > 0 {
				codeDepth--
			}
		default:
			b.WriteString(raw)
		}
	}

	return b.String()
}

// isCodeElement reports whether the current tag token is <pre> or <code>.
func isCodeElement(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	switch atom.Lookup(name) {
	case atom.Pre, atom.Code:
		return true
	}
	return false
}
