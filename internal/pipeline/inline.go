package pipeline

import (
	"regexp"
	"strings"
)

// Inline formatting grammar. Only the exact tag spellings below are matched;
// anything else inside a paragraph is left for later stages or passes through.
var (
	// paragraphPattern matches a bare <p> container on a single line.
	// Paragraphs with attributes are not this shape and pass through.
	paragraphPattern = regexp.MustCompile(`<p>(.*?)</p>`)

	// boldPairPattern matches a complete bold element.
	boldPairPattern = regexp.MustCompile(`<(?:b|strong)>(.*?)</(?:b|strong)>`)

	// boldTagPattern matches an unpaired bold tag left by boldPairPattern.
	boldTagPattern = regexp.MustCompile(`</?(?:b|strong)>`)

	// italicTagPattern matches italic open and close tags.
	italicTagPattern = regexp.MustCompile(`</?(?:i|em)>`)
)

// Inline code markers. The padding keeps the backtick off adjacent words.
const (
	inlineCodeOpen  = "<code>"
	inlineCodeClose = "</code>"
	codeSpanOpen    = " `"
	codeSpanClose   = "` "
)

// FormatInline rewrites every <p> container into a Markdown paragraph:
// bold becomes **text**, italic becomes _text_ and inline code becomes a
// backtick span. Each paragraph is framed by a leading and trailing newline.
//
// The output contains none of the tag spellings the rules match, so a second
// application is a no-op on already converted text.
func FormatInline(content string) string {
	return paragraphPattern.ReplaceAllStringFunc(content, func(paragraph string) string {
		inner := paragraphPattern.FindStringSubmatch(paragraph)[1]
		return "\n" + formatInlineTags(inner) + "\n"
	})
}

// formatInlineTags applies the inline rules to a paragraph's inner markup.
func formatInlineTags(inner string) string {
	inner = boldPairPattern.ReplaceAllString(inner, "**${1}**")
	inner = boldTagPattern.ReplaceAllString(inner, "**")
	inner = italicTagPattern.ReplaceAllString(inner, "_")
	inner = strings.ReplaceAll(inner, inlineCodeOpen, codeSpanOpen)
	inner = strings.ReplaceAll(inner, inlineCodeClose, codeSpanClose)
	return inner
}
