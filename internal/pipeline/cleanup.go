package pipeline

import (
	"regexp"
	"strings"
)

var (
	// messageWrapperOpen matches the container the chat UI puts around every
	// rendered assistant answer. The theme variant (dark or light) differs;
	// both are stripped the same way.
	messageWrapperOpen = regexp.MustCompile(`<div class="markdown prose w-full break-words (?:dark|light):prose-invert (?:dark|light)[^"]*">`)

	// wrapperClose matches a closing </div> together with one optional line
	// break on each side.
	wrapperClose = regexp.MustCompile(`\r?\n?</div>\r?\n?`)

	// labelBeforeList matches a speaker label whose line-break marker is
	// immediately followed by a list. The marker would detach the list from
	// the label with an empty line once rendered.
	labelBeforeList = regexp.MustCompile(`(\*\*[^*\n]+:\*\*) ` + LineBreakMarker + `\n(<(?:ol|ul)\b)`)
)

// entityDecoder turns the character references left by HTML serialization
// back into literal characters. A single pass never decodes its own output,
// so "&amp;lt;" becomes "&lt;" and not "<".
var entityDecoder = strings.NewReplacer(
	"&gt;", ">",
	"&lt;", "<",
	"&quot;", `"`,
	"&#34;", `"`,
	"&#39;", "'",
	"&nbsp;", "\u00a0",
	"&amp;", "&",
)

// Clean removes the structural leftovers of the extraction step and decodes
// entities. Steps run in a fixed order; entity decoding is last because every
// earlier rule relies on literal angle brackets only ever being tag delimiters.
func Clean(content string) string {
	content = StripMessageWrappers(content)
	content = AttachListsToLabels(content)
	content = DecodeEntities(content)
	return content
}

// StripMessageWrappers drops the answer container's opening tag and collapses
// each closing </div> (with its surrounding line breaks) to one newline.
func StripMessageWrappers(content string) string {
	content = messageWrapperOpen.ReplaceAllString(content, "")
	return wrapperClose.ReplaceAllString(content, "\n")
}

// AttachListsToLabels removes the line-break marker between a speaker label
// and a list that directly follows it.
func AttachListsToLabels(content string) string {
	return labelBeforeList.ReplaceAllString(content, "$1\n$2")
}

// DecodeEntities decodes &gt;, &lt;, &amp;, &nbsp; and the quote references.
func DecodeEntities(content string) string {
	return entityDecoder.Replace(content)
}
