package pipeline

import (
	"regexp"
	"strings"
)

// DefaultCodeLanguage tags fenced blocks whose source carries no language.
const DefaultCodeLanguage = "text"

var (
	// codeContainerPattern matches a <pre> container wrapping a <code> element.
	// Everything between <pre> and <code> (toolbars, copy buttons, language
	// captions) is discarded along with the container.
	codeContainerPattern = regexp.MustCompile(`(?s)<pre(?:\s[^>]*)?>.*?<code(?:\s[^>]*)?>(.*?)</code>.*?</pre>`)

	// languageClassPattern extracts <name> from class="... language-<name> ...".
	languageClassPattern = regexp.MustCompile(`class="[^"]*language-([^"\s]*)[^"]*"`)
)

// ConvertCodeBlocks rewrites each <pre><code> container into a fenced code
// block. The code element's content is copied verbatim; only the fence and
// the language tag are added. Text without a code container is unchanged.
func ConvertCodeBlocks(content string) string {
	return codeContainerPattern.ReplaceAllStringFunc(content, func(container string) string {
		code := codeContainerPattern.FindStringSubmatch(container)[1]
		return fence(codeLanguage(container), code)
	})
}

// codeLanguage returns the language tag declared in a code container.
func codeLanguage(container string) string {
	m := languageClassPattern.FindStringSubmatch(container)
	if m == nil || m[1] == "" {
		return DefaultCodeLanguage
	}
	return m[1]
}

// fence wraps code in a backtick fence tagged with language.
func fence(language, code string) string {
	var b strings.Builder
	b.Grow(len(code) + len(language) + 10)
	b.WriteString("\n```")
	b.WriteString(language)
	b.WriteString("\n")
	b.WriteString(code)
	if !strings.HasSuffix(code, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("```\n")
	return b.String()
}
