package pipeline

import "regexp"

// MaxDenestPasses bounds the wrapper collapse loop. Transcripts observed in
// the wild nest highlighting spans at most a few levels deep; anything deeper
// than this keeps its outer layers.
const MaxDenestPasses = 5

// spanWrapperPattern matches a classed <span> that contains only text.
// Because the body may not contain '<', only the innermost span of a nest
// matches, so each pass peels exactly one layer.
var spanWrapperPattern = regexp.MustCompile(`<span class="[^"]*">([^<]*?)</span>`)

// Denest collapses nested text-only span wrappers to their bare text,
// running at most passes replacement passes. A nest of depth d is fully
// collapsed when d <= passes; otherwise d-passes layers remain.
// The loop stops early once a pass changes nothing.
func Denest(content string, passes int) string {
	for i := 0; i < passes; i++ {
		next := spanWrapperPattern.ReplaceAllString(content, "$1")
		if next == content {
			break
		}
		content = next
	}
	return content
}
