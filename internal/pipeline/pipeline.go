package pipeline

import (
	"context"
	"fmt"
)

// Stage is one named text transformation. Apply must be a pure function.
type Stage struct {
	Name  string
	Apply func(string) string
}

// BlockStages returns the stages run on each message's raw markup before
// assembly. Escaping comes first so that no dialect punctuation produced by
// a later rule is ever escaped.
func BlockStages() []Stage {
	return []Stage{
		{Name: "escape", Apply: Escape},
		{Name: "inline", Apply: FormatInline},
	}
}

// DocumentStages returns the stages run on the assembled transcript.
// The inline formatter runs again after code block conversion to reach
// paragraphs that were only exposed once their container was rewritten.
func DocumentStages(denestPasses int) []Stage {
	if denestPasses < 1 {
		denestPasses = MaxDenestPasses
	}
	return []Stage{
		{Name: "denest", Apply: func(s string) string { return Denest(s, denestPasses) }},
		{Name: "codeblocks", Apply: ConvertCodeBlocks},
		{Name: "inline", Apply: FormatInline},
		{Name: "clean", Apply: Clean},
	}
}

// Run applies stages in order, feeding each output to the next.
// Cancellation is checked between stages; a stage itself always completes.
func Run(ctx context.Context, stages []Stage, content string) (string, error) {
	for _, s := range stages {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("stage %s: %w", s.Name, err)
		}
		content = s.Apply(content)
	}
	return content, nil
}
