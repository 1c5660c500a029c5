package pipeline

import "strings"

// Transcript layout markers.
const (
	// LineBreakMarker ends a speaker label line.
	LineBreakMarker = "<br>"

	// MessageSeparator precedes every message except the first.
	MessageSeparator = "***\n\n"
)

// Turn is one speaker's already converted message text.
type Turn struct {
	Speaker string
	Text    string
}

// Assemble lays out turns under a level-one heading, in the given order:
//
//	# <title>
//
//	**User:** <br>
//	<text>
//
//	***
//
//	**Assistant:** <br>
//	<text>
//
// The title is written as given; callers escape it beforehand.
func Assemble(title string, turns []Turn) string {
	var b strings.Builder

	b.WriteString("# ")
	b.WriteString(title)
	b.WriteString("\n\n")

	for i, t := range turns {
		if i > 0 {
			b.WriteString(MessageSeparator)
		}
		b.WriteString("**")
		b.WriteString(t.Speaker)
		b.WriteString(":** ")
		b.WriteString(LineBreakMarker)
		b.WriteString("\n")
		b.WriteString(strings.TrimSpace(t.Text))
		b.WriteString("\n\n")
	}

	return b.String()
}
