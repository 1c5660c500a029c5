// Package chat2md converts rendered chat transcripts to Markdown.
//
// # Quick Start
//
// Read a saved chat page, convert it, and write it out:
//
//	f, _ := os.Open("chat.html")
//	defer f.Close()
//
//	exp := &chat2md.Exporter{
//	    Source:   chat2md.NewHTMLSource(f),
//	    Delivery: &chat2md.FileDelivery{Dir: "out"},
//	}
//	doc, err := exp.Export(ctx)
//	if errors.Is(err, chat2md.ErrNoMessages) {
//	    // nothing to export
//	}
//
// # Conversion Pipeline
//
// Each message block is first processed on its own:
//
//  1. Escaping of Markdown-significant characters in literal text
//     (_ * ^ ~ # > |), never inside tags or <pre>/<code>
//  2. Inline formatting of <p> paragraphs (bold, italic, inline code)
//
// The blocks are then laid out under a "# <title>" heading with speaker
// labels and "***" separators, and the whole document goes through:
//
//  3. Span de-nesting (bounded number of passes)
//  4. Fenced code block conversion
//  5. Inline formatting again, for paragraphs exposed by step 4
//  6. Structural cleanup and entity decoding
//
// # Sources
//
// HTMLSource parses a saved page with goquery. LiveSource drives headless
// Chrome through go-rod and reads the DOM the browser rendered:
//
//	b := chat2md.NewBrowser(chat2md.BrowserConfig{})
//	defer b.Close()
//	src := &chat2md.LiveSource{Browser: b, URL: "https://example.com/share/abc"}
//
// For many pages at once, BrowserPool hands out lazily started browsers.
//
// # Selectors
//
// Message blocks are located with CSS selectors. DefaultSelectors matches
// the chat UI this tool was written for; any field left empty in a custom
// Selectors value falls back to the default.
package chat2md
