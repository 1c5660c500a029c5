// Package pipeline implements the transcript-to-Markdown conversion stages.
//
// Every stage is a pure string function built on a small, named grammar of
// precompiled patterns. Input that does not match a rule passes through
// unchanged, so no stage can fail. The stages are:
//   - Escape: backslash-escapes Markdown punctuation in literal text
//   - FormatInline: <p> containers with bold, italic and inline code
//   - Denest: bounded collapse of nested text-only <span> wrappers
//   - ConvertCodeBlocks: <pre><code> containers to fenced blocks
//   - Clean: wrapper removal, list attachment, entity decoding
//   - Assemble: heading, speaker labels and separators
//
// The order is fixed by BlockStages and DocumentStages. A separate
// GoldmarkConverter renders finished Markdown to an HTML preview.
package pipeline
