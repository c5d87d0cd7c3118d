package generator

import (
	"strings"
)

// OutputBuffer is the append-only sequence of declaration blocks that forms
// the generated artifact. It tracks emitted names so the same declaration is
// never emitted twice and so the materializer can tell which pending
// references are already satisfied in place.
type OutputBuffer struct {
	blocks []string
	names  map[string]bool
}

func NewOutputBuffer() *OutputBuffer {
	return &OutputBuffer{names: make(map[string]bool)}
}

// Append adds one declaration block. It reports false when a block with the
// same name was already appended.
func (b *OutputBuffer) Append(name, text string) bool {
	if b.names[name] {
		return false
	}
	b.names[name] = true
	b.blocks = append(b.blocks, text)
	return true
}

// Contains reports whether a declaration with the given name was emitted.
func (b *OutputBuffer) Contains(name string) bool {
	return b.names[name]
}

// Len returns the number of emitted blocks.
func (b *OutputBuffer) Len() int {
	return len(b.blocks)
}

// Render assembles the final artifact: banner, import lines, then each
// declaration block terminated by a blank line.
func (b *OutputBuffer) Render(banner string, importLines []string) []byte {
	var sb strings.Builder

	sb.WriteString(banner)
	if !strings.HasSuffix(banner, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	for _, line := range importLines {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	if len(importLines) > 0 {
		sb.WriteString("\n")
	}

	for _, block := range b.blocks {
		sb.WriteString(block)
		sb.WriteString("\n\n")
	}

	return []byte(sb.String())
}
