package buffer

import (
	"html"
	"strings"
)

// HTMLBuffer accumulates rendered markup and tracks its byte length.
type HTMLBuffer struct {
	parts []string
	size  int
}

// New creates a new HTMLBuffer.
func New() *HTMLBuffer {
	return &HTMLBuffer{
		parts: make([]string, 0, 64),
	}
}

// Write appends trusted markup to the buffer.
func (b *HTMLBuffer) Write(s string) {
	if s == "" {
		return
	}
	b.parts = append(b.parts, s)
	b.size += len(s)
}

// WriteEscaped appends text with &, <, >, ' and " entity-escaped.
func (b *HTMLBuffer) WriteEscaped(s string) {
	b.Write(html.EscapeString(s))
}

// Open writes a start tag. attrs are name/value pairs; values are escaped
// and pairs with an empty value are skipped.
func (b *HTMLBuffer) Open(tag string, attrs ...string) {
	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		if attrs[i+1] == "" {
			continue
		}
		sb.WriteByte(' ')
		sb.WriteString(attrs[i])
		sb.WriteString(`="`)
		sb.WriteString(html.EscapeString(attrs[i+1]))
		sb.WriteByte('"')
	}
	sb.WriteByte('>')
	b.Write(sb.String())
}

// Close writes an end tag.
func (b *HTMLBuffer) Close(tag string) {
	b.Write("</" + tag + ">")
}

// Len returns the current byte length.
func (b *HTMLBuffer) Len() int {
	return b.size
}

// TrailingNewlineCount counts trailing newline characters in the buffer.
func (b *HTMLBuffer) TrailingNewlineCount() int {
	count := 0
	for i := len(b.parts) - 1; i >= 0; i-- {
		part := b.parts[i]
		for j := len(part) - 1; j >= 0; j-- {
			if part[j] != '\n' {
				return count
			}
			count++
		}
	}
	return count
}

// EnsureNewline writes a newline unless the buffer is empty or already ends
// with one. Block elements are separated this way.
func (b *HTMLBuffer) EnsureNewline() {
	if b.size > 0 && b.TrailingNewlineCount() == 0 {
		b.Write("\n")
	}
}

// String returns the accumulated markup.
func (b *HTMLBuffer) String() string {
	if len(b.parts) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.Grow(b.size)
	for _, p := range b.parts {
		sb.WriteString(p)
	}
	return sb.String()
}

// Reset clears the buffer.
func (b *HTMLBuffer) Reset() {
	b.parts = b.parts[:0]
	b.size = 0
}
