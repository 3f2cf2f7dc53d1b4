// Package xmlutil builds XML-delimited prompt sections from untrusted text.
package xmlutil

import (
	"encoding/xml"
	"strings"
)

// Escape replaces characters with special meaning in XML so that text from
// the API cannot close or open prompt sections.
func Escape(s string) string {
	var buf strings.Builder
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		// EscapeText only fails on invalid UTF-8; return original on error.
		return s
	}
	return buf.String()
}

// Element wraps escaped content in <tag>...</tag>. tag is trusted.
func Element(tag, content string) string {
	var b strings.Builder
	b.Grow(len(tag)*2 + len(content) + 5)
	b.WriteByte('<')
	b.WriteString(tag)
	b.WriteByte('>')
	b.WriteString(Escape(content))
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteByte('>')
	return b.String()
}
