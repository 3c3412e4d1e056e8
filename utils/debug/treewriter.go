// Package debug renders indented human readable dumps stored in debug
// reports.
package debug

import (
	"bytes"
	"fmt"
	"strconv"
)

const indent = "  "

type TreeWriter struct {
	buf bytes.Buffer
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{}
}

func (tw *TreeWriter) String() string {
	return tw.buf.String()
}

func (tw *TreeWriter) Bytes() []byte {
	return tw.buf.Bytes()
}

func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.pad(depth)
	fmt.Fprintf(&tw.buf, format, args...)
	tw.buf.WriteByte('\n')
}

// Field writes "label: value". Strings are quoted unless empty, so that
// blanks and control characters stay visible.
func (tw *TreeWriter) Field(depth int, label string, value any) {
	tw.pad(depth)
	tw.buf.WriteString(label)
	tw.buf.WriteString(": ")
	switch v := value.(type) {
	case string:
		tw.buf.WriteString(encodeText(v))
	default:
		fmt.Fprint(&tw.buf, v)
	}
	tw.buf.WriteByte('\n')
}

func (tw *TreeWriter) pad(depth int) {
	for range depth {
		tw.buf.WriteString(indent)
	}
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
