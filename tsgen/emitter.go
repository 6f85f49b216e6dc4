package tsgen

import (
	"fmt"
	"strings"
)

// emitter builds TypeScript source with two-space indentation.
type emitter struct {
	buf    strings.Builder
	indent int
}

// Line writes a single line at the current indentation level.
func (e *emitter) Line(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	if line == "" {
		e.buf.WriteByte('\n')
		return
	}
	e.pad()
	e.buf.WriteString(line)
	e.buf.WriteByte('\n')
}

// Raw writes s without indentation or newline.
func (e *emitter) Raw(s string) {
	e.buf.WriteString(s)
}

func (e *emitter) Blank() {
	e.buf.WriteByte('\n')
}

// Block writes the line followed by " {" and increases the indentation.
func (e *emitter) Block(format string, args ...any) {
	e.pad()
	e.buf.WriteString(fmt.Sprintf(format, args...))
	e.buf.WriteString(" {\n")
	e.indent++
}

// EndBlock closes a block with "}" followed by suffix.
func (e *emitter) EndBlock(suffix string) {
	e.indent--
	e.pad()
	e.buf.WriteString("}")
	e.buf.WriteString(suffix)
	e.buf.WriteByte('\n')
}

func (e *emitter) pad() {
	for i := 0; i < e.indent; i++ {
		e.buf.WriteString("  ")
	}
}

func (e *emitter) String() string {
	return e.buf.String()
}
