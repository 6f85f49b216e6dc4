package tsgen

import (
	"strings"

	"github.com/goccy/go-json"
)

// Statement is a top level construct of a generated file.
type Statement interface {
	emit(e *emitter)
}

func exportPrefix(exported bool) string {
	if exported {
		return "export "
	}
	return ""
}

// Interface declares an interface with the given members.
type Interface struct {
	Name     string
	Exported bool
	Comment  string
	Props    []Property
}

func (d Interface) emit(e *emitter) {
	writeComment(e, d.Comment, false)
	if len(d.Props) == 0 {
		e.Line("%sinterface %s {}", exportPrefix(d.Exported), d.Name)
		return
	}
	e.Block("%sinterface %s", exportPrefix(d.Exported), d.Name)
	writeProps(e, d.Props)
	e.EndBlock("")
}

// Alias declares a type alias.
type Alias struct {
	Name     string
	Exported bool
	Comment  string
	Type     Type
}

func (d Alias) emit(e *emitter) {
	writeComment(e, d.Comment, false)
	e.pad()
	e.Raw(exportPrefix(d.Exported) + "type " + d.Name + " = ")
	d.Type.write(e)
	e.Raw(";\n")
}

// Declare creates an interface when t is an object literal and a type alias
// otherwise.
func Declare(name string, t Type, exported bool) Statement {
	if obj, ok := t.(Object); ok {
		return Interface{Name: name, Exported: exported, Props: obj.Props}
	}
	return Alias{Name: name, Exported: exported, Type: t}
}

// ConstEntry is a key of a constant object.
type ConstEntry struct {
	Key   string
	Value any
}

// Const declares a constant object whose values are encoded as JSON.
type Const struct {
	Name     string
	Exported bool
	Entries  []ConstEntry
}

func (d Const) emit(e *emitter) {
	if len(d.Entries) == 0 {
		e.Line("%sconst %s = {} as const;", exportPrefix(d.Exported), d.Name)
		return
	}
	e.Block("%sconst %s =", exportPrefix(d.Exported), d.Name)
	for _, entry := range d.Entries {
		data, err := json.Marshal(entry.Value)
		if err != nil {
			data = []byte("null")
		}
		e.Line("%s: %s,", propertyKey(entry.Key), data)
	}
	e.EndBlock(" as const;")
}

// Code is verbatim source, one line per element.
type Code []string

func (c Code) emit(e *emitter) {
	for _, line := range c {
		e.Line("%s", line)
	}
}

// Comment is a block comment.
type Comment string

func (c Comment) emit(e *emitter) {
	e.Line("/*")
	for _, line := range strings.Split(string(c), "\n") {
		e.Line("%s", line)
	}
	e.Line("*/")
}

// File is a generated source file.
type File struct {
	Statements []Statement
}

// Add appends statements.
func (f *File) Add(s ...Statement) {
	f.Statements = append(f.Statements, s...)
}

// String prints the file. Statements are separated by blank lines.
func (f *File) String() string {
	var e emitter
	for i, s := range f.Statements {
		if i > 0 {
			e.Blank()
		}
		s.emit(&e)
	}
	return e.String()
}
