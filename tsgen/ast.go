package tsgen

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Type is a node of the TypeScript type syntax.
type Type interface {
	// write prints the type inline. Object literals span several lines and
	// use the indentation of e.
	write(e *emitter)
}

// Keyword is a built-in type such as string or unknown.
type Keyword string

const (
	KeywordString    Keyword = "string"
	KeywordNumber    Keyword = "number"
	KeywordBigInt    Keyword = "bigint"
	KeywordBoolean   Keyword = "boolean"
	KeywordNull      Keyword = "null"
	KeywordUndefined Keyword = "undefined"
	KeywordAny       Keyword = "any"
	KeywordUnknown   Keyword = "unknown"
	KeywordNever     Keyword = "never"
	KeywordObject    Keyword = "object"
)

func (k Keyword) write(e *emitter) { e.Raw(string(k)) }

// Literal is a literal type: a string, number, boolean or null value.
type Literal struct {
	Value any
}

func (l Literal) write(e *emitter) {
	data, err := json.Marshal(l.Value)
	if err != nil {
		e.Raw(string(KeywordUnknown))
		return
	}
	e.Raw(string(data))
}

// Ref refers to a named type, optionally with type arguments.
type Ref struct {
	Name string
	Args []Type
}

func (r Ref) write(e *emitter) {
	e.Raw(r.Name)
	if len(r.Args) == 0 {
		return
	}
	e.Raw("<")
	for i, arg := range r.Args {
		if i > 0 {
			e.Raw(", ")
		}
		arg.write(e)
	}
	e.Raw(">")
}

type Union struct {
	Types []Type
}

func (u Union) write(e *emitter) { writeJoined(e, u.Types, " | ", isIntersectionOrUnion) }

type Intersection struct {
	Types []Type
}

func (i Intersection) write(e *emitter) { writeJoined(e, i.Types, " & ", isUnion) }

func writeJoined(e *emitter, types []Type, sep string, needsParens func(Type) bool) {
	if len(types) == 0 {
		e.Raw(string(KeywordNever))
		return
	}
	for i, t := range types {
		if i > 0 {
			e.Raw(sep)
		}
		writeGrouped(e, t, needsParens(t))
	}
}

func writeGrouped(e *emitter, t Type, parens bool) {
	if parens {
		e.Raw("(")
		t.write(e)
		e.Raw(")")
		return
	}
	t.write(e)
}

func isUnion(t Type) bool {
	_, ok := t.(Union)
	return ok
}

func isIntersectionOrUnion(t Type) bool {
	_, ok := t.(Intersection)
	return ok || isUnion(t)
}

// Array is T[].
type Array struct {
	Elem Type
}

func (a Array) write(e *emitter) {
	writeGrouped(e, a.Elem, isIntersectionOrUnion(a.Elem))
	e.Raw("[]")
}

// Tuple is [A, B, ...R[]].
type Tuple struct {
	Items []Type
	Rest  Type
}

func (t Tuple) write(e *emitter) {
	e.Raw("[")
	for i, item := range t.Items {
		if i > 0 {
			e.Raw(", ")
		}
		item.write(e)
	}
	if t.Rest != nil {
		if len(t.Items) > 0 {
			e.Raw(", ")
		}
		e.Raw("...")
		Array{Elem: t.Rest}.write(e)
	}
	e.Raw("]")
}

// Property is a member of an object literal type.
type Property struct {
	Name       string
	Type       Type
	Optional   bool
	Comment    string
	Deprecated bool
}

// Object is an object literal type.
type Object struct {
	Props []Property
}

func (o Object) write(e *emitter) {
	if len(o.Props) == 0 {
		e.Raw("{}")
		return
	}
	e.Raw("{\n")
	e.indent++
	writeProps(e, o.Props)
	e.indent--
	e.pad()
	e.Raw("}")
}

func writeProps(e *emitter, props []Property) {
	for _, p := range props {
		writeComment(e, p.Comment, p.Deprecated)
		e.pad()
		e.Raw(propertyKey(p.Name))
		if p.Optional {
			e.Raw("?")
		}
		e.Raw(": ")
		p.Type.write(e)
		e.Raw(";\n")
	}
}

// writeComment writes a JSDoc block for a description and deprecation mark.
func writeComment(e *emitter, comment string, deprecated bool) {
	var lines []string
	if comment = strings.TrimSpace(comment); comment != "" {
		lines = strings.Split(comment, "\n")
	}
	if deprecated {
		lines = append(lines, "@deprecated")
	}
	switch len(lines) {
	case 0:
		return
	case 1:
		e.Line("/** %s */", lines[0])
		return
	}
	e.Line("/**")
	for _, line := range lines {
		if line == "" {
			e.Line(" *")
		} else {
			e.Line(" * %s", line)
		}
	}
	e.Line(" */")
}

// propertyKey quotes names that are not valid identifiers.
func propertyKey(name string) string {
	if name == "" {
		return `""`
	}
	for i, r := range name {
		letter := r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '_' || r == '$'
		if !letter && (i == 0 || r < '0' || r > '9') {
			return strconv.Quote(name)
		}
	}
	return name
}

// Print renders a type as TypeScript source.
func Print(t Type) string {
	var e emitter
	t.write(&e)
	return e.String()
}
