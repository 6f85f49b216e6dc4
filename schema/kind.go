package schema

// Kind identifies which case of the closed node union a Node is.
type Kind uint8

const (
	KindString Kind = iota + 1
	KindNumber
	KindBoolean
	KindBigInt
	KindNull
	KindAny
	KindLiteral
	KindEnum
	KindDate

	KindObject
	KindArray
	KindTuple
	KindRecord
	KindUnion
	KindDiscriminatedUnion
	KindIntersection

	KindOptional
	KindNullable
	KindDefault
	KindCatch
	KindBranded
	KindEffect
	KindPipeline
	KindLazy

	KindUpload
	KindFile
	KindDateIn
	KindDateOut
	KindRaw
)

var kindNames = map[Kind]string{
	KindString:             "string",
	KindNumber:             "number",
	KindBoolean:            "boolean",
	KindBigInt:             "bigint",
	KindNull:               "null",
	KindAny:                "any",
	KindLiteral:            "literal",
	KindEnum:               "enum",
	KindDate:               "date",
	KindObject:             "object",
	KindArray:              "array",
	KindTuple:              "tuple",
	KindRecord:             "record",
	KindUnion:              "union",
	KindDiscriminatedUnion: "discriminated-union",
	KindIntersection:       "intersection",
	KindOptional:           "optional",
	KindNullable:           "nullable",
	KindDefault:            "default",
	KindCatch:              "catch",
	KindBranded:            "branded",
	KindEffect:             "effect",
	KindPipeline:           "pipeline",
	KindLazy:               "lazy",
	KindUpload:             "upload",
	KindFile:               "file",
	KindDateIn:             "date-in",
	KindDateOut:            "date-out",
	KindRaw:                "raw",
}

// String returns the kind name, e.g. "discriminated-union".
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Kinds returns every built-in kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(kindNames))
	for k := KindString; k <= KindRaw; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// IsWrapper reports whether nodes of this kind have exactly one child.
func (k Kind) IsWrapper() bool {
	switch k {
	case KindOptional, KindNullable, KindDefault, KindCatch, KindBranded, KindEffect, KindLazy:
		return true
	}
	return false
}

// IsProprietary reports whether the kind is one of the direction-restricted
// leaf kinds.
func (k Kind) IsProprietary() bool {
	switch k {
	case KindUpload, KindFile, KindDateIn, KindDateOut, KindRaw:
		return true
	}
	return false
}

// Direction tells whether a schema is depicted for the request (input) or
// the response (output) side.
type Direction uint8

const (
	DirectionIn Direction = iota
	DirectionOut
)

// String returns "input" or "output".
func (d Direction) String() string {
	if d == DirectionOut {
		return "output"
	}
	return "input"
}

// EffectType distinguishes the flavours of effect nodes.
type EffectType uint8

const (
	// EffectRefinement validates without changing the value.
	EffectRefinement EffectType = iota
	// EffectTransform maps the parsed value to a new one.
	EffectTransform
	// EffectPreprocess maps the raw input before the inner schema parses it.
	EffectPreprocess
)

func (e EffectType) String() string {
	switch e {
	case EffectTransform:
		return "transform"
	case EffectPreprocess:
		return "preprocess"
	}
	return "refinement"
}

// FileType selects the encoding of a file node.
type FileType uint8

const (
	FileBinary FileType = iota
	FileBase64
	FileText
)
