// Package schema holds the annotation value model: the parsed form of a
// quizface annotation file, before any type synthesis.
//
// A Value is one of Label, Array, Object or Scalar. Labels are the string
// terminals ("Decimal", "ENUM:a,b", "INSUFFICIENT"); Scalar exists only so
// the compiler can report numbers, booleans and nulls as invalid instead of
// the decoder silently dropping them.
package schema

import (
	"sort"
	"strings"
)

// Value is a node of an annotation document. It is never mutated after
// decoding.
type Value interface {
	// Kind names the node kind for error messages.
	Kind() string
	isValue()
}

// Label is a string terminal.
type Label string

// Array is a JSON array. Annotation arrays carry one representative element.
type Array []Value

// Object is a JSON object with its members sorted by name.
type Object []Member

// Member is one name/value pair of an Object.
type Member struct {
	Name  string
	Value Value
}

// ScalarKind distinguishes the JSON scalars a schema may not contain.
type ScalarKind int

const (
	ScalarNumber ScalarKind = iota
	ScalarBool
	ScalarNull
)

// Scalar is a number, boolean or null. Raw holds its source text.
type Scalar struct {
	Type ScalarKind
	Raw  string
}

func (Label) Kind() string  { return "string" }
func (Array) Kind() string  { return "array" }
func (Object) Kind() string { return "object" }

func (s Scalar) Kind() string {
	switch s.Type {
	case ScalarNumber:
		return "number"
	case ScalarBool:
		return "boolean"
	default:
		return "null"
	}
}

func (Label) isValue()  {}
func (Array) isValue()  {}
func (Object) isValue() {}
func (Scalar) isValue() {}

// NewObject builds an Object from members in any order. Members are sorted
// by name (byte order) so iteration order never depends on the source
// document. For duplicate names the last occurrence wins.
func NewObject(members []Member) Object {
	byName := make(map[string]int, len(members))
	obj := make(Object, 0, len(members))
	for _, m := range members {
		if i, ok := byName[m.Name]; ok {
			obj[i] = m
			continue
		}
		byName[m.Name] = len(obj)
		obj = append(obj, m)
	}
	sort.Slice(obj, func(i, j int) bool { return obj[i].Name < obj[j].Name })
	return obj
}

// Get returns the value of the named member.
func (o Object) Get(name string) (Value, bool) {
	i := sort.Search(len(o), func(i int) bool { return o[i].Name >= name })
	if i < len(o) && o[i].Name == name {
		return o[i].Value, true
	}
	return nil, false
}

// String renders v as compact JSON-like text, for logs and error messages.
func String(v Value) string {
	var sb strings.Builder
	writeValue(&sb, v)
	return sb.String()
}

func writeValue(sb *strings.Builder, v Value) {
	switch t := v.(type) {
	case Label:
		sb.WriteString(`"` + string(t) + `"`)
	case Array:
		sb.WriteString("[")
		for i, e := range t {
			if i > 0 {
				sb.WriteString(",")
			}
			writeValue(sb, e)
		}
		sb.WriteString("]")
	case Object:
		sb.WriteString("{")
		for i, m := range t {
			if i > 0 {
				sb.WriteString(",")
			}
			sb.WriteString(`"` + m.Name + `":`)
			writeValue(sb, m.Value)
		}
		sb.WriteString("}")
	case Scalar:
		sb.WriteString(t.Raw)
	}
}
