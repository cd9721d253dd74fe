package typegen

import (
	"strings"

	"github.com/teranos/rpctypegen/typegen/util"
)

// TypeExpr is a compiled type reference: a primitive, a named declaration,
// or a container of another TypeExpr. Generators decide how each spells.
type TypeExpr interface {
	isTypeExpr()
}

// Primitive is one of the terminal types an annotation label maps to.
type Primitive int

const (
	// Decimal is an arbitrary-precision number (zcashd amounts, heights, ...)
	Decimal Primitive = iota
	// Bool is a boolean
	Bool
	// String is a string; hexadecimal labels map here too
	String
)

func (p Primitive) String() string {
	switch p {
	case Decimal:
		return "Decimal"
	case Bool:
		return "bool"
	default:
		return "String"
	}
}

// Named refers to a declaration in the same module.
type Named struct {
	Name string
}

// Seq is a homogeneous sequence.
type Seq struct {
	Elem TypeExpr
}

// Map is an open string-keyed map.
type Map struct {
	Value TypeExpr
}

// Optional is a nullable value.
type Optional struct {
	Elem TypeExpr
}

func (Primitive) isTypeExpr() {}
func (Named) isTypeExpr()     {}
func (Seq) isTypeExpr()       {}
func (Map) isTypeExpr()       {}
func (Optional) isTypeExpr()  {}

// Declaration is a named type definition emitted into a module.
type Declaration interface {
	DeclName() string
	isDeclaration()
}

// Field is a record field or a record-like variant field.
type Field struct {
	// Ident is the snake_case identifier, already keyword-safe
	Ident string
	// WireName is the JSON member name. Empty when it equals Ident.
	WireName string
	Type     TypeExpr
}

// JSONName returns the member name the field is (de)serialized under.
func (f Field) JSONName() string {
	if f.WireName != "" {
		return f.WireName
	}
	return f.Ident
}

// Record is a struct with public fields.
type Record struct {
	Name   string
	Fields []Field
}

// VariantKind says what a TaggedUnion variant carries.
type VariantKind int

const (
	// VariantEmpty carries nothing (enumeration member)
	VariantEmpty VariantKind = iota
	// VariantTuple carries a single unnamed value
	VariantTuple
	// VariantRecord carries named fields
	VariantRecord
)

// Variant is one alternative of a TaggedUnion.
type Variant struct {
	Name string
	// WireName is the serialized tag. Empty when it equals Name.
	WireName string
	Kind     VariantKind
	// Type is set for VariantTuple
	Type TypeExpr
	// Fields is set for VariantRecord
	Fields []Field
}

// JSONName returns the tag the variant is (de)serialized under.
func (v Variant) JSONName() string {
	if v.WireName != "" {
		return v.WireName
	}
	return v.Name
}

// TaggedUnion is a sum type. A union whose variants are all empty is an
// enumeration.
type TaggedUnion struct {
	Name     string
	Variants []Variant
}

// IsEnum reports whether every variant is empty.
func (u TaggedUnion) IsEnum() bool {
	for _, v := range u.Variants {
		if v.Kind != VariantEmpty {
			return false
		}
	}
	return len(u.Variants) > 0
}

// Alias names another type expression.
type Alias struct {
	Name   string
	Target TypeExpr
}

// Unit is a declaration with no fields: an RPC call with no structured
// response.
type Unit struct {
	Name string
}

func (r Record) DeclName() string      { return r.Name }
func (u TaggedUnion) DeclName() string { return u.Name }
func (a Alias) DeclName() string       { return a.Name }
func (u Unit) DeclName() string        { return u.Name }

func (Record) isDeclaration()      {}
func (TaggedUnion) isDeclaration() {}
func (Alias) isDeclaration()       {}
func (Unit) isDeclaration()        {}

// Module holds every declaration synthesized from one annotation file.
type Module struct {
	// Name is the namespace name: the method name, suffixed when it collides
	// with a reserved word of the target language
	Name string
	// Method is the RPC method name (annotation file base name)
	Method string
	// SourceFile is the annotation file path, for logs and headers
	SourceFile string
	// Declarations in synthesis order, before sorting and deduplication
	Declarations []Declaration
}

// QualifiedName prefixes a declaration name of m with the PascalCase method
// name unless it already starts with it. Back-ends that put every module in
// one namespace use it to keep modules apart.
func (m *Module) QualifiedName(name string) string {
	prefix := util.SnakeToCamel(m.Method)
	if strings.HasPrefix(name, prefix) {
		return name
	}
	return prefix + name
}
