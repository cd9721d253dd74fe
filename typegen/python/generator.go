package python

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/teranos/rpctypegen/typegen"
	"github.com/teranos/rpctypegen/typegen/util"
)

// Generator implements typegen.Generator for Python. Records become
// dataclasses and enumerations become (str, Enum) classes. All modules share
// one Python module, so declarations are qualified with the method name.
type Generator struct{}

// NewGenerator creates a new Python generator
func NewGenerator() *Generator {
	return &Generator{}
}

// Language returns "python"
func (g *Generator) Language() string {
	return "python"
}

// FileExtension returns "py"
func (g *Generator) FileExtension() string {
	return "py"
}

// Keywords returns the Python reserved words
func (g *Generator) Keywords() util.KeywordSet {
	return util.PythonKeywords
}

// LineComment returns "#"
func (g *Generator) LineComment() string {
	return "#"
}

// Preamble returns the imports every artifact may need. Postponed
// annotations let fields refer to classes declared further down.
func (g *Generator) Preamble() string {
	return `
from __future__ import annotations

from dataclasses import dataclass, field
from decimal import Decimal
from enum import Enum
from typing import Any, TypeAlias
`
}

// TypeMapping defines how primitives spell in Python
var TypeMapping = map[typegen.Primitive]string{
	typegen.Decimal: "Decimal",
	typegen.Bool:    "bool",
	typegen.String:  "str",
}

// TypeExpr renders a type reference inside mod.
func TypeExpr(mod *typegen.Module, t typegen.TypeExpr) string {
	switch t := t.(type) {
	case typegen.Primitive:
		return TypeMapping[t]
	case typegen.Named:
		return mod.QualifiedName(t.Name)
	case typegen.Seq:
		return "list[" + TypeExpr(mod, t.Elem) + "]"
	case typegen.Map:
		return "dict[str, " + TypeExpr(mod, t.Value) + "]"
	case typegen.Optional:
		return TypeExpr(mod, t.Elem) + " | None"
	default:
		panic(fmt.Sprintf("python: unhandled type expression %T", t))
	}
}

// GenerateDeclaration renders one declaration (implements typegen.Generator)
func (g *Generator) GenerateDeclaration(mod *typegen.Module, decl typegen.Declaration) string {
	name := mod.QualifiedName(decl.DeclName())

	switch d := decl.(type) {
	case typegen.Record:
		return GenerateDataclass(mod, name, d.Fields)
	case typegen.TaggedUnion:
		if d.IsEnum() {
			return GenerateEnum(name, d)
		}
		return generateUnion(mod, name, d)
	case typegen.Alias:
		// Quoted so the target may be declared further down
		return fmt.Sprintf("%s: TypeAlias = %s", name, strconv.Quote(TypeExpr(mod, d.Target)))
	case typegen.Unit:
		return fmt.Sprintf("@dataclass\nclass %s:\n    pass", name)
	default:
		panic(fmt.Sprintf("python: unhandled declaration %T", decl))
	}
}

// GenerateModule introduces the declarations of mod with a comment banner
func (g *Generator) GenerateModule(mod *typegen.Module, decls []string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("\n\n# %s: response types of the %s RPC\n\n\n", mod.Name, mod.Method))
	sb.WriteString(strings.Join(decls, "\n\n\n"))
	sb.WriteString("\n")

	return sb.String()
}

// GenerateDataclass creates a Python dataclass. Nullable fields default to
// None and come after the required ones, as dataclasses require.
func GenerateDataclass(mod *typegen.Module, name string, fields []typegen.Field) string {
	attrs := make([]attribute, 0, len(fields))
	for _, f := range fields {
		_, optional := f.Type.(typegen.Optional)
		attrs = append(attrs, attribute{
			ident:    f.Ident,
			wire:     f.WireName,
			typ:      TypeExpr(mod, f.Type),
			nullable: optional,
		})
	}
	return dataclass(name, nil, attrs)
}

// GenerateEnum creates a (str, Enum) class with one member per variant, in
// listed order. Members spell the variant name in SCREAMING_SNAKE_CASE and
// repeated members are dropped.
func GenerateEnum(name string, u typegen.TaggedUnion) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("class %s(str, Enum):\n", name))

	seen := make(map[string]bool, len(u.Variants))
	for _, v := range u.Variants {
		member := memberName(v.Name)
		if seen[member] {
			continue
		}
		seen[member] = true
		sb.WriteString(fmt.Sprintf("    %s = %s\n", member, strconv.Quote(v.JSONName())))
	}

	return strings.TrimRight(sb.String(), "\n")
}

// generateUnion spells a tagged union in serde's external tagging: an
// object with exactly one member named after the variant. Each variant is
// an attribute defaulting to None; record-like variants get a nested
// dataclass.
func generateUnion(mod *typegen.Module, name string, u typegen.TaggedUnion) string {
	var (
		nested []string
		attrs  []attribute
	)

	for _, v := range u.Variants {
		attr := attribute{ident: v.Name, wire: v.WireName, nullable: true}
		switch v.Kind {
		case typegen.VariantEmpty:
			attr.typ = "dict[str, Any] | None"
		case typegen.VariantTuple:
			attr.typ = TypeExpr(mod, v.Type) + " | None"
		case typegen.VariantRecord:
			class := v.Name + "Fields"
			nested = append(nested, GenerateDataclass(mod, class, v.Fields))
			attr.typ = name + "." + class + " | None"
		}
		attrs = append(attrs, attr)
	}

	return dataclass(name, nested, attrs)
}

// attribute is one rendered dataclass field.
type attribute struct {
	ident    string
	wire     string
	typ      string
	nullable bool
}

// dataclass renders a dataclass with nested classes first, then attributes.
func dataclass(name string, nested []string, attrs []attribute) string {
	var sb strings.Builder

	sb.WriteString("@dataclass\n")
	sb.WriteString(fmt.Sprintf("class %s:\n", name))
	if len(nested) == 0 && len(attrs) == 0 {
		sb.WriteString("    pass")
		return sb.String()
	}
	for _, n := range nested {
		sb.WriteString(indent(n, "    "))
		sb.WriteString("\n\n")
	}

	sort.SliceStable(attrs, func(i, j int) bool {
		return !attrs[i].nullable && attrs[j].nullable
	})
	for _, a := range attrs {
		sb.WriteString(fmt.Sprintf("    %s: %s", a.ident, a.typ))
		switch {
		case a.wire != "" && a.nullable:
			sb.WriteString(fmt.Sprintf(" = field(default=None, metadata={\"json\": %s})", strconv.Quote(a.wire)))
		case a.wire != "":
			sb.WriteString(fmt.Sprintf(" = field(metadata={\"json\": %s})", strconv.Quote(a.wire)))
		case a.nullable:
			sb.WriteString(" = None")
		}
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

// memberName turns a PascalCase variant name into an enum member name.
func memberName(variant string) string {
	member := strings.ToUpper(util.CamelToSnake(variant))
	if member == "" || unicode.IsDigit(rune(member[0])) {
		member = "V_" + member
	}
	return member
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
