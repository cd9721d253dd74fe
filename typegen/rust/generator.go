package rust

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/teranos/rpctypegen/typegen"
	"github.com/teranos/rpctypegen/typegen/util"
)

// derive is attached to every struct and enum so responses round-trip
// through serde.
const derive = "#[derive(Debug, serde::Deserialize, serde::Serialize)]\n"

// Generator implements typegen.Generator for Rust
type Generator struct{}

// NewGenerator creates a new Rust generator
func NewGenerator() *Generator {
	return &Generator{}
}

// Language returns "rust"
func (g *Generator) Language() string {
	return "rust"
}

// FileExtension returns "rs"
func (g *Generator) FileExtension() string {
	return "rs"
}

// Keywords returns the Rust reserved words
func (g *Generator) Keywords() util.KeywordSet {
	return util.RustKeywords
}

// LineComment returns "//"
func (g *Generator) LineComment() string {
	return "//"
}

// Preamble returns nothing: the artifact is a flat list of modules.
func (g *Generator) Preamble() string {
	return ""
}

// TypeMapping defines how primitives spell in Rust
var TypeMapping = map[typegen.Primitive]string{
	typegen.Decimal: "rust_decimal::Decimal",
	typegen.Bool:    "bool",
	typegen.String:  "String",
}

// TypeExpr renders a type reference.
func TypeExpr(t typegen.TypeExpr) string {
	switch t := t.(type) {
	case typegen.Primitive:
		return TypeMapping[t]
	case typegen.Named:
		return t.Name
	case typegen.Seq:
		return "Vec<" + TypeExpr(t.Elem) + ">"
	case typegen.Map:
		return "std::collections::HashMap<String, " + TypeExpr(t.Value) + ">"
	case typegen.Optional:
		return "Option<" + TypeExpr(t.Elem) + ">"
	default:
		panic(fmt.Sprintf("rust: unhandled type expression %T", t))
	}
}

// GenerateDeclaration renders one declaration (implements typegen.Generator)
func (g *Generator) GenerateDeclaration(_ *typegen.Module, decl typegen.Declaration) string {
	switch d := decl.(type) {
	case typegen.Record:
		return GenerateStruct(d)
	case typegen.TaggedUnion:
		return GenerateEnum(d)
	case typegen.Alias:
		return fmt.Sprintf("pub type %s = %s;", d.Name, TypeExpr(d.Target))
	case typegen.Unit:
		return derive + fmt.Sprintf("pub struct %s;", d.Name)
	default:
		panic(fmt.Sprintf("rust: unhandled declaration %T", decl))
	}
}

// GenerateModule wraps declarations in `pub mod <name> { ... }`
func (g *Generator) GenerateModule(mod *typegen.Module, decls []string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("pub mod %s {\n", mod.Name))
	for i, decl := range decls {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(indent(decl, "    "))
		sb.WriteString("\n")
	}
	sb.WriteString("}\n")

	return sb.String()
}

// GenerateStruct creates a Rust struct with public fields
func GenerateStruct(r typegen.Record) string {
	var sb strings.Builder

	sb.WriteString(derive)
	sb.WriteString(fmt.Sprintf("pub struct %s {\n", r.Name))
	writeFields(&sb, r.Fields, "    ", "pub ")
	sb.WriteString("}")

	return sb.String()
}

// GenerateEnum creates a Rust enum. Variants keep their listed order;
// record-like variant fields carry no visibility.
func GenerateEnum(u typegen.TaggedUnion) string {
	var sb strings.Builder

	sb.WriteString(derive)
	sb.WriteString(fmt.Sprintf("pub enum %s {\n", u.Name))

	for _, v := range u.Variants {
		if v.WireName != "" {
			sb.WriteString(fmt.Sprintf("    #[serde(rename = %s)]\n", Quote(v.WireName)))
		}
		switch v.Kind {
		case typegen.VariantEmpty:
			sb.WriteString(fmt.Sprintf("    %s,\n", v.Name))
		case typegen.VariantTuple:
			sb.WriteString(fmt.Sprintf("    %s(%s),\n", v.Name, TypeExpr(v.Type)))
		case typegen.VariantRecord:
			sb.WriteString(fmt.Sprintf("    %s {\n", v.Name))
			writeFields(&sb, v.Fields, "        ", "")
			sb.WriteString("    },\n")
		}
	}

	sb.WriteString("}")

	return sb.String()
}

func writeFields(sb *strings.Builder, fields []typegen.Field, prefix, visibility string) {
	for _, f := range fields {
		// Add serde rename if the wire name differs from the Rust field name
		if f.WireName != "" {
			sb.WriteString(fmt.Sprintf("%s#[serde(rename = %s)]\n", prefix, Quote(f.WireName)))
		}
		sb.WriteString(fmt.Sprintf("%s%s%s: %s,\n", prefix, visibility, f.Ident, TypeExpr(f.Type)))
	}
}

// Quote spells s as a Rust string literal.
func Quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if unicode.IsControl(r) {
				fmt.Fprintf(&sb, `\u{%x}`, r)
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
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
