package golang

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/teranos/rpctypegen/typegen"
	"github.com/teranos/rpctypegen/typegen/util"
)

// DefaultPackage is the package clause of generated Go artifacts.
const DefaultPackage = "rpcresponse"

// Generator implements typegen.Generator for Go. All modules share one Go
// package, so every declaration of a module is prefixed with the
// PascalCase method name unless it already starts with it.
type Generator struct {
	pkg string
}

// NewGenerator creates a new Go generator for package pkg
func NewGenerator(pkg string) *Generator {
	if pkg == "" {
		pkg = DefaultPackage
	}
	return &Generator{pkg: pkg}
}

// Language returns "go"
func (g *Generator) Language() string {
	return "go"
}

// FileExtension returns "go"
func (g *Generator) FileExtension() string {
	return "go"
}

// Keywords returns the Go reserved words
func (g *Generator) Keywords() util.KeywordSet {
	return util.GoKeywords
}

// LineComment returns "//"
func (g *Generator) LineComment() string {
	return "//"
}

// Preamble returns the package clause. Imports are left to the formatter.
func (g *Generator) Preamble() string {
	return fmt.Sprintf("\npackage %s\n", g.pkg)
}

// TypeMapping defines how primitives spell in Go
var TypeMapping = map[typegen.Primitive]string{
	typegen.Decimal: "json.Number",
	typegen.Bool:    "bool",
	typegen.String:  "string",
}

// TypeName returns the Go name of a declaration of mod.
func TypeName(mod *typegen.Module, name string) string {
	return mod.QualifiedName(name)
}

// TypeExpr renders a type reference inside mod.
func TypeExpr(mod *typegen.Module, t typegen.TypeExpr) string {
	switch t := t.(type) {
	case typegen.Primitive:
		return TypeMapping[t]
	case typegen.Named:
		return TypeName(mod, t.Name)
	case typegen.Seq:
		return "[]" + TypeExpr(mod, t.Elem)
	case typegen.Map:
		return "map[string]" + TypeExpr(mod, t.Value)
	case typegen.Optional:
		return "*" + TypeExpr(mod, t.Elem)
	default:
		panic(fmt.Sprintf("golang: unhandled type expression %T", t))
	}
}

// GenerateDeclaration renders one declaration (implements typegen.Generator)
func (g *Generator) GenerateDeclaration(mod *typegen.Module, decl typegen.Declaration) string {
	name := TypeName(mod, decl.DeclName())

	switch d := decl.(type) {
	case typegen.Record:
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("type %s struct {\n", name))
		writeFields(&sb, mod, d.Fields, "\t")
		sb.WriteString("}")
		return sb.String()
	case typegen.TaggedUnion:
		if d.IsEnum() {
			return generateEnum(name, d)
		}
		return generateUnion(mod, name, d)
	case typegen.Alias:
		return fmt.Sprintf("type %s = %s", name, TypeExpr(mod, d.Target))
	case typegen.Unit:
		return fmt.Sprintf("type %s struct{}", name)
	default:
		panic(fmt.Sprintf("golang: unhandled declaration %T", decl))
	}
}

// GenerateModule introduces the declarations of mod with a comment banner
func (g *Generator) GenerateModule(mod *typegen.Module, decls []string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("\n// %s: response types of the %s RPC\n\n", mod.Name, mod.Method))
	sb.WriteString(strings.Join(decls, "\n\n"))
	sb.WriteString("\n")

	return sb.String()
}

// generateEnum spells an enumeration as a string type with one constant per
// variant, in listed order.
func generateEnum(name string, u typegen.TaggedUnion) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("type %s string\n\n", name))
	sb.WriteString("const (\n")
	for _, v := range u.Variants {
		sb.WriteString(fmt.Sprintf("\t%s%s %s = %q\n", name, v.Name, name, v.JSONName()))
	}
	sb.WriteString(")")

	return sb.String()
}

// generateUnion spells a tagged union in serde's external tagging: an
// object with exactly one member named after the variant. Each variant is
// an optional field.
func generateUnion(mod *typegen.Module, name string, u typegen.TaggedUnion) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("type %s struct {\n", name))
	for _, v := range u.Variants {
		tag := jsonTag(v.JSONName(), ",omitempty")
		switch v.Kind {
		case typegen.VariantEmpty:
			sb.WriteString(fmt.Sprintf("\t%s *struct{} %s\n", v.Name, tag))
		case typegen.VariantTuple:
			sb.WriteString(fmt.Sprintf("\t%s *%s %s\n", v.Name, TypeExpr(mod, v.Type), tag))
		case typegen.VariantRecord:
			sb.WriteString(fmt.Sprintf("\t%s *struct {\n", v.Name))
			writeFields(&sb, mod, v.Fields, "\t\t")
			sb.WriteString(fmt.Sprintf("\t} %s\n", tag))
		}
	}
	sb.WriteString("}")

	return sb.String()
}

func writeFields(sb *strings.Builder, mod *typegen.Module, fields []typegen.Field, prefix string) {
	for _, f := range fields {
		sb.WriteString(fmt.Sprintf("%s%s %s %s\n",
			prefix, util.SnakeToCamel(f.Ident), TypeExpr(mod, f.Type), jsonTag(f.JSONName(), "")))
	}
}

// jsonTag renders the struct tag of a json key. A tag that cannot sit in a
// raw string literal is spelled as an interpreted one.
func jsonTag(key, opts string) string {
	tag := "json:" + strconv.Quote(key+opts)
	if strings.ContainsRune(tag, '`') {
		return strconv.Quote(tag)
	}
	return "`" + tag + "`"
}
