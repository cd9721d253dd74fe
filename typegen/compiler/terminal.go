package compiler

import (
	"strings"

	"github.com/teranos/rpctypegen/typegen"
	"github.com/teranos/rpctypegen/typegen/util"
)

const (
	enumPrefix        = "ENUM:"
	insufficientLabel = "INSUFFICIENT"
	responseSuffix    = "Response"
)

// terminalTypes maps primitive labels to their type.
var terminalTypes = map[string]typegen.Primitive{
	"Decimal":     typegen.Decimal,
	"bool":        typegen.Bool,
	"String":      typegen.String,
	"hexadecimal": typegen.String,
}

// resolveTerminal maps a label to a type. context names the enclosing field
// or declaration; it names the enumeration an ENUM: label synthesizes and
// locates errors. The boolean result is true when the label was an
// enumeration, which is then declared under its own name and never aliased.
func resolveTerminal(context, label string, acc []typegen.Declaration) (typegen.TypeExpr, []typegen.Declaration, bool, error) {
	if prim, ok := terminalTypes[label]; ok {
		return prim, acc, false, nil
	}

	switch {
	case label == insufficientLabel:
		return nil, acc, false, annotationError(Insufficient, context, "")
	case strings.HasPrefix(label, enumPrefix):
		enum := terminalEnum(context, label)
		return typegen.Named{Name: enum.Name}, append(acc, enum), true, nil
	default:
		return nil, acc, false, annotationError(InvalidLabel, context, label)
	}
}

// terminalEnum builds `<context>Response` with one empty variant per listed
// value, in listed order. Variant names join the capitalized dash-separated
// pieces of the value; the value itself is kept as the wire name.
func terminalEnum(context, label string) typegen.TaggedUnion {
	values := strings.Split(strings.TrimPrefix(label, enumPrefix), ",")

	enum := typegen.TaggedUnion{
		Name:     context + responseSuffix,
		Variants: make([]typegen.Variant, 0, len(values)),
	}
	for _, value := range values {
		value = strings.TrimSpace(value)

		var name strings.Builder
		for _, piece := range strings.Split(value, "-") {
			name.WriteString(util.CapitalizeFirst(piece))
		}

		enum.Variants = append(enum.Variants, typegen.Variant{
			Name:     name.String(),
			WireName: value,
			Kind:     typegen.VariantEmpty,
		})
	}
	return enum
}
