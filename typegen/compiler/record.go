package compiler

import (
	"reflect"
	"strings"

	"github.com/teranos/rpctypegen/typegen"
	"github.com/teranos/rpctypegen/typegen/schema"
	"github.com/teranos/rpctypegen/typegen/util"
)

// Field name conventions of quizface annotations.
const (
	wildcardKey      = "xxxx"
	optionPrefix     = "Option<"
	standalonePrefix = "alsoStandalone<"
	wrapperSuffix    = ">"
	keywordSuffix    = "_field"
)

// Standalone-or-verbose unions name their variants like the first two
// response variants.
const (
	flatVariant    = "Regular"
	verboseVariant = "Verbose"
)

// CaseKind selects the declaration shape a record compiles to.
type CaseKind int

const (
	// CaseRegular: a plain record
	CaseRegular CaseKind = iota
	// CaseAlsoStandalone: the response is either the bare value of one field
	// or the whole record
	CaseAlsoStandalone
	// CaseWildcardMap: the object is an open string-keyed map
	CaseWildcardMap
)

// Case is the outcome of compiling one object.
type Case struct {
	Kind CaseKind
	// Standalone is the captured field type for CaseAlsoStandalone
	Standalone typegen.TypeExpr
	// Inner is the map value type for CaseWildcardMap
	Inner typegen.TypeExpr
}

// handleFields compiles the members of obj in order. It returns the case,
// the record fields and acc extended with the declarations synthesized for
// field types.
func (c *Compiler) handleFields(name string, obj schema.Object, acc []typegen.Declaration) (Case, []typegen.Field, []typegen.Declaration, error) {
	var (
		rc     = Case{Kind: CaseRegular}
		fields []typegen.Field
		start  = acc
	)

	for _, member := range obj {
		if member.Name == wildcardKey {
			// An xxxx member is the whole payload: earlier members mean nothing
			inner, next, _, err := c.compileValue(name, member.Value, start)
			if err != nil {
				return rc, nil, next, err
			}
			return Case{Kind: CaseWildcardMap, Inner: inner}, nil, next, nil
		}

		field, standalone, nullable := c.fieldName(member.Name)

		fieldType, next, err := c.compileMember(name, util.SnakeToCamel(field.Ident), member.Value, acc)
		if err != nil {
			return rc, nil, next, err
		}
		acc = next

		if standalone && rc.Kind != CaseAlsoStandalone {
			// First standalone field wins
			rc = Case{Kind: CaseAlsoStandalone, Standalone: fieldType}
		}
		if nullable {
			fieldType = typegen.Optional{Elem: fieldType}
		}

		field.Type = fieldType
		fields = append(fields, field)
	}

	return rc, fields, acc, nil
}

// compileMember compiles the value of a field under context. When that
// would declare a name already taken by a different shape, the value is
// compiled again under parent+context instead.
func (c *Compiler) compileMember(parent, context string, v schema.Value, acc []typegen.Declaration) (typegen.TypeExpr, []typegen.Declaration, error) {
	t, next, _, err := c.compileValue(context, v, acc)
	if err != nil || !redeclares(next[len(acc):], acc) {
		return t, next, err
	}
	t, next, _, err = c.compileValue(parent+context, v, acc)
	return t, next, err
}

// redeclares reports whether any of added reuses the name of a different
// declaration in existing. Identical declarations are merged on output.
func redeclares(added, existing []typegen.Declaration) bool {
	for _, a := range added {
		for _, e := range existing {
			if a.DeclName() == e.DeclName() && !reflect.DeepEqual(a, e) {
				return true
			}
		}
	}
	return false
}

// fieldName strips the alsoStandalone<...> or Option<...> wrapper from a
// member name and derives a keyword-safe snake_case identifier. The wire
// name is recorded whenever it differs from the identifier.
func (c *Compiler) fieldName(raw string) (field typegen.Field, standalone, nullable bool) {
	wire := raw
	switch {
	case strings.HasPrefix(wire, standalonePrefix):
		wire = strings.TrimSuffix(strings.TrimPrefix(wire, standalonePrefix), wrapperSuffix)
		standalone = true
	case strings.HasPrefix(wire, optionPrefix):
		wire = strings.TrimSuffix(strings.TrimPrefix(wire, optionPrefix), wrapperSuffix)
		nullable = true
	}

	ident := util.CamelToSnake(wire)
	if c.keywords.Contains(ident) {
		ident += keywordSuffix
	}

	field.Ident = ident
	if ident != wire {
		field.WireName = wire
	}
	return field, standalone, nullable
}

// compileRecord compiles obj as the declaration name. Field declarations are
// appended to acc, followed by the record's own declaration unless obj is a
// wildcard map.
func (c *Compiler) compileRecord(name string, obj schema.Object, acc []typegen.Declaration) (Case, []typegen.Declaration, error) {
	rc, fields, acc, err := c.handleFields(name, obj, acc)
	if err != nil {
		return rc, acc, err
	}

	if decl := recordDeclaration(name, rc, fields); decl != nil {
		acc = append(acc, decl)
	}
	return rc, acc, nil
}

// recordDeclaration shapes collected fields according to the case.
// A wildcard map has no declaration of its own.
func recordDeclaration(name string, rc Case, fields []typegen.Field) typegen.Declaration {
	switch rc.Kind {
	case CaseAlsoStandalone:
		return typegen.TaggedUnion{
			Name: name,
			Variants: []typegen.Variant{
				{Name: flatVariant, Kind: typegen.VariantTuple, Type: rc.Standalone},
				{Name: verboseVariant, Kind: typegen.VariantRecord, Fields: fields},
			},
		}
	case CaseWildcardMap:
		return nil
	default:
		return typegen.Record{Name: name, Fields: fields}
	}
}
