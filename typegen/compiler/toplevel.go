package compiler

import (
	"github.com/teranos/rpctypegen/errors"
	"github.com/teranos/rpctypegen/typegen"
	"github.com/teranos/rpctypegen/typegen/schema"
	"github.com/teranos/rpctypegen/typegen/util"
)

const (
	moduleSuffix = "_mod"
	// entrySuffix names the value type of a top-level wildcard map
	entrySuffix = "Entry"
)

// responseVariants names the alternative response shapes of a method,
// in the order quizface lists them.
var responseVariants = []string{"Regular", "Verbose", "VeryVerbose"}

// CompileFile compiles the annotation of one RPC method into a module.
// root is the whole annotation document, which lists one schema per
// response shape of the method.
func (c *Compiler) CompileFile(method, sourceFile string, root schema.Value) (*typegen.Module, error) {
	elems, ok := root.(schema.Array)
	if !ok {
		return nil, errors.WithHint(
			errors.NewMalformedSchemaError("%s: top-level value is %s, not an array", sourceFile, root.Kind()),
			"quizface annotations list the response shapes of a method in an array")
	}

	mod := &typegen.Module{
		Name:       c.moduleName(method),
		Method:     method,
		SourceFile: sourceFile,
	}

	base := util.SnakeToCamel(method)
	name := base + responseSuffix

	var (
		decls []typegen.Declaration
		err   error
	)
	switch n := len(elems); {
	case n == 0:
		decls = []typegen.Declaration{typegen.Unit{Name: name}}
	case n == 1:
		decls, err = c.compileSingle(base, name, elems[0])
	case n <= len(responseVariants):
		decls, err = c.compileVariants(base, name, elems)
	default:
		err = errors.NewMalformedSchemaError("%s: too many response variants (%d, at most %d)",
			sourceFile, n, len(responseVariants))
	}
	if err != nil {
		return nil, err
	}

	mod.Declarations = decls
	return mod, nil
}

// moduleName keeps the method name as the module name unless the target
// language reserves it.
func (c *Compiler) moduleName(method string) string {
	if c.keywords.Contains(method) {
		return method + moduleSuffix
	}
	return method
}

// compileSingle handles a method with exactly one response shape.
func (c *Compiler) compileSingle(base, name string, v schema.Value) ([]typegen.Declaration, error) {
	if obj, ok := v.(schema.Object); ok {
		context := name
		if _, wildcard := obj.Get(wildcardKey); wildcard {
			// The map payload cannot share the name of the alias to the map
			context = base + entrySuffix
		}
		rc, decls, err := c.compileRecord(context, obj, nil)
		if err != nil {
			return nil, err
		}
		if rc.Kind == CaseWildcardMap {
			decls = append(decls, typegen.Alias{Name: name, Target: typegen.Map{Value: rc.Inner}})
		}
		return decls, nil
	}

	target, decls, enum, err := c.compileValue(base, v, nil)
	if err != nil {
		return nil, err
	}
	if !enum {
		decls = append(decls, typegen.Alias{Name: name, Target: target})
	}
	return decls, nil
}

// compileVariants handles a method with two or three response shapes by
// declaring one tagged union with a variant per shape.
func (c *Compiler) compileVariants(base, name string, elems schema.Array) ([]typegen.Declaration, error) {
	var decls []typegen.Declaration
	union := typegen.TaggedUnion{Name: name}

	for i, elem := range elems {
		variant := typegen.Variant{Name: responseVariants[i]}
		context := base + variant.Name

		obj, ok := elem.(schema.Object)
		if !ok {
			payload, next, _, err := c.compileValue(context, elem, decls)
			if err != nil {
				return nil, err
			}
			decls = next
			variant.Kind = typegen.VariantTuple
			variant.Type = payload
			union.Variants = append(union.Variants, variant)
			continue
		}

		rc, fields, next, err := c.handleFields(context, obj, decls)
		if err != nil {
			return nil, err
		}
		decls = next

		switch rc.Kind {
		case CaseRegular:
			variant.Kind = typegen.VariantRecord
			variant.Fields = fields
		case CaseWildcardMap:
			variant.Kind = typegen.VariantTuple
			variant.Type = typegen.Map{Value: rc.Inner}
		case CaseAlsoStandalone:
			decls = append(decls, recordDeclaration(context, rc, fields))
			variant.Kind = typegen.VariantTuple
			variant.Type = typegen.Named{Name: context}
		}
		union.Variants = append(union.Variants, variant)
	}

	return append(decls, union), nil
}
