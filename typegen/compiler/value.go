package compiler

import (
	"github.com/teranos/rpctypegen/errors"
	"github.com/teranos/rpctypegen/typegen"
	"github.com/teranos/rpctypegen/typegen/schema"
	"github.com/teranos/rpctypegen/typegen/util"
)

// Compiler turns annotation values into declarations. It holds no state
// between calls; declarations are threaded through every call as an
// accumulator and returned to the caller.
type Compiler struct {
	keywords util.KeywordSet
}

// New creates a Compiler that renames fields and modules colliding with
// keywords.
func New(keywords util.KeywordSet) *Compiler {
	if keywords == nil {
		keywords = util.KeywordSet{}
	}
	return &Compiler{keywords: keywords}
}

// compileValue classifies v and returns its type. Declarations synthesized on
// the way are appended to acc. context names the declaration v would become
// and locates errors. The boolean result reports a terminal enumeration.
func (c *Compiler) compileValue(context string, v schema.Value, acc []typegen.Declaration) (typegen.TypeExpr, []typegen.Declaration, bool, error) {
	switch val := v.(type) {
	case schema.Label:
		return resolveTerminal(context, string(val), acc)

	case schema.Array:
		if len(val) == 0 {
			return nil, acc, false, annotationError(EmptyArray, context, "")
		}
		// The last element is the representative element schema
		elem, next, _, err := c.compileValue(context, val[len(val)-1], acc)
		if err != nil {
			return nil, next, false, err
		}
		return typegen.Seq{Elem: elem}, next, false, nil

	case schema.Object:
		rc, next, err := c.compileRecord(context, val, acc)
		if err != nil {
			return nil, next, false, err
		}
		if rc.Kind == CaseWildcardMap {
			return typegen.Map{Value: rc.Inner}, next, false, nil
		}
		return typegen.Named{Name: context}, next, false, nil

	case schema.Scalar:
		return nil, acc, false, annotationError(UnexpectedKind, context, val.Kind())

	default:
		return nil, acc, false, errors.AssertionFailedf("unhandled annotation value %T at %s", v, context)
	}
}
