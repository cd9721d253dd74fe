package typegen

import (
	"sort"

	"github.com/teranos/rpctypegen/errors"
)

// rendered pairs a declaration's text with its name.
type rendered struct {
	name string
	text string
}

// Emit renders mod with gen. Declarations are sorted by their rendered text
// and adjacent duplicates are dropped, so the output does not depend on the
// order they were synthesized in. Two different texts declaring the same
// name are a malformed schema.
func Emit(mod *Module, gen Generator) (string, error) {
	decls, err := RenderDeclarations(mod, gen)
	if err != nil {
		return "", err
	}
	return gen.GenerateModule(mod, decls), nil
}

// RenderDeclarations returns the sorted, deduplicated declaration texts of mod.
func RenderDeclarations(mod *Module, gen Generator) ([]string, error) {
	items := make([]rendered, 0, len(mod.Declarations))
	for _, d := range mod.Declarations {
		items = append(items, rendered{name: d.DeclName(), text: gen.GenerateDeclaration(mod, d)})
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].text < items[j].text })

	out := make([]string, 0, len(items))
	owner := make(map[string]string, len(items))
	for i, item := range items {
		if i > 0 && item.text == items[i-1].text {
			continue
		}
		if prev, ok := owner[item.name]; ok && prev != item.text {
			return nil, errors.WithHintf(
				errors.NewMalformedSchemaError("module %s: conflicting declarations for %s", mod.Name, item.name),
				"two annotations in %s synthesize different types under the same name", mod.SourceFile)
		}
		owner[item.name] = item.text
		out = append(out, item.text)
	}
	return out, nil
}
