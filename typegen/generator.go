// Package typegen turns quizface RPC response annotations into typed
// declarations for a target language.
//
// # Architecture
//
// The package uses a two-layer design:
//  1. Language-agnostic compilation (compiler/) interprets an annotation file
//     into a Module: a tree of Record, TaggedUnion, Alias and Unit
//     declarations over TypeExpr references.
//  2. Language-specific generators (rust/, golang/, python/) spell that tree
//     as text.
//
// Emit sits between the two: it renders every declaration, sorts and
// deduplicates by rendered text and wraps the result in the generator's
// module syntax. Deduplication is purely textual, so two declarations that
// differ only in comments or attributes are distinct.
//
// # Implementing a New Generator
//
//  1. Create package: typegen/<lang>/generator.go
//  2. Implement the Generator interface (see below)
//  3. Add the language to generatorFor() in cmd/rpctypegen/cmd
//  4. Add a default formatter in am/defaults.go
package typegen

import (
	"strings"

	"github.com/teranos/rpctypegen/typegen/util"
)

// Disclaimer opens every generated artifact.
const Disclaimer = `// Procedurally generated response types. rpctypegen is in early alpha,
// and output is subject to change at any time.
`

// Generator defines the interface for language-specific back-ends.
type Generator interface {
	// Language returns the language name (e.g., "rust", "go")
	Language() string

	// FileExtension returns the artifact file extension (e.g., "rs", "go")
	FileExtension() string

	// Keywords returns the identifiers that need a suffix before use as a
	// field or module name
	Keywords() util.KeywordSet

	// LineComment returns the token that starts a line comment ("//", "#")
	LineComment() string

	// Preamble is written once after the Disclaimer (package clause, lints)
	Preamble() string

	// GenerateDeclaration renders one declaration of mod
	GenerateDeclaration(mod *Module, decl Declaration) string

	// GenerateModule wraps already rendered, sorted declarations
	GenerateModule(mod *Module, decls []string) string
}

// Header returns the Disclaimer in gen's comment syntax followed by the
// preamble of gen.
func Header(gen Generator) string {
	disclaimer := Disclaimer
	if c := gen.LineComment(); c != "//" {
		disclaimer = strings.ReplaceAll(Disclaimer, "// ", c+" ")
	}
	return disclaimer + gen.Preamble()
}
