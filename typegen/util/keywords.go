package util

// KeywordSet is a set of identifiers that may not be used verbatim in
// generated code. Membership is exact and case-sensitive.
type KeywordSet map[string]bool

// Contains reports whether word is reserved.
func (k KeywordSet) Contains(word string) bool {
	return k[word]
}

// RustKeywords holds strict, reserved and weak Rust keywords plus the
// primitive type names that would shadow std types in a module path.
var RustKeywords = KeywordSet{
	"abstract": true, "as": true, "async": true, "await": true, "become": true,
	"box": true, "break": true, "const": true, "continue": true, "crate": true,
	"do": true, "dyn": true, "else": true, "enum": true, "extern": true,
	"false": true, "final": true, "fn": true, "for": true, "gen": true,
	"if": true, "impl": true, "in": true, "let": true, "loop": true,
	"macro": true, "match": true, "mod": true, "move": true, "mut": true,
	"override": true, "priv": true, "pub": true, "ref": true, "return": true,
	"self": true, "Self": true, "static": true, "struct": true, "super": true,
	"trait": true, "true": true, "try": true, "type": true, "typeof": true,
	"union": true, "unsafe": true, "unsized": true, "use": true, "virtual": true,
	"where": true, "while": true, "yield": true,
}

// GoKeywords holds the Go keywords and the predeclared identifiers that
// generated code refers to.
var GoKeywords = KeywordSet{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true,
	"for": true, "func": true, "go": true, "goto": true, "if": true,
	"import": true, "interface": true, "map": true, "package": true,
	"range": true, "return": true, "select": true, "struct": true,
	"switch": true, "type": true, "var": true,
	"bool": true, "string": true, "json": true,
}

// PythonKeywords holds the Python keywords, the soft keywords and the
// dataclasses helper that generated class bodies call.
var PythonKeywords = KeywordSet{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true, "class": true,
	"continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true,
	"if": true, "import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,
	"match": true, "case": true, "type": true,
	"field": true,
}
