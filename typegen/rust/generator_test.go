package rust

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/rpctypegen/typegen"
)

// =============================================================================
// Test helpers
// =============================================================================

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}

// =============================================================================
// Type mapping tests
// =============================================================================

func TestTypeExpr(t *testing.T) {
	tests := []struct {
		name     string
		expr     typegen.TypeExpr
		expected string
	}{
		{"decimal", typegen.Decimal, "rust_decimal::Decimal"},
		{"bool", typegen.Bool, "bool"},
		{"string", typegen.String, "String"},
		{"named", typegen.Named{Name: "Peers"}, "Peers"},
		{"seq", typegen.Seq{Elem: typegen.String}, "Vec<String>"},
		{"optional", typegen.Optional{Elem: typegen.Decimal}, "Option<rust_decimal::Decimal>"},
		{
			name:     "map of named",
			expr:     typegen.Map{Value: typegen.Named{Name: "Addr"}},
			expected: "std::collections::HashMap<String, Addr>",
		},
		{
			name:     "nested",
			expr:     typegen.Optional{Elem: typegen.Seq{Elem: typegen.Map{Value: typegen.Bool}}},
			expected: "Option<Vec<std::collections::HashMap<String, bool>>>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := TypeExpr(tt.expr)
			if result != tt.expected {
				t.Errorf("TypeExpr() = %q, want %q", result, tt.expected)
			}
		})
	}
}

// =============================================================================
// Declaration tests
// =============================================================================

func TestGenerateStruct(t *testing.T) {
	result := GenerateStruct(typegen.Record{
		Name: "GetinfoResponse",
		Fields: []typegen.Field{
			{Ident: "proxy", Type: typegen.Optional{Elem: typegen.String}},
			{Ident: "unlocked_until", WireName: "unlockedUntil", Type: typegen.Decimal},
		},
	})

	expected := `#[derive(Debug, serde::Deserialize, serde::Serialize)]
pub struct GetinfoResponse {
    pub proxy: Option<String>,
    #[serde(rename = "unlockedUntil")]
    pub unlocked_until: rust_decimal::Decimal,
}`
	assert.Equal(t, expected, result)
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"unlockedUntil", `"unlockedUntil"`},
		{`say "hi"`, `"say \"hi\""`},
		{`C:\path`, `"C:\\path"`},
		{"a\nb\tc", `"a\nb\tc"`},
		{"bell\x07", `"bell\u{7}"`},
		{"größe", `"größe"`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, Quote(tt.in))
		})
	}
}

func TestGenerateStruct_EscapesWireName(t *testing.T) {
	result := GenerateStruct(typegen.Record{
		Name: "OddResponse",
		Fields: []typegen.Field{
			{Ident: "quoted", WireName: `quo"ted\`, Type: typegen.Bool},
		},
	})
	assert.Contains(t, result, `    #[serde(rename = "quo\"ted\\")]`+"\n")

	result = GenerateEnum(typegen.TaggedUnion{
		Name:     "StateResponse",
		Variants: []typegen.Variant{{Name: "Odd", WireName: `a"b`}},
	})
	assert.Contains(t, result, `    #[serde(rename = "a\"b")]`+"\n")
}

func TestGenerateEnum_Terminal(t *testing.T) {
	result := GenerateEnum(typegen.TaggedUnion{
		Name: "StatusResponse",
		Variants: []typegen.Variant{
			{Name: "Pending", WireName: "pending"},
			{Name: "NotFound", WireName: "not-found"},
		},
	})

	if !contains(result, "pub enum StatusResponse {") {
		t.Error("Expected enum declaration")
	}

	// Listed order is kept
	pending := strings.Index(result, `#[serde(rename = "pending")]`)
	notFound := strings.Index(result, `#[serde(rename = "not-found")]`)
	require.NotEqual(t, -1, pending)
	require.NotEqual(t, -1, notFound)
	assert.Less(t, pending, notFound)

	if !contains(result, "    NotFound,\n") {
		t.Error("Expected NotFound variant")
	}
}

func TestGenerateEnum_ResponseVariants(t *testing.T) {
	result := GenerateEnum(typegen.TaggedUnion{
		Name: "GetaddressdeltasResponse",
		Variants: []typegen.Variant{
			{Name: "Regular", Kind: typegen.VariantTuple, Type: typegen.Seq{Elem: typegen.Named{Name: "Deltas"}}},
			{Name: "Verbose", Kind: typegen.VariantRecord, Fields: []typegen.Field{
				{Ident: "type_field", WireName: "type", Type: typegen.String},
			}},
		},
	})

	expected := `#[derive(Debug, serde::Deserialize, serde::Serialize)]
pub enum GetaddressdeltasResponse {
    Regular(Vec<Deltas>),
    Verbose {
        #[serde(rename = "type")]
        type_field: String,
    },
}`
	assert.Equal(t, expected, result)
}

func TestGenerateDeclaration_AliasAndUnit(t *testing.T) {
	g := NewGenerator()

	alias := g.GenerateDeclaration(nil, typegen.Alias{
		Name:   "GetblockcountResponse",
		Target: typegen.Decimal,
	})
	assert.Equal(t, "pub type GetblockcountResponse = rust_decimal::Decimal;", alias)

	unit := g.GenerateDeclaration(nil, typegen.Unit{Name: "StopResponse"})
	assert.Equal(t, "#[derive(Debug, serde::Deserialize, serde::Serialize)]\npub struct StopResponse;", unit)
}

// =============================================================================
// Module tests
// =============================================================================

func TestGenerateModule(t *testing.T) {
	g := NewGenerator()
	mod := &typegen.Module{Name: "type_mod", Method: "type"}

	result := g.GenerateModule(mod, []string{"pub type A = bool;", "pub type B = String;"})

	expected := `pub mod type_mod {
    pub type A = bool;

    pub type B = String;
}
`
	assert.Equal(t, expected, result)
}

func TestGenerator_Metadata(t *testing.T) {
	g := NewGenerator()
	assert.Equal(t, "rust", g.Language())
	assert.Equal(t, "rs", g.FileExtension())
	assert.Empty(t, g.Preamble())
	assert.True(t, g.Keywords().Contains("type"))
	assert.False(t, g.Keywords().Contains("getinfo"))
}
