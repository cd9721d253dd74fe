package golang

import (
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/rpctypegen/typegen"
)

var getblock = &typegen.Module{Name: "getblock", Method: "getblock"}

func TestTypeName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"GetblockResponse", "GetblockResponse"},
		{"GetblockVerbose", "GetblockVerbose"},
		{"Tx", "GetblockTx"},
		{"StatusResponse", "GetblockStatusResponse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TypeName(getblock, tt.name))
		})
	}
}

func TestTypeExpr(t *testing.T) {
	tests := []struct {
		name     string
		expr     typegen.TypeExpr
		expected string
	}{
		{"decimal", typegen.Decimal, "json.Number"},
		{"bool", typegen.Bool, "bool"},
		{"string", typegen.String, "string"},
		{"named", typegen.Named{Name: "Tx"}, "GetblockTx"},
		{"seq", typegen.Seq{Elem: typegen.String}, "[]string"},
		{"map", typegen.Map{Value: typegen.Named{Name: "Tx"}}, "map[string]GetblockTx"},
		{"optional", typegen.Optional{Elem: typegen.Decimal}, "*json.Number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TypeExpr(getblock, tt.expr))
		})
	}
}

func TestGenerateDeclaration_Record(t *testing.T) {
	g := NewGenerator("")
	result := g.GenerateDeclaration(getblock, typegen.Record{
		Name: "GetblockResponse",
		Fields: []typegen.Field{
			{Ident: "block_hash", WireName: "blockHash", Type: typegen.String},
			{Ident: "tx", Type: typegen.Seq{Elem: typegen.Named{Name: "Tx"}}},
		},
	})

	expected := "type GetblockResponse struct {\n" +
		"\tBlockHash string `json:\"blockHash\"`\n" +
		"\tTx []GetblockTx `json:\"tx\"`\n" +
		"}"
	assert.Equal(t, expected, result)
}

func TestGenerateDeclaration_Enum(t *testing.T) {
	g := NewGenerator("")
	result := g.GenerateDeclaration(getblock, typegen.TaggedUnion{
		Name: "GetblockResponse",
		Variants: []typegen.Variant{
			{Name: "Main", WireName: "main"},
			{Name: "NotFound", WireName: "not-found"},
		},
	})

	expected := "type GetblockResponse string\n\n" +
		"const (\n" +
		"\tGetblockResponseMain GetblockResponse = \"main\"\n" +
		"\tGetblockResponseNotFound GetblockResponse = \"not-found\"\n" +
		")"
	assert.Equal(t, expected, result)
}

func TestGenerateDeclaration_Union(t *testing.T) {
	g := NewGenerator("")
	result := g.GenerateDeclaration(getblock, typegen.TaggedUnion{
		Name: "GetblockResponse",
		Variants: []typegen.Variant{
			{Name: "Regular", Kind: typegen.VariantTuple, Type: typegen.String},
			{Name: "Verbose", Kind: typegen.VariantRecord, Fields: []typegen.Field{
				{Ident: "type_field", WireName: "type", Type: typegen.Optional{Elem: typegen.Bool}},
			}},
		},
	})

	expected := "type GetblockResponse struct {\n" +
		"\tRegular *string `json:\"Regular,omitempty\"`\n" +
		"\tVerbose *struct {\n" +
		"\t\tTypeField *bool `json:\"type\"`\n" +
		"\t} `json:\"Verbose,omitempty\"`\n" +
		"}"
	assert.Equal(t, expected, result)
}

func TestGenerateDeclaration_AliasAndUnit(t *testing.T) {
	g := NewGenerator("")

	alias := g.GenerateDeclaration(getblock, typegen.Alias{Name: "GetblockResponse", Target: typegen.Decimal})
	assert.Equal(t, "type GetblockResponse = json.Number", alias)

	unit := g.GenerateDeclaration(getblock, typegen.Unit{Name: "GetblockResponse"})
	assert.Equal(t, "type GetblockResponse struct{}", unit)
}

func TestGeneratedFileParses(t *testing.T) {
	g := NewGenerator("zcash")
	mod := &typegen.Module{
		Name:   "getpeerinfo",
		Method: "getpeerinfo",
		Declarations: []typegen.Declaration{
			typegen.Record{Name: "Peer", Fields: []typegen.Field{{Ident: "addr", Type: typegen.String}}},
			typegen.Alias{Name: "GetpeerinfoResponse", Target: typegen.Seq{Elem: typegen.Named{Name: "Peer"}}},
			typegen.TaggedUnion{Name: "ChainResponse", Variants: []typegen.Variant{{Name: "Main", WireName: "main"}}},
		},
	}

	decls, err := typegen.RenderDeclarations(mod, g)
	require.NoError(t, err)

	src := typegen.Disclaimer + g.Preamble() + g.GenerateModule(mod, decls)
	assert.True(t, strings.Contains(src, "package zcash\n"))

	_, err = parser.ParseFile(token.NewFileSet(), "rpc_response_types.go", src, parser.ParseComments)
	require.NoError(t, err)
}

func TestGeneratedTagsKeepWireNames(t *testing.T) {
	g := NewGenerator("")
	wires := []string{"blockHash", `quo"ted`, "back`tick", `back\slash`}

	var fields []typegen.Field
	for i, wire := range wires {
		fields = append(fields, typegen.Field{Ident: "f" + strconv.Itoa(i), WireName: wire, Type: typegen.String})
	}
	mod := &typegen.Module{
		Name:   "getblock",
		Method: "getblock",
		Declarations: []typegen.Declaration{
			typegen.Record{Name: "GetblockResponse", Fields: fields},
		},
	}

	decls, err := typegen.RenderDeclarations(mod, g)
	require.NoError(t, err)
	src := g.Preamble() + g.GenerateModule(mod, decls)

	file, err := parser.ParseFile(token.NewFileSet(), "rpc_response_types.go", src, 0)
	require.NoError(t, err)

	var got []string
	ast.Inspect(file, func(n ast.Node) bool {
		field, ok := n.(*ast.Field)
		if !ok || field.Tag == nil {
			return true
		}
		raw, err := strconv.Unquote(field.Tag.Value)
		require.NoError(t, err)
		got = append(got, reflect.StructTag(raw).Get("json"))
		return true
	})
	assert.Equal(t, wires, got)
}

func TestGenerator_Metadata(t *testing.T) {
	g := NewGenerator("")
	assert.Equal(t, "go", g.Language())
	assert.Equal(t, "go", g.FileExtension())
	assert.Equal(t, "\npackage rpcresponse\n", g.Preamble())
	assert.True(t, g.Keywords().Contains("type"))
}
