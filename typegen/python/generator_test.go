package python

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/rpctypegen/typegen"
)

var getblock = &typegen.Module{Name: "getblock", Method: "getblock"}

func TestTypeExpr(t *testing.T) {
	tests := []struct {
		name     string
		expr     typegen.TypeExpr
		expected string
	}{
		{"decimal", typegen.Decimal, "Decimal"},
		{"bool", typegen.Bool, "bool"},
		{"string", typegen.String, "str"},
		{"named", typegen.Named{Name: "Tx"}, "GetblockTx"},
		{"already qualified", typegen.Named{Name: "GetblockResponse"}, "GetblockResponse"},
		{"seq", typegen.Seq{Elem: typegen.String}, "list[str]"},
		{"map", typegen.Map{Value: typegen.Bool}, "dict[str, bool]"},
		{"optional", typegen.Optional{Elem: typegen.Seq{Elem: typegen.Decimal}}, "list[Decimal] | None"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TypeExpr(getblock, tt.expr))
		})
	}
}

func TestGenerateDeclaration_Record(t *testing.T) {
	g := NewGenerator()
	result := g.GenerateDeclaration(getblock, typegen.Record{
		Name: "GetblockResponse",
		Fields: []typegen.Field{
			{Ident: "anchor", Type: typegen.Optional{Elem: typegen.String}},
			{Ident: "block_hash", WireName: "blockHash", Type: typegen.String},
			{Ident: "prev", WireName: "previousblockhash", Type: typegen.Optional{Elem: typegen.String}},
			{Ident: "tx", Type: typegen.Seq{Elem: typegen.Named{Name: "Tx"}}},
		},
	})

	expected := `@dataclass
class GetblockResponse:
    block_hash: str = field(metadata={"json": "blockHash"})
    tx: list[GetblockTx]
    anchor: str | None = None
    prev: str | None = field(default=None, metadata={"json": "previousblockhash"})`
	assert.Equal(t, expected, result)
}

func TestGenerateDeclaration_Enum(t *testing.T) {
	g := NewGenerator()
	result := g.GenerateDeclaration(getblock, typegen.TaggedUnion{
		Name: "StatusResponse",
		Variants: []typegen.Variant{
			{Name: "Confirmed", WireName: "confirmed"},
			{Name: "NotFound", WireName: "not-found"},
			{Name: "Confirmed", WireName: "confirmed"},
		},
	})

	expected := `class GetblockStatusResponse(str, Enum):
    CONFIRMED = "confirmed"
    NOT_FOUND = "not-found"`
	assert.Equal(t, expected, result)
}

func TestGenerateDeclaration_Union(t *testing.T) {
	g := NewGenerator()
	result := g.GenerateDeclaration(getblock, typegen.TaggedUnion{
		Name: "GetblockResponse",
		Variants: []typegen.Variant{
			{Name: "Regular", Kind: typegen.VariantTuple, Type: typegen.String},
			{Name: "Verbose", Kind: typegen.VariantRecord, Fields: []typegen.Field{
				{Ident: "hash", Type: typegen.String},
				{Ident: "type_field", WireName: "type", Type: typegen.Optional{Elem: typegen.Bool}},
			}},
		},
	})

	expected := `@dataclass
class GetblockResponse:
    @dataclass
    class VerboseFields:
        hash: str
        type_field: bool | None = field(default=None, metadata={"json": "type"})

    Regular: str | None = None
    Verbose: GetblockResponse.VerboseFields | None = None`
	assert.Equal(t, expected, result)
}

func TestGenerateDeclaration_AliasAndUnit(t *testing.T) {
	g := NewGenerator()

	alias := g.GenerateDeclaration(getblock, typegen.Alias{
		Name:   "GetblockResponse",
		Target: typegen.Map{Value: typegen.Named{Name: "Entry"}},
	})
	assert.Equal(t, `GetblockResponse: TypeAlias = "dict[str, GetblockEntry]"`, alias)

	unit := g.GenerateDeclaration(getblock, typegen.Unit{Name: "GetblockResponse"})
	assert.Equal(t, "@dataclass\nclass GetblockResponse:\n    pass", unit)
}

func TestGenerateDeclaration_EscapesWireNames(t *testing.T) {
	g := NewGenerator()
	result := g.GenerateDeclaration(getblock, typegen.Record{
		Name:   "OddResponse",
		Fields: []typegen.Field{{Ident: "quoted", WireName: `quo"ted\`, Type: typegen.Bool}},
	})
	assert.Contains(t, result, `quoted: bool = field(metadata={"json": "quo\"ted\\"})`)
}

func TestGenerateModule(t *testing.T) {
	g := NewGenerator()
	mod := &typegen.Module{
		Name:   "getpeerinfo",
		Method: "getpeerinfo",
		Declarations: []typegen.Declaration{
			typegen.Record{Name: "Peer", Fields: []typegen.Field{{Ident: "addr", Type: typegen.String}}},
			typegen.Alias{Name: "GetpeerinfoResponse", Target: typegen.Seq{Elem: typegen.Named{Name: "Peer"}}},
		},
	}

	out, err := typegen.Emit(mod, g)
	require.NoError(t, err)

	expected := `

# getpeerinfo: response types of the getpeerinfo RPC


@dataclass
class GetpeerinfoPeer:
    addr: str


GetpeerinfoResponse: TypeAlias = "list[GetpeerinfoPeer]"
`
	assert.Equal(t, expected, out)
}

func TestHeader(t *testing.T) {
	header := typegen.Header(NewGenerator())

	assert.True(t, strings.HasPrefix(header, "# Procedurally generated response types."))
	assert.NotContains(t, header, "//")
	assert.Contains(t, header, "from __future__ import annotations\n")
}

func TestGenerator_Metadata(t *testing.T) {
	g := NewGenerator()
	assert.Equal(t, "python", g.Language())
	assert.Equal(t, "py", g.FileExtension())
	assert.Equal(t, "#", g.LineComment())
	assert.True(t, g.Keywords().Contains("class"))
	assert.True(t, g.Keywords().Contains("field"))
}
