package typegen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/rpctypegen/errors"
	"github.com/teranos/rpctypegen/typegen"
	"github.com/teranos/rpctypegen/typegen/rust"
)

func TestEmit_SortsAndDeduplicates(t *testing.T) {
	peers := typegen.Record{Name: "Peers", Fields: []typegen.Field{{Ident: "addr", Type: typegen.String}}}
	mod := &typegen.Module{
		Name:   "getpeerinfo",
		Method: "getpeerinfo",
		Declarations: []typegen.Declaration{
			peers,
			typegen.Alias{Name: "GetpeerinfoResponse", Target: typegen.Seq{Elem: typegen.Named{Name: "Peers"}}},
			peers,
		},
	}

	out, err := typegen.Emit(mod, rust.NewGenerator())
	require.NoError(t, err)

	expected := `pub mod getpeerinfo {
    #[derive(Debug, serde::Deserialize, serde::Serialize)]
    pub struct Peers {
        pub addr: String,
    }

    pub type GetpeerinfoResponse = Vec<Peers>;
}
`
	assert.Equal(t, expected, out)
}

func TestRenderDeclarations_OrderIndependent(t *testing.T) {
	a := typegen.Unit{Name: "A"}
	b := typegen.Alias{Name: "B", Target: typegen.Bool}
	c := typegen.Record{Name: "C"}

	gen := rust.NewGenerator()
	first, err := typegen.RenderDeclarations(&typegen.Module{Declarations: []typegen.Declaration{a, b, c}}, gen)
	require.NoError(t, err)
	second, err := typegen.RenderDeclarations(&typegen.Module{Declarations: []typegen.Declaration{c, a, b, a}}, gen)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 3)
}

func TestRenderDeclarations_Conflict(t *testing.T) {
	mod := &typegen.Module{
		Name:       "getblock",
		SourceFile: "getblock.json",
		Declarations: []typegen.Declaration{
			typegen.Alias{Name: "Info", Target: typegen.Bool},
			typegen.Alias{Name: "Info", Target: typegen.String},
		},
	}

	_, err := typegen.RenderDeclarations(mod, rust.NewGenerator())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrMalformedSchema))
	assert.Contains(t, err.Error(), "module getblock: conflicting declarations for Info")

	hints := errors.GetAllHints(err)
	require.Len(t, hints, 1)
	assert.True(t, strings.Contains(hints[0], "getblock.json"))
}

func TestDisclaimer(t *testing.T) {
	for _, line := range strings.Split(strings.TrimSuffix(typegen.Disclaimer, "\n"), "\n") {
		assert.True(t, strings.HasPrefix(line, "//"), "disclaimer line %q is not a comment", line)
	}
}

func TestHeader_SlashComments(t *testing.T) {
	assert.Equal(t, typegen.Disclaimer, typegen.Header(rust.NewGenerator()))
}
