package errors

import (
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapKeepsClass(t *testing.T) {
	err := Wrapf(ErrInvalidAnnotation, "invalid terminal label %q at %s", "bogus", "Blocks")
	err = Wrap(err, "getinfo.json")

	assert.True(t, Is(err, ErrInvalidAnnotation))
	assert.False(t, Is(err, ErrInsufficientAnnotation))
	assert.Contains(t, err.Error(), "getinfo.json")
	assert.Contains(t, err.Error(), "bogus")
}

func TestIsInsufficient(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		want  bool
		fatal bool
	}{
		{"nil", nil, false, false},
		{"sentinel", ErrInsufficientAnnotation, true, false},
		{"wrapped", Wrap(ErrInsufficientAnnotation, "at Proxy"), true, false},
		{"invalid", ErrInvalidAnnotation, false, true},
		{"plain", New("boom"), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsInsufficient(tt.err))
			assert.Equal(t, tt.fatal, IsFatal(tt.err))
		})
	}
}

func TestNewFilesystemError(t *testing.T) {
	assert.Nil(t, NewFilesystemError(nil, "x.json"))

	err := NewFilesystemError(fs.ErrNotExist, "quizface/getinfo.json")
	require.Error(t, err)
	assert.True(t, Is(err, ErrFilesystem))
	assert.True(t, Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "quizface/getinfo.json")
}

func TestNewMalformedSchemaError(t *testing.T) {
	err := NewMalformedSchemaError("%d response variants, at most %d supported", 4, 3)
	assert.True(t, Is(err, ErrMalformedSchema))
	assert.Equal(t, "4 response variants, at most 3 supported", err.Error())
}

func TestWithHint(t *testing.T) {
	err := WithHint(ErrFormatterFailed, "is rustfmt on PATH?")

	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Equal(t, "is rustfmt on PATH?", hints[0])
	assert.True(t, Is(err, ErrFormatterFailed))
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
	assert.Nil(t, WithHint(nil, "hint"))
}

func ExampleWrap() {
	err := Wrap(ErrMalformedSchema, "getblock.json")
	fmt.Println(err)
	// Output: getblock.json: malformed schema
}
