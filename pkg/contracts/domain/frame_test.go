package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameColumn(t *testing.T) {
	f := NewFrame("a", "b")
	f.Append([]any{1, "x"})
	f.Append([]any{2})
	f.Append([]any{3, "z", "extra"})

	require.Equal(t, 3, f.Len())

	b, err := f.Column("b")
	require.NoError(t, err)
	assert.Equal(t, []any{"x", nil, "z"}, b)

	_, err = f.Column("missing")
	assert.Error(t, err)
	assert.Equal(t, -1, f.ColumnIndex("missing"))
}

func TestFrameHead(t *testing.T) {
	f := NewFrame("n")
	for i := 0; i < 5; i++ {
		f.Append([]any{i})
	}

	assert.Equal(t, 2, f.Head(2).Len())
	assert.Equal(t, 5, f.Head(10).Len())
	assert.Equal(t, 5, f.Head(-1).Len())

	var nilFrame *Frame
	assert.Equal(t, 0, nilFrame.Len())
}

func TestResolutionFound(t *testing.T) {
	assert.True(t, Resolution{Status: ResolutionFound}.Found())
	assert.False(t, Resolution{Status: ResolutionAmbiguous}.Found())
	assert.False(t, Resolution{Status: ResolutionNotFound}.Found())
}
