package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datakit/pkg/contracts/domain"
)

func TestFilterStrings(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		items   []string
		want    []string
	}{
		{"case insensitive keeps order", "B", []string{"alpha", "Beta", "boo"}, []string{"Beta", "boo"}},
		{"substring", "apple", []string{"apple_pie", "banana_bread", "apple_tart", "orange_juice"}, []string{"apple_pie", "apple_tart"}},
		{"upper pattern", "BREAD", []string{"apple_pie", "banana_bread"}, []string{"banana_bread"}},
		{"duplicates kept", "a", []string{"a", "A", "a"}, []string{"a", "A", "a"}},
		{"no match", "zzz", []string{"alpha"}, []string{}},
		{"empty pattern matches all", "", []string{"x", "y"}, []string{"x", "y"}},
		{"nil input", "x", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterStrings(tt.pattern, tt.items))
		})
	}
}

func TestSearchColumns(t *testing.T) {
	f := domain.NewFrame("Sales_2021", "Revenue_2021", "Costs")

	assert.Equal(t, []string{"Sales_2021", "Revenue_2021"}, SearchColumns("2021", f))
	assert.Equal(t, []string{"Sales_2021"}, SearchColumns("sales", f))
	assert.Empty(t, SearchColumns("x", nil))
}

func TestFlatten(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, Flatten([][]int{{1, 2}, {3}, {4, 5, 6}}))
	assert.Equal(t, []string{"a", "b", "c"}, Flatten([][]string{{"a", "b"}, {}, {"c"}}))
	assert.Empty(t, Flatten[int](nil))
}

func TestFlattenAny(t *testing.T) {
	got, err := FlattenAny([]any{[]int{1, 2}, []string{"x"}, [2]bool{true, false}})
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2, "x", true, false}, got)

	_, err = FlattenAny([]any{[]int{1}, 5})
	assert.ErrorIs(t, err, ErrNotIterable)

	_, err = FlattenAny(42)
	assert.ErrorIs(t, err, ErrNotIterable)

	empty, err := FlattenAny([][]int{})
	require.NoError(t, err)
	assert.Empty(t, empty)
}
