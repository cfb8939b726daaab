package catalog

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fixtures "datakit/internal/shared/testutil"
	"datakit/pkg/contracts/domain"
)

func lookupTree(t *testing.T) *fixtures.DataTree {
	tree := fixtures.NewDataTree(t)
	tree.Write("raw/sales_2023.csv", "")
	tree.Write("raw/Customers.xlsx", "")
	tree.Write("raw/orders.csv", "")
	tree.Write("processed/orders.parquet", "")
	tree.Write("processed/SALES_clean.json", "")
	return tree
}

func TestSearch(t *testing.T) {
	tree := lookupTree(t)

	tests := []struct {
		name     string
		pattern  string
		expected []string
	}{
		{"case-insensitive basename", "sales", []string{"sales_2023.csv", "SALES_clean.json"}},
		{"matches filename extension", ".parquet", []string{"orders.parquet"}},
		{"preserves table order", "orders", []string{"orders.csv", "orders.parquet"}},
		{"no match", "inventory", []string{}},
		{"empty pattern matches all", "", []string{"Customers.xlsx", "orders.csv", "sales_2023.csv", "SALES_clean.json", "orders.parquet"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newCatalog(t, tree)
			_, err := c.Scan(nil, nil)
			require.NoError(t, err)

			got, err := c.Search(tt.pattern)
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Equal(t, tt.expected, filenames(got))
		})
	}
}

func TestSearchScansEmptyCatalog(t *testing.T) {
	tree := lookupTree(t)
	c, _ := newCatalog(t, tree)

	got, err := c.Search("customers")
	require.NoError(t, err)
	assert.Equal(t, []string{"Customers.xlsx"}, filenames(got))
	assert.Equal(t, 5, c.Len())
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Metrics().ImplicitScans))
}

func TestResolve(t *testing.T) {
	tree := lookupTree(t)
	c, logs := newCatalog(t, tree)
	_, err := c.Scan(nil, nil)
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		res := c.Resolve("sales_2023")
		assert.Equal(t, domain.ResolutionFound, res.Status)
		assert.True(t, res.Found())
		assert.Equal(t, tree.Path("raw/sales_2023.csv"), res.Path)
		assert.Empty(t, res.Candidates)
	})

	t.Run("not found is case-sensitive", func(t *testing.T) {
		logs.Clear()
		res := c.Resolve("customers")
		assert.Equal(t, domain.ResolutionNotFound, res.Status)
		assert.Empty(t, res.Path)
		fixtures.AssertLogContains(t, logs, slog.LevelWarn, "No file found with basename")
	})

	t.Run("ambiguous", func(t *testing.T) {
		logs.Clear()
		res := c.Resolve("orders")
		assert.Equal(t, domain.ResolutionAmbiguous, res.Status)
		assert.Empty(t, res.Path)
		assert.Equal(t, []string{"orders.csv", "orders.parquet"}, filenames(res.Candidates))
		fixtures.AssertLogContains(t, logs, slog.LevelWarn, "Multiple files found")

		records := logs.GetRecordsByLevel(slog.LevelWarn)
		require.Len(t, records, 1)
		assert.Len(t, records[0].Attrs["candidates"], 2)
	})

	m := c.Metrics().Resolutions
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WithLabelValues("found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WithLabelValues("not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WithLabelValues("ambiguous")))
}

func TestResolveDoesNotScan(t *testing.T) {
	tree := lookupTree(t)
	c, _ := newCatalog(t, tree)

	res := c.Resolve("sales_2023")
	assert.Equal(t, domain.ResolutionNotFound, res.Status)
	assert.Equal(t, 0, c.Len())
}

func TestPath(t *testing.T) {
	tree := lookupTree(t)
	c, _ := newCatalog(t, tree)
	_, err := c.Scan(nil, nil)
	require.NoError(t, err)

	path, err := c.Path("Customers")
	require.NoError(t, err)
	assert.Equal(t, tree.Path("raw/Customers.xlsx"), path)

	_, err = c.Path("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = c.Path("orders")
	assert.ErrorIs(t, err, ErrAmbiguous)
	var ambiguous *AmbiguousError
	require.True(t, errors.As(err, &ambiguous))
	assert.Len(t, ambiguous.Candidates, 2)
	assert.Contains(t, ambiguous.Error(), "orders.parquet")
}
