//go:build !hdf5

package loaders

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadHDF5WithoutTag(t *testing.T) {
	_, err := LoadHDF5(filepath.Join(t.TempDir(), "store.h5"), Options{Key: "/prices"})
	assert.ErrorIs(t, err, ErrHDF5Unavailable)
}
