//go:build !hdf5

package loaders

import (
	"fmt"

	"datakit/pkg/contracts/domain"
)

func readHDF5(path, key string) (*domain.Frame, error) {
	return nil, fmt.Errorf("%w: cannot read %q from %s", ErrHDF5Unavailable, key, path)
}
