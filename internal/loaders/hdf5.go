//go:build hdf5

package loaders

import (
	"fmt"
	"path"
	"strconv"

	"gonum.org/v1/hdf5"

	"datakit/pkg/contracts/domain"
)

// readHDF5 loads a one or two dimensional numeric dataset. Two dimensional
// datasets map rows to frame rows and columns to columns named 0..n-1.
func readHDF5(filePath, key string) (*domain.Frame, error) {
	f, err := hdf5.OpenFile(filePath, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, fmt.Errorf("failed to open HDF5 %s: %w", filePath, err)
	}
	defer f.Close()

	ds, err := f.OpenDataset(key)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %q: %w", key, err)
	}
	defer ds.Close()

	space := ds.Space()
	defer space.Close()

	dims, _, err := space.SimpleExtentDims()
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset shape: %w", err)
	}

	var rows, cols int
	switch len(dims) {
	case 1:
		rows, cols = int(dims[0]), 1
	case 2:
		rows, cols = int(dims[0]), int(dims[1])
	default:
		return nil, fmt.Errorf("dataset %q has %d dimensions, want 1 or 2", key, len(dims))
	}

	data := make([]float64, rows*cols)
	if err := ds.Read(&data); err != nil {
		return nil, fmt.Errorf("failed to read dataset %q: %w", key, err)
	}

	columns := make([]string, cols)
	if cols == 1 {
		columns[0] = path.Base(key)
	} else {
		for i := range columns {
			columns[i] = strconv.Itoa(i)
		}
	}

	frame := domain.NewFrame(columns...)
	for r := 0; r < rows; r++ {
		cells := make([]any, cols)
		for c := 0; c < cols; c++ {
			cells[c] = data[r*cols+c]
		}
		frame.Append(cells)
	}
	return frame, nil
}
