package loaders

import "fmt"

// LoadHDF5 reads the dataset named by Options.Key from an HDF5 file.
// The key is validated before the file is touched.
func LoadHDF5(path string, opts Options) (any, error) {
	if opts.Key == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingKey, path)
	}
	frame, err := readHDF5(path, opts.Key)
	if err != nil {
		return nil, err
	}
	return frame, nil
}
