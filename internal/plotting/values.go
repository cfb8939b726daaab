package plotting

import (
	"errors"
	"fmt"

	"github.com/spf13/cast"

	"datakit/pkg/contracts/domain"
)

var (
	// ErrUnknownColumn is returned when a requested column is not in the frame
	ErrUnknownColumn = errors.New("unknown column")

	// ErrNonNumeric is returned when a cell cannot be plotted as a number
	ErrNonNumeric = errors.New("non-numeric value")

	// ErrNoColumns is returned when no columns are requested
	ErrNoColumns = errors.New("no columns to plot")
)

// series holds one column as numbers. Missing cells are marked invalid.
type series struct {
	name   string
	values []float64
	valid  []bool
}

// collect converts the requested columns to numeric series
func collect(f *domain.Frame, columns []string) ([]series, error) {
	if len(columns) == 0 {
		return nil, ErrNoColumns
	}
	if f == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, columns[0])
	}

	out := make([]series, 0, len(columns))
	for _, name := range columns {
		cells, err := f.Column(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
		}

		s := series{
			name:   name,
			values: make([]float64, len(cells)),
			valid:  make([]bool, len(cells)),
		}
		for i, cell := range cells {
			if cell == nil {
				continue
			}
			v, err := cast.ToFloat64E(cell)
			if err != nil {
				return nil, fmt.Errorf("%w in column %q row %d: %v", ErrNonNumeric, name, i, err)
			}
			s.values[i] = v
			s.valid[i] = true
		}
		out = append(out, s)
	}
	return out, nil
}
