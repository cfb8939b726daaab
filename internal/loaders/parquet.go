package loaders

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/parquet-go/parquet-go"

	"datakit/pkg/contracts/domain"
)

const parquetBatch = 256

// LoadParquet reads every row group of a parquet file into a frame with one
// column per leaf column. Nested column paths are joined with dots.
func LoadParquet(path string, _ Options) (any, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet %s: %w", path, err)
	}

	leaves := pf.Schema().Columns()
	columns := make([]string, len(leaves))
	for i, p := range leaves {
		columns[i] = strings.Join(p, ".")
	}

	frame := domain.NewFrame(columns...)
	buf := make([]parquet.Row, parquetBatch)
	for _, rg := range pf.RowGroups() {
		if err := readRowGroup(rg, buf, frame); err != nil {
			return nil, fmt.Errorf("failed to read parquet %s: %w", path, err)
		}
	}
	return frame, nil
}

func readRowGroup(rg parquet.RowGroup, buf []parquet.Row, frame *domain.Frame) error {
	rows := rg.Rows()
	defer rows.Close()

	width := len(frame.Columns)
	for {
		n, err := rows.ReadRows(buf)
		for _, row := range buf[:n] {
			cells := make([]any, width)
			for _, v := range row {
				if c := v.Column(); c >= 0 && c < width {
					cells[c] = parquetCell(v)
				}
			}
			frame.Append(cells)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func parquetCell(v parquet.Value) any {
	if v.IsNull() {
		return nil
	}
	switch v.Kind() {
	case parquet.Boolean:
		return v.Boolean()
	case parquet.Int32:
		return int64(v.Int32())
	case parquet.Int64:
		return v.Int64()
	case parquet.Float:
		return float64(v.Float())
	case parquet.Double:
		return v.Double()
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return string(v.ByteArray())
	default:
		return v.String()
	}
}
