package catalog

import (
	"sort"

	"datakit/pkg/contracts/domain"
)

type groupKey struct {
	directory string
	extension string
}

// Summarize groups the table by directory and extension. Sizes are rounded to
// three decimals and rows are ordered by directory, then extension. An empty
// table is scanned first.
func (c *Catalog) Summarize() ([]domain.SummaryRow, error) {
	if err := c.ensureScanned(); err != nil {
		return nil, err
	}

	groups := make(map[groupKey]*domain.SummaryRow)
	for _, rec := range c.entries {
		key := groupKey{directory: rec.Directory, extension: rec.Extension}
		row, ok := groups[key]
		if !ok {
			row = &domain.SummaryRow{Directory: rec.Directory, Extension: rec.Extension}
			groups[key] = row
		}
		row.Count++
		row.TotalMB += rec.SizeMB
		if rec.Modified.After(row.LatestModified) {
			row.LatestModified = rec.Modified
		}
	}

	rows := make([]domain.SummaryRow, 0, len(groups))
	for _, row := range groups {
		row.MeanMB = round3(row.TotalMB / float64(row.Count))
		row.TotalMB = round3(row.TotalMB)
		rows = append(rows, *row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Directory != rows[j].Directory {
			return rows[i].Directory < rows[j].Directory
		}
		return rows[i].Extension < rows[j].Extension
	})

	return rows, nil
}
