package plotting

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"datakit/pkg/contracts/domain"
)

// InteractiveOptions configures RenderInteractive
type InteractiveOptions struct {
	// Title is the chart title; empty means the joined column names.
	Title string
	// LegendLeft anchors the legend at the top-left corner.
	LegendLeft  bool
	Destination string
	Viewer      Viewer
	Logger      *slog.Logger
}

// RenderInteractive draws one line series per column against the row index
// as an HTML document. The document is written to opts.Destination when set
// and handed to the viewer otherwise.
func RenderInteractive(f *domain.Frame, columns []string, opts InteractiveOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	viewer := opts.Viewer
	if viewer == nil {
		viewer = TempViewer{Logger: logger}
	}

	data, err := collect(f, columns)
	if err != nil {
		return err
	}

	line := buildLine(data, opts)

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	if opts.Destination == "" {
		return viewer.ShowHTML(buf.Bytes())
	}

	logger.Info("Saving graph", slog.String("path", opts.Destination))
	if err := os.WriteFile(opts.Destination, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.Destination, err)
	}
	return nil
}

func buildLine(data []series, o InteractiveOptions) *charts.Line {
	title := o.Title
	if title == "" {
		names := make([]string, len(data))
		for i, s := range data {
			names[i] = s.name
		}
		title = strings.Join(names, ", ")
	}

	legend := opts.Legend{Show: opts.Bool(true)}
	if o.LegendLeft {
		legend.Left = "left"
		legend.Top = "top"
		legend.Orient = "vertical"
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithLegendOpts(legend),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "index"}),
	)

	rows := 0
	for _, s := range data {
		if len(s.values) > rows {
			rows = len(s.values)
		}
	}
	index := make([]int, rows)
	for i := range index {
		index[i] = i
	}
	line.SetXAxis(index)

	for _, s := range data {
		points := make([]opts.LineData, len(s.values))
		for i, v := range s.values {
			if s.valid[i] {
				points[i] = opts.LineData{Value: v}
			} else {
				points[i] = opts.LineData{Value: "-"}
			}
		}
		line.AddSeries(s.name, points)
	}

	return line
}
