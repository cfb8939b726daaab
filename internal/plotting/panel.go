package plotting

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/disintegration/imaging"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"datakit/pkg/contracts/domain"
)

// StatusKind tells how RenderPanel satisfied a request
type StatusKind int

const (
	StatusReadFromFile StatusKind = iota + 1
	StatusSavedToFile
	StatusNotSaved
)

// PanelStatus is the outcome of RenderPanel
type PanelStatus struct {
	Kind StatusKind
	Path string
}

// String returns the notebook message for the outcome
func (s PanelStatus) String() string {
	switch s.Kind {
	case StatusReadFromFile:
		return "Read From File: " + s.Path
	case StatusSavedToFile:
		return "Saved to File: " + s.Path
	default:
		return "graph not saved to file..."
	}
}

// Marker names the glyph drawn at each data point
type Marker string

const (
	MarkerNone     Marker = ""
	MarkerPixel    Marker = ","
	MarkerPoint    Marker = "."
	MarkerCircle   Marker = "o"
	MarkerPlus     Marker = "+"
	MarkerCross    Marker = "x"
	MarkerSquare   Marker = "s"
	MarkerTriangle Marker = "^"
)

// Style controls how each series is drawn
type Style struct {
	Line   bool
	Marker Marker
}

// DefaultStyle draws unconnected pixel markers
var DefaultStyle = Style{Marker: MarkerPixel}

// Size is a figure size in inches
type Size struct {
	Width  float64
	Height float64
}

// DefaultSize is the figure size used when none is given
var DefaultSize = Size{Width: 15, Height: 20}

// PanelOptions configures RenderPanel. Zero values select the defaults.
type PanelOptions struct {
	Destination string
	Size        Size
	Style       Style
	Viewer      Viewer
	Logger      *slog.Logger
}

func (o PanelOptions) withDefaults() PanelOptions {
	if o.Size.Width <= 0 {
		o.Size.Width = DefaultSize.Width
	}
	if o.Size.Height <= 0 {
		o.Size.Height = DefaultSize.Height
	}
	if o.Style == (Style{}) {
		o.Style = DefaultStyle
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Viewer == nil {
		o.Viewer = TempViewer{Logger: o.Logger}
	}
	return o
}

// render draws the panel; tests replace it to count renders
var render = renderPanel

// RenderPanel draws one sub-plot per column, stacked vertically, with the row
// index on the x axis. When opts.Destination already exists the stored image
// is shown instead and nothing is rendered. Otherwise the panel is written
// to the destination as PNG, or shown through the viewer if no destination
// is set.
func RenderPanel(f *domain.Frame, columns []string, opts PanelOptions) (PanelStatus, error) {
	opts = opts.withDefaults()

	if dest := opts.Destination; dest != "" {
		if _, err := os.Stat(dest); err == nil {
			img, err := imaging.Open(dest)
			if err != nil {
				return PanelStatus{}, fmt.Errorf("failed to read %s: %w", dest, err)
			}
			if err := opts.Viewer.ShowImage(img); err != nil {
				return PanelStatus{}, err
			}
			opts.Logger.Debug("Reused rendered panel", slog.String("path", dest))
			return PanelStatus{Kind: StatusReadFromFile, Path: dest}, nil
		} else if !os.IsNotExist(err) {
			return PanelStatus{}, fmt.Errorf("failed to stat %s: %w", dest, err)
		}
	}

	data, err := collect(f, columns)
	if err != nil {
		return PanelStatus{}, err
	}

	canvas, err := render(data, opts.Size, opts.Style)
	if err != nil {
		return PanelStatus{}, err
	}

	if opts.Destination == "" {
		if err := opts.Viewer.ShowImage(canvas.Image()); err != nil {
			return PanelStatus{}, err
		}
		return PanelStatus{Kind: StatusNotSaved}, nil
	}

	if err := writePNG(canvas, opts.Destination); err != nil {
		return PanelStatus{}, err
	}
	opts.Logger.Info("Saved panel", slog.String("path", opts.Destination), slog.Int("columns", len(columns)))
	return PanelStatus{Kind: StatusSavedToFile, Path: opts.Destination}, nil
}

func renderPanel(data []series, size Size, style Style) (*vgimg.Canvas, error) {
	plots := make([][]*plot.Plot, len(data))
	for i, s := range data {
		p, err := subplot(s, style)
		if err != nil {
			return nil, err
		}
		plots[i] = []*plot.Plot{p}
	}

	img := vgimg.New(vg.Length(size.Width)*vg.Inch, vg.Length(size.Height)*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      1,
		PadX:      vg.Millimeter,
		PadY:      vg.Millimeter,
		PadTop:    vg.Points(4),
		PadBottom: vg.Points(4),
		PadLeft:   vg.Points(4),
		PadRight:  vg.Points(4),
	}

	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}
	return img, nil
}

func subplot(s series, style Style) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = s.name
	p.X.Label.Text = "index"

	pts := make(plotter.XYs, 0, len(s.values))
	for i, v := range s.values {
		if s.valid[i] {
			pts = append(pts, plotter.XY{X: float64(i), Y: v})
		}
	}
	if len(pts) == 0 {
		return p, nil
	}

	if style.Line {
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("failed to plot %q: %w", s.name, err)
		}
		p.Add(line)
	}

	if glyph, radius, ok := glyphFor(style.Marker); ok {
		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("failed to plot %q: %w", s.name, err)
		}
		scatter.GlyphStyle.Shape = glyph
		scatter.GlyphStyle.Radius = radius
		p.Add(scatter)
	}

	return p, nil
}

func glyphFor(m Marker) (draw.GlyphDrawer, vg.Length, bool) {
	switch m {
	case MarkerPixel:
		return draw.CircleGlyph{}, vg.Points(0.5), true
	case MarkerPoint:
		return draw.CircleGlyph{}, vg.Points(1.5), true
	case MarkerCircle:
		return draw.RingGlyph{}, vg.Points(3), true
	case MarkerPlus:
		return draw.PlusGlyph{}, vg.Points(3), true
	case MarkerCross:
		return draw.CrossGlyph{}, vg.Points(3), true
	case MarkerSquare:
		return draw.BoxGlyph{}, vg.Points(3), true
	case MarkerTriangle:
		return draw.TriangleGlyph{}, vg.Points(3), true
	default:
		return nil, 0, false
	}
}

func writePNG(c *vgimg.Canvas, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	png := vgimg.PngCanvas{Canvas: c}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

