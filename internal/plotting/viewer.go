package plotting

import (
	"fmt"
	"image"
	"log/slog"
	"os"

	"github.com/disintegration/imaging"
)

// Viewer displays rendered output that was not saved to a destination
type Viewer interface {
	ShowImage(img image.Image) error
	ShowHTML(doc []byte) error
}

// TempViewer writes output to temporary files and logs their paths
type TempViewer struct {
	// Dir is the directory for the files; empty means os.TempDir().
	Dir    string
	Logger *slog.Logger
}

// ShowImage implements Viewer
func (v TempViewer) ShowImage(img image.Image) error {
	f, err := os.CreateTemp(v.Dir, "datakit-panel-*.png")
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	defer f.Close()

	if err := imaging.Encode(f, img, imaging.PNG); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	v.logger().Info("Graph written for viewing", slog.String("path", f.Name()))
	return nil
}

// ShowHTML implements Viewer
func (v TempViewer) ShowHTML(doc []byte) error {
	f, err := os.CreateTemp(v.Dir, "datakit-chart-*.html")
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(doc); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	v.logger().Info("Graph written for viewing", slog.String("path", f.Name()))
	return nil
}

func (v TempViewer) logger() *slog.Logger {
	if v.Logger != nil {
		return v.Logger
	}
	return slog.Default()
}
