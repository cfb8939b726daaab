// Package plotting renders frame columns as a stacked static panel (PNG) or
// as an interactive line chart (HTML).
//
// RenderPanel reuses an existing image at the destination instead of
// rendering again, so repeated notebook runs are cheap. Output that is not
// written to a destination is handed to a Viewer; the default viewer writes
// it to a temporary file and logs the location.
package plotting
