// Package pdf inspects paper PDFs and renders their first pages as
// thumbnails.
package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrConverterMissing is returned when the converter binary is not on PATH.
var ErrConverterMissing = errors.New("image converter not found")

// Thumbnailer renders the first page of a PDF to a PNG of fixed height
// using an ImageMagick-compatible convert command.
type Thumbnailer struct {
	convert string
	height  int
}

// NewThumbnailer creates a thumbnailer for the given converter binary and
// thumbnail height in pixels.
func NewThumbnailer(convert string, height int) *Thumbnailer {
	return &Thumbnailer{convert: convert, height: height}
}

// Check reports whether the converter can be found.
func (t *Thumbnailer) Check() error {
	if _, err := exec.LookPath(t.convert); err != nil {
		return fmt.Errorf("%w: %s", ErrConverterMissing, t.convert)
	}
	return nil
}

// args returns the converter arguments: first page, trimmed, scaled to the
// target height.
func (t *Thumbnailer) args(pdfPath, pngPath string) []string {
	return []string{
		pdfPath + "[0]",
		"-trim",
		"-resize", fmt.Sprintf("x%d", t.height),
		pngPath,
	}
}

// Generate writes a thumbnail for pdfPath to pngPath, creating the target
// directory if needed. A failed conversion leaves no partial output.
func (t *Thumbnailer) Generate(ctx context.Context, pdfPath, pngPath string) error {
	if _, err := os.Stat(pdfPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("PDF file does not exist: %s", pdfPath)
		}
		return fmt.Errorf("checking PDF file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(pngPath), 0755); err != nil {
		return fmt.Errorf("creating thumbnail directory: %w", err)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, t.convert, t.args(pdfPath, pngPath)...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		os.Remove(pngPath)
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("converting %s: %w: %s", pdfPath, err, msg)
		}
		return fmt.Errorf("converting %s: %w", pdfPath, err)
	}

	if _, err := os.Stat(pngPath); err != nil {
		return fmt.Errorf("converter produced no output for %s", pdfPath)
	}
	return nil
}
