package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ikodrasi/publist/internal/export"
	"github.com/ikodrasi/publist/internal/printer"
)

func runPublications(e *env) error {
	if _, err := io.WriteString(e.out, export.Bibliography(e.catalog)); err != nil {
		return err
	}

	tex, err := export.LaTeXDocument(e.catalog.Profile(), export.DefaultBibFile)
	if err != nil {
		return fmt.Errorf("rendering LaTeX: %w", err)
	}
	if dir := filepath.Dir(e.cfg.LatexFile); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(e.cfg.LatexFile, []byte(tex), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", e.cfg.LatexFile, err)
	}
	printer.Info("wrote %s", e.cfg.LatexFile)
	return nil
}
