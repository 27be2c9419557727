package pdf

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint returns the hex BLAKE2b-256 digest of a file's contents.
func Fingerprint(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h, err := blake2b.New256(nil)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// DirAssets looks up PDFs and thumbnails by derived filename in two
// directories.
type DirAssets struct {
	PapersDir string
	ThumbsDir string
}

// PDFPath returns the PDF path for a derived filename.
func (d DirAssets) PDFPath(name string) string {
	return filepath.Join(d.PapersDir, name+".pdf")
}

// ThumbnailPath returns the thumbnail path for a derived filename.
func (d DirAssets) ThumbnailPath(name string) string {
	return filepath.Join(d.ThumbsDir, name+".png")
}

func (d DirAssets) HasPDF(name string) bool {
	return isFile(d.PDFPath(name))
}

func (d DirAssets) HasThumbnail(name string) bool {
	return isFile(d.ThumbnailPath(name))
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
