package main

import (
	"fmt"
	"os"

	"github.com/ikodrasi/publist/internal/bib"
	"github.com/ikodrasi/publist/internal/pdf"
	"github.com/ikodrasi/publist/internal/printer"
	"github.com/ikodrasi/publist/internal/storage"
)

// asset is a paper or article that may have a PDF and thumbnail.
type asset struct {
	name  string // derived filename
	title string
	label string // venue shown in messages
	doi   string
}

func collectAssets(c *bib.Catalog) []asset {
	var assets []asset
	for _, p := range c.Papers() {
		assets = append(assets, asset{
			name:  p.Filename,
			title: p.Title,
			label: fmt.Sprintf("%s %d", p.Conference.ShortName, p.Year),
			doi:   p.DOI,
		})
	}
	for _, a := range c.Articles() {
		label := fmt.Sprintf("%s %d", a.Journal.Name, a.Volume)
		if a.InPress() {
			label = a.Journal.Name + ", in press"
		}
		assets = append(assets, asset{name: a.Filename, title: a.Title, label: label, doi: a.DOI})
	}
	return assets
}

// openCache opens the sqlite cache, creating its directory. Failure is not
// fatal: callers run without a cache.
func openCache(e *env) *storage.Cache {
	if err := os.MkdirAll(e.cfg.CacheDir, 0755); err != nil {
		printer.Warning("cache disabled: %v", err)
		return nil
	}
	cache, err := storage.OpenCache(e.cfg.CachePath())
	if err != nil {
		printer.Warning("cache disabled: %v", err)
		return nil
	}
	return cache
}

// thumbnailer carries the state of one pdfs run.
type thumbnailer struct {
	e      *env
	dirs   pdf.DirAssets
	conv   *pdf.Thumbnailer
	convOK bool
	cache  *storage.Cache
}

// upToDate reports whether an existing thumbnail was made from this PDF
// content at the configured height. Thumbnails with no record are adopted.
func (t *thumbnailer) upToDate(a asset, fingerprint string) bool {
	if !t.dirs.HasThumbnail(a.name) {
		return false
	}
	if t.cache == nil {
		return true
	}
	rec, err := t.cache.GetThumbnail(a.name)
	if err != nil {
		printer.Warning("reading thumbnail cache: %v", err)
		return true
	}
	if rec == nil {
		t.record(a, fingerprint)
		return true
	}
	return rec.Fingerprint == fingerprint && rec.Height == t.e.cfg.Thumbnail.Height
}

func (t *thumbnailer) record(a asset, fingerprint string) {
	if t.cache == nil {
		return
	}
	err := t.cache.PutThumbnail(storage.Thumbnail{
		Name:        a.name,
		Fingerprint: fingerprint,
		Height:      t.e.cfg.Thumbnail.Height,
	})
	if err != nil {
		printer.Warning("writing thumbnail cache: %v", err)
	}
}

// verify inspects the PDF and warns when it cannot be parsed or disagrees
// with the record. The converter gets the file either way.
func (t *thumbnailer) verify(a asset, path string) {
	info, err := pdf.Inspect(path)
	if err != nil {
		printer.Warning("unreadable PDF for %q (%s): %v", a.title, a.label, err)
		return
	}
	if a.doi != "" && info.DOI != "" && bib.NormalizeDOI(a.doi) != bib.NormalizeDOI(info.DOI) {
		printer.Warning("DOI mismatch for %q (%s): record has %s, PDF shows %s",
			a.title, a.label, bib.BareDOI(a.doi), info.DOI)
	}
}

func (t *thumbnailer) process(a asset) {
	if !t.dirs.HasPDF(a.name) {
		printer.Warning("no PDF for %q (%s)", a.title, a.label)
		return
	}
	pdfPath := t.dirs.PDFPath(a.name)

	fingerprint, err := pdf.Fingerprint(pdfPath)
	if err != nil {
		printer.Warning("reading PDF for %q (%s): %v", a.title, a.label, err)
		return
	}
	if t.upToDate(a, fingerprint) {
		return
	}
	if !t.convOK {
		return
	}
	t.verify(a, pdfPath)

	printer.Info("creating thumbnail for %q (%s)", a.title, a.label)
	if err := t.conv.Generate(t.e.ctx, pdfPath, t.dirs.ThumbnailPath(a.name)); err != nil {
		printer.Warning("thumbnail for %q failed: %v", a.title, err)
		return
	}
	t.record(a, fingerprint)
}

func runPDFs(e *env) error {
	t := &thumbnailer{
		e:    e,
		dirs: pdf.DirAssets{PapersDir: e.cfg.PapersDir, ThumbsDir: e.cfg.ThumbsDir},
		conv: pdf.NewThumbnailer(e.cfg.Thumbnail.Convert, e.cfg.Thumbnail.Height),
	}
	if err := t.conv.Check(); err != nil {
		printer.Warning("%v; thumbnails will not be created", err)
	} else {
		t.convOK = true
	}

	t.cache = openCache(e)
	if t.cache != nil {
		defer t.cache.Close()
	}

	for _, a := range collectAssets(e.catalog) {
		if err := e.ctx.Err(); err != nil {
			return err
		}
		t.process(a)
	}
	return nil
}
