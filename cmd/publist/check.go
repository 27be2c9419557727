package main

import (
	"fmt"
	"os"

	"github.com/ikodrasi/publist/internal/export"
	"github.com/ikodrasi/publist/internal/pdf"
	"github.com/ikodrasi/publist/internal/printer"
	"github.com/ikodrasi/publist/internal/storage"
)

// cacheStats counts cached records. A cache that does not exist yet is not
// created; nil means there is nothing to report.
func cacheStats(e *env) *CacheStats {
	path := e.cfg.CachePath()
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	cache, err := storage.OpenCache(path)
	if err != nil {
		printer.Warning("cache unavailable: %v", err)
		return nil
	}
	defer cache.Close()

	geocodes, thumbnails, err := cache.Counts()
	if err != nil {
		printer.Warning("counting cache records: %v", err)
		return nil
	}
	return &CacheStats{Geocodes: geocodes, Thumbnails: thumbnails}
}

// checkIssues collects dataset problems that do not stop rendering.
func checkIssues(e *env) ([]CheckIssue, error) {
	var issues []CheckIssue

	for _, b := range e.catalog.DanglingBestPapers() {
		issues = append(issues, CheckIssue{
			Type:   "dangling_best_paper",
			ID:     b.Filename,
			Reason: "no paper derives this filename",
		})
	}

	dups, err := export.DuplicateCitationKeys(export.Bibliography(e.catalog))
	if err != nil {
		return nil, fmt.Errorf("scanning bibliography: %w", err)
	}
	for _, key := range dups {
		issues = append(issues, CheckIssue{
			Type:   "duplicate_citation_key",
			ID:     key,
			Reason: "defined more than once in the bibliography",
		})
	}

	dirs := pdf.DirAssets{PapersDir: e.cfg.PapersDir, ThumbsDir: e.cfg.ThumbsDir}
	for _, a := range collectAssets(e.catalog) {
		if !dirs.HasPDF(a.name) {
			issues = append(issues, CheckIssue{
				Type:   "missing_pdf",
				ID:     a.name,
				Reason: dirs.PDFPath(a.name),
			})
		}
	}

	return issues, nil
}

func runCheck(e *env) error {
	issues, err := checkIssues(e)
	if err != nil {
		return err
	}

	status := "ok"
	if len(issues) > 0 {
		status = "issues"
	}
	// Ensure issues is an empty array, not null
	if issues == nil {
		issues = []CheckIssue{}
	}

	c := e.catalog
	stats := cacheStats(e)
	if e.json {
		return outputJSON(e.out, CheckResult{
			Status:   status,
			Papers:   len(c.Papers()),
			Articles: len(c.Articles()),
			Books:    len(c.Books()),
			Cache:    stats,
			Issues:   issues,
		})
	}

	summary := fmt.Sprintf("%d papers, %d articles, %d books checked\n",
		len(c.Papers()), len(c.Articles()), len(c.Books()))
	if stats != nil {
		summary += fmt.Sprintf("cache: %d geocodes, %d thumbnails\n", stats.Geocodes, stats.Thumbnails)
	}
	if len(issues) == 0 {
		fmt.Fprintf(e.out, "Dataset check: OK\n\n%s", summary)
		return nil
	}

	fmt.Fprintf(e.out, "Dataset check: %d issues found\n\n", len(issues))
	for _, issue := range issues {
		switch issue.Type {
		case "dangling_best_paper":
			fmt.Fprintf(e.out, "  [WARN] Best paper entry %s matches no paper\n\n", issue.ID)
		case "duplicate_citation_key":
			fmt.Fprintf(e.out, "  [WARN] Duplicate citation key %s\n\n", issue.ID)
		case "missing_pdf":
			fmt.Fprintf(e.out, "  [WARN] Missing PDF for %s\n", issue.ID)
			fmt.Fprintf(e.out, "         Expected: %s\n\n", issue.Reason)
		}
	}
	fmt.Fprint(e.out, summary)
	return nil
}
