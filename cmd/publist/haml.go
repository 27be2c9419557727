package main

import (
	"io"

	"github.com/ikodrasi/publist/internal/export"
	"github.com/ikodrasi/publist/internal/pdf"
)

// site returns the HAML context backed by the configured asset directories.
func (e *env) site() export.Site {
	return export.NewSite(e.catalog, pdf.DirAssets{
		PapersDir: e.cfg.PapersDir,
		ThumbsDir: e.cfg.ThumbsDir,
	})
}

func runHAML(e *env) error {
	_, err := io.WriteString(e.out, export.PapersHAML(e.catalog.Papers(), e.site()))
	return err
}

func runHAMLArticle(e *env) error {
	_, err := io.WriteString(e.out, export.ArticlesHAML(e.catalog.Articles(), e.site()))
	return err
}

func runHAMLNews(e *env) error {
	_, err := io.WriteString(e.out, export.NewsFeedHAML(e.catalog.News()))
	return err
}

func runHAMLInvited(e *env) error {
	_, err := io.WriteString(e.out, export.InvitedTalksHAML(e.catalog.Talks()))
	return err
}
