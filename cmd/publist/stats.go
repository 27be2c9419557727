package main

import "fmt"

func statsFor(e *env) StatsResponse {
	c := e.catalog
	return StatsResponse{
		Authors:          len(c.Authors()),
		ConferencePapers: len(c.Papers()),
		Countries:        len(c.Countries()),
		JournalArticles:  len(c.Articles()),
		Books:            len(c.Books()),
		News:             len(c.News()),
		InvitedTalks:     len(c.Talks()),
	}
}

func runStats(e *env) error {
	s := statsFor(e)
	if e.json {
		return outputJSON(e.out, s)
	}
	_, err := fmt.Fprintf(e.out, "%d authors, %d conference papers, in %d countries\n",
		s.Authors, s.ConferencePapers, s.Countries)
	return err
}
