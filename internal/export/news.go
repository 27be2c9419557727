package export

import (
	"fmt"
	"strings"

	"github.com/ikodrasi/publist/internal/bib"
)

// PublicationsPage is the page the news feed links publications to.
const PublicationsPage = "publications.html"

type newsLink struct {
	anchor string
	title  string
}

// writeLinks writes "The paper" followed by one link, or "The papers"
// followed by a list of links.
func writeLinks(b *strings.Builder, noun string, links []newsLink) {
	if len(links) == 1 {
		fmt.Fprintf(b, "  The %s\n", noun)
		fmt.Fprintf(b, "  %%a(href=\"%s#%s\") %s\n", PublicationsPage, links[0].anchor, links[0].title)
		return
	}
	fmt.Fprintf(b, "  The %ss\n", noun)
	b.WriteString("  %ul\n")
	for _, l := range links {
		b.WriteString("    %li\n")
		fmt.Fprintf(b, "      %%a(href=\"%s#%s\") %s\n", PublicationsPage, l.anchor, l.title)
	}
}

// NewsHAML renders one news item as a list-group entry.
func NewsHAML(n *bib.NewsItem) string {
	var b strings.Builder
	b.WriteString("%li.list-group-item\n")

	switch n.Kind {
	case bib.NewsConference:
		links := make([]newsLink, len(n.Papers))
		for i, p := range n.Papers {
			links[i] = newsLink{anchor: fmt.Sprintf("c%d", p.Number), title: p.Title}
		}
		writeLinks(&b, "paper", links)
		verb := "has"
		if len(links) > 1 {
			verb = "have"
		}
		first := n.Papers[0]
		fmt.Fprintf(&b, "  %s been accepted at %s %d.\n", verb, first.Conference.ShortName, first.Year)
		fmt.Fprintf(&b, "  %%a.badge(href=\"%s#conferences\") publication\n", PublicationsPage)

	case bib.NewsJournal:
		links := make([]newsLink, len(n.Articles))
		for i, a := range n.Articles {
			links[i] = newsLink{anchor: fmt.Sprintf("j%d", a.Number), title: a.Title}
		}
		writeLinks(&b, "article", links)
		b.WriteString("  got accepted for publication in\n")
		fmt.Fprintf(&b, "  %%i %s.\n", n.Articles[0].Journal.Name)
		fmt.Fprintf(&b, "  %%a.badge(href=\"%s\") publication\n", PublicationsPage)

	case bib.NewsTutorial:
		t := n.Tutorial
		fmt.Fprintf(&b, "  %s\n", t.Introduction)
		fmt.Fprintf(&b, "  %%a(href=\"%s\" target=\"_blank\") %s\n", t.URL, t.Name)
		if len(t.Authors) > 0 {
			names := make([]string, len(t.Authors))
			for i, a := range t.Authors {
				names[i] = a.FullName()
			}
			fmt.Fprintf(&b, "  with %s\n", strings.Join(names, ", "))
		}
		fmt.Fprintf(&b, "  in %s at the %s %d conference.\n", t.Venue.Location(), t.Conference.ShortName, t.Venue.Year)
		b.WriteString("  %a.badge(href=\"#\") tutorial\n")
	}
	return b.String()
}

// NewsFeedHAML renders all news items, most recently declared first.
func NewsFeedHAML(news []*bib.NewsItem) string {
	var b strings.Builder
	for i := len(news) - 1; i >= 0; i-- {
		b.WriteString(NewsHAML(news[i]))
	}
	return b.String()
}
