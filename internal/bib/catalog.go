package bib

// Catalog is the linked, read-only bibliography produced by Build. It is
// passed explicitly to every renderer; accessors return copies of the
// underlying slices so callers cannot reorder the tables.
type Catalog struct {
	authors        map[string]*Author
	authorList     []*Author
	conferences    map[string]*Conference
	conferenceList []*Conference
	journals       map[string]*Journal
	journalList    []*Journal
	universities   map[string]*University

	papers     []*ConferencePaper
	articles   []*JournalArticle
	books      []*Book
	news       []*NewsItem
	talks      []*InvitedTalk
	bestPapers []BestPaper

	profile Profile
	style   TitleStyle
}

// Author returns the author with the given key.
func (c *Catalog) Author(key string) (*Author, bool) {
	a, ok := c.authors[key]
	return a, ok
}

// Conference returns the conference with the given key.
func (c *Catalog) Conference(key string) (*Conference, bool) {
	conf, ok := c.conferences[key]
	return conf, ok
}

// Journal returns the journal with the given key.
func (c *Catalog) Journal(key string) (*Journal, bool) {
	j, ok := c.journals[key]
	return j, ok
}

// Authors returns all authors in declaration order.
func (c *Catalog) Authors() []*Author {
	return append([]*Author(nil), c.authorList...)
}

// Conferences returns all conferences in declaration order.
func (c *Catalog) Conferences() []*Conference {
	return append([]*Conference(nil), c.conferenceList...)
}

// Journals returns all journals in declaration order.
func (c *Catalog) Journals() []*Journal {
	return append([]*Journal(nil), c.journalList...)
}

// Papers returns all conference papers in declaration order.
func (c *Catalog) Papers() []*ConferencePaper {
	return append([]*ConferencePaper(nil), c.papers...)
}

// Articles returns all journal articles in declaration order.
func (c *Catalog) Articles() []*JournalArticle {
	return append([]*JournalArticle(nil), c.articles...)
}

// Books returns all books in declaration order.
func (c *Catalog) Books() []*Book {
	return append([]*Book(nil), c.books...)
}

// News returns all news items in declaration order.
func (c *Catalog) News() []*NewsItem {
	return append([]*NewsItem(nil), c.news...)
}

// Talks returns all invited talks in declaration order.
func (c *Catalog) Talks() []*InvitedTalk {
	return append([]*InvitedTalk(nil), c.talks...)
}

// Profile returns the bibliography owner.
func (c *Catalog) Profile() Profile {
	return c.profile
}

// TitleStyle returns the BibTeX title protection settings.
func (c *Catalog) TitleStyle() TitleStyle {
	return TitleStyle{
		Capitalize:   append([]string(nil), c.style.Capitalize...),
		Replacements: append([]Replacement(nil), c.style.Replacements...),
	}
}

// BestPaper returns the annotation for a derived paper filename.
//
// The side list is matched by filename only, so a change to PaperFilename
// silently detaches existing entries; DanglingBestPapers reports them.
func (c *Catalog) BestPaper(filename string) (BestPaper, bool) {
	for _, b := range c.bestPapers {
		if b.Filename == filename {
			return b, true
		}
	}
	return BestPaper{}, false
}

// DanglingBestPapers returns annotations that match no paper.
func (c *Catalog) DanglingBestPapers() []BestPaper {
	known := make(map[string]bool, len(c.papers))
	for _, p := range c.papers {
		known[p.Filename] = true
	}
	var dangling []BestPaper
	for _, b := range c.bestPapers {
		if !known[b.Filename] {
			dangling = append(dangling, b)
		}
	}
	return dangling
}

// Countries returns the distinct venue countries of all conference papers.
func (c *Catalog) Countries() []string {
	seen := make(map[string]bool)
	var countries []string
	for _, p := range c.papers {
		if !seen[p.Venue.Country] {
			seen[p.Venue.Country] = true
			countries = append(countries, p.Venue.Country)
		}
	}
	return countries
}
