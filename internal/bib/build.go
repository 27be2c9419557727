package bib

import (
	"fmt"
	"strings"
)

// Build resolves the literal tables into a Catalog. Kinds are built in
// dependency order so that every identifier is replaced by a pointer to an
// already built record. The first malformed tuple, unknown key or duplicate
// key aborts the build.
func Build(t Tables) (*Catalog, error) {
	c := &Catalog{
		authors:      make(map[string]*Author),
		conferences:  make(map[string]*Conference),
		journals:     make(map[string]*Journal),
		universities: make(map[string]*University),
	}

	steps := []struct {
		name string
		fn   func(Tables) error
	}{
		{"authors", c.buildAuthors},
		{"conferences", c.buildConferences},
		{"journals", c.buildJournals},
		{"universities", c.buildUniversities},
		{"papers", c.buildPapers},
		{"articles", c.buildArticles},
		{"books", c.buildBooks},
		{"news", c.buildNews},
		{"talks", c.buildTalks},
		{"best papers", c.buildBestPapers},
		{"profile", c.buildProfile},
		{"title style", c.buildStyle},
	}
	for _, s := range steps {
		if err := s.fn(t); err != nil {
			return nil, fmt.Errorf("building %s: %w", s.name, err)
		}
	}

	return c, nil
}

func (c *Catalog) buildAuthors(t Tables) error {
	for i, row := range t.Authors {
		r := newReader("author", i, row, 3)
		a := &Author{
			Key:   r.text(0, "key"),
			First: r.text(1, "first"),
			Last:  r.text(2, "last"),
		}
		if r.err != nil {
			return r.err
		}
		if _, dup := c.authors[a.Key]; dup {
			return &DuplicateKeyError{Table: "author", Key: a.Key}
		}
		c.authors[a.Key] = a
		c.authorList = append(c.authorList, a)
	}
	return nil
}

func (c *Catalog) buildConferences(t Tables) error {
	for i, row := range t.Conferences {
		r := newReader("conference", i, row, 5)
		conf := &Conference{
			Key:       r.text(0, "key"),
			ShortName: r.text(1, "shortname"),
			Name:      strings.TrimSpace(r.text(2, "name")),
			Publisher: r.text(3, "publisher"),
			Type:      ConferenceType,
			Venues:    make(map[int]*Venue),
		}
		venues := r.tuples(4, "venues")
		if r.err != nil {
			return r.err
		}
		if _, dup := c.conferences[conf.Key]; dup {
			return &DuplicateKeyError{Table: "conference", Key: conf.Key}
		}

		for j, vrow := range venues {
			vr := newReader("venue of "+conf.Key, j, vrow, 4)
			v := &Venue{
				Year:    vr.integer(0, "year"),
				Month:   vr.month(1, "month", false),
				City:    strings.TrimSpace(vr.text(2, "city")),
				Country: strings.TrimSpace(vr.text(3, "country")),
			}
			if vr.err != nil {
				return vr.err
			}
			if _, dup := conf.Venues[v.Year]; dup {
				return &DuplicateKeyError{Table: "venue of " + conf.Key, Key: fmt.Sprint(v.Year)}
			}
			conf.Venues[v.Year] = v
			conf.VenueList = append(conf.VenueList, v)
		}

		c.conferences[conf.Key] = conf
		c.conferenceList = append(c.conferenceList, conf)
	}
	return nil
}

func (c *Catalog) buildJournals(t Tables) error {
	for i, row := range t.Journals {
		r := newReader("journal", i, row, 4)
		j := &Journal{
			Key:       r.text(0, "key"),
			Name:      r.text(1, "name"),
			Publisher: r.text(2, "publisher"),
			Webpage:   r.text(3, "webpage"),
		}
		if r.err != nil {
			return r.err
		}
		if _, dup := c.journals[j.Key]; dup {
			return &DuplicateKeyError{Table: "journal", Key: j.Key}
		}
		c.journals[j.Key] = j
		c.journalList = append(c.journalList, j)
	}
	return nil
}

func (c *Catalog) buildUniversities(t Tables) error {
	for i, row := range t.Universities {
		r := newReader("university", i, row, 6)
		u := &University{
			Key:          r.text(0, "key"),
			Name:         r.text(1, "name"),
			City:         r.text(2, "city"),
			Country:      r.text(3, "country"),
			Webpage:      r.text(4, "webpage"),
			OriginalName: r.text(5, "original_name"),
		}
		if r.err != nil {
			return r.err
		}
		if _, dup := c.universities[u.Key]; dup {
			return &DuplicateKeyError{Table: "university", Key: u.Key}
		}
		c.universities[u.Key] = u
	}
	return nil
}

// resolveAuthors maps author keys to records, preserving order.
func (c *Catalog) resolveAuthors(kind string, index int, keys []string) ([]*Author, error) {
	authors := make([]*Author, len(keys))
	for i, k := range keys {
		a, ok := c.authors[k]
		if !ok {
			return nil, &UnresolvedReferenceError{Kind: kind, Index: index, Table: "author", Key: k}
		}
		authors[i] = a
	}
	return authors, nil
}

// resolveVenue looks up a conference and its venue for the given year.
func (c *Catalog) resolveVenue(kind string, index int, key string, year int) (*Conference, *Venue, error) {
	conf, ok := c.conferences[key]
	if !ok {
		return nil, nil, &UnresolvedReferenceError{Kind: kind, Index: index, Table: "conference", Key: key}
	}
	venue, ok := conf.Venues[year]
	if !ok {
		return nil, nil, &UnresolvedReferenceError{
			Kind:  kind,
			Index: index,
			Table: "venue year of " + key,
			Key:   fmt.Sprint(year),
		}
	}
	return conf, venue, nil
}

func (c *Catalog) buildPapers(t Tables) error {
	for i, row := range t.Papers {
		r := newReader("paper", i, row, 6)
		keys := r.keys(0, "authors")
		confKey := r.text(1, "conference")
		p := &ConferencePaper{
			Year:  r.integer(2, "year"),
			Title: strings.TrimSpace(r.text(3, "title")),
			Pages: r.text(4, "pages"),
			DOI:   r.text(5, "doi"),
		}
		if r.err != nil {
			return r.err
		}

		var err error
		if p.Authors, err = c.resolveAuthors("paper", i, keys); err != nil {
			return err
		}
		if p.Conference, p.Venue, err = c.resolveVenue("paper", i, confKey, p.Year); err != nil {
			return err
		}
		c.papers = append(c.papers, p)
	}

	for i, p := range c.papers {
		p.Number = i + 1
		p.Filename = PaperFilename(p, c.papers)
	}
	return nil
}

func (c *Catalog) buildArticles(t Tables) error {
	for i, row := range t.Articles {
		r := newReader("article", i, row, 8)
		keys := r.keys(0, "authors")
		journalKey := r.text(1, "journal")
		a := &JournalArticle{
			Volume: r.integer(2, "volume"),
			Issue:  r.text(3, "number"),
			Year:   r.integer(4, "year"),
			Title:  strings.TrimSpace(r.text(5, "title")),
			Pages:  r.text(6, "pages"),
			DOI:    r.text(7, "doi"),
		}
		if r.err != nil {
			return r.err
		}

		var err error
		if a.Authors, err = c.resolveAuthors("article", i, keys); err != nil {
			return err
		}
		j, ok := c.journals[journalKey]
		if !ok {
			return &UnresolvedReferenceError{Kind: "article", Index: i, Table: "journal", Key: journalKey}
		}
		a.Journal = j
		a.Number = i + 1
		a.Filename = ArticleFilename(a)
		c.articles = append(c.articles, a)
	}
	return nil
}

func (c *Catalog) buildBooks(t Tables) error {
	seen := make(map[string]bool)
	for i, row := range t.Books {
		r := newReader("book", i, row, 5)
		b := &Book{Key: r.text(0, "key")}
		keys := r.keys(1, "authors")
		b.Title = r.text(2, "title")
		b.Publisher = r.text(3, "publisher")
		b.Year = r.integer(4, "year")
		if r.err != nil {
			return r.err
		}
		if seen[b.Key] {
			return &DuplicateKeyError{Table: "book", Key: b.Key}
		}
		seen[b.Key] = true

		var err error
		if b.Authors, err = c.resolveAuthors("book", i, keys); err != nil {
			return err
		}
		c.books = append(c.books, b)
	}
	return nil
}

const tutorialTag = "tutorial"

func (c *Catalog) buildNews(t Tables) error {
	for i, row := range t.News {
		r := newReader("news", i, row, 2, 6)
		if r.err != nil {
			return r.err
		}

		var (
			n   *NewsItem
			err error
		)
		if len(row) == 6 {
			n, err = c.makeTutorial(r)
		} else {
			n, err = c.makeAnnouncement(r)
		}
		if err != nil {
			return err
		}
		c.news = append(c.news, n)
	}
	return nil
}

func (c *Catalog) makeTutorial(r *reader) (*NewsItem, error) {
	if tag := r.text(0, "type"); r.err == nil && tag != tutorialTag {
		r.fail("type", "want %q, got %q", tutorialTag, tag)
	}
	tut := &Tutorial{
		Name:         r.text(1, "name"),
		URL:          r.text(2, "url"),
		Introduction: r.text(3, "introduction"),
	}
	keys := r.keys(4, "authors")
	loc := r.tuple(5, "location")
	if r.err != nil {
		return nil, r.err
	}

	lr := newReader("news location", r.index, loc, 2)
	confKey := lr.text(0, "conference")
	year := lr.integer(1, "year")
	if lr.err != nil {
		return nil, lr.err
	}

	var err error
	if tut.Authors, err = c.resolveAuthors("news", r.index, keys); err != nil {
		return nil, err
	}
	if tut.Conference, tut.Venue, err = c.resolveVenue("news", r.index, confKey, year); err != nil {
		return nil, err
	}
	return &NewsItem{Kind: NewsTutorial, Key: confKey, Year: year, Tutorial: tut}, nil
}

// makeAnnouncement groups the papers or articles matching (key, year) in
// reverse declaration order.
func (c *Catalog) makeAnnouncement(r *reader) (*NewsItem, error) {
	key := r.text(0, "venue")
	year := r.integer(1, "year")
	if r.err != nil {
		return nil, r.err
	}

	if _, ok := c.conferences[key]; ok {
		if _, _, err := c.resolveVenue("news", r.index, key, year); err != nil {
			return nil, err
		}
		n := &NewsItem{Kind: NewsConference, Key: key, Year: year}
		for i := len(c.papers) - 1; i >= 0; i-- {
			if p := c.papers[i]; p.Conference.Key == key && p.Year == year {
				n.Papers = append(n.Papers, p)
			}
		}
		if len(n.Papers) == 0 {
			return nil, &UnresolvedReferenceError{Kind: "news", Index: r.index, Table: "paper at " + key, Key: fmt.Sprint(year)}
		}
		return n, nil
	}

	if _, ok := c.journals[key]; ok {
		n := &NewsItem{Kind: NewsJournal, Key: key, Year: year}
		for i := len(c.articles) - 1; i >= 0; i-- {
			if a := c.articles[i]; a.Journal.Key == key && a.Volume == year {
				n.Articles = append(n.Articles, a)
			}
		}
		if len(n.Articles) == 0 {
			return nil, &UnresolvedReferenceError{Kind: "news", Index: r.index, Table: "article in " + key + " volume", Key: fmt.Sprint(year)}
		}
		return n, nil
	}

	return nil, &UnresolvedReferenceError{Kind: "news", Index: r.index, Table: "conference or journal", Key: key}
}

const (
	talkUniversityTag = "uni"
	talkConferenceTag = "conf"
)

func (c *Catalog) buildTalks(t Tables) error {
	for i, row := range t.Talks {
		r := newReader("talk", i, row, 6)
		tag := r.text(0, "type")
		talk := &InvitedTalk{
			Title:   r.text(1, "title"),
			Month:   r.month(2, "month", true),
			Year:    r.integer(3, "year"),
			Webpage: r.text(4, "webpage"),
		}
		if r.err != nil {
			return r.err
		}

		switch tag {
		case talkUniversityTag:
			host := r.tuple(5, "host")
			if r.err != nil {
				return r.err
			}
			hr := newReader("talk host", i, host, 2)
			uniKey := hr.text(0, "university")
			talk.Host = hr.text(1, "name")
			if hr.err != nil {
				return hr.err
			}
			u, ok := c.universities[uniKey]
			if !ok {
				return &UnresolvedReferenceError{Kind: "talk", Index: i, Table: "university", Key: uniKey}
			}
			talk.Kind = TalkUniversity
			talk.University = u
		case talkConferenceTag:
			confKey := r.text(5, "conference")
			if r.err != nil {
				return r.err
			}
			conf, ok := c.conferences[confKey]
			if !ok {
				return &UnresolvedReferenceError{Kind: "talk", Index: i, Table: "conference", Key: confKey}
			}
			talk.Kind = TalkConference
			talk.Conference = conf
		default:
			r.fail("type", "want %q or %q, got %q", talkUniversityTag, talkConferenceTag, tag)
			return r.err
		}
		c.talks = append(c.talks, talk)
	}
	return nil
}

func (c *Catalog) buildBestPapers(t Tables) error {
	for i, row := range t.BestPapers {
		r := newReader("best paper", i, row, 2)
		b := BestPaper{Filename: r.text(0, "filename")}
		switch award := r.text(1, "award"); {
		case r.err != nil:
			return r.err
		case award == "c":
			b.Award = AwardCandidate
		case award == "w":
			b.Award = AwardWinner
		default:
			r.fail("award", "want c or w, got %q", award)
			return r.err
		}
		c.bestPapers = append(c.bestPapers, b)
	}
	return nil
}

func (c *Catalog) buildProfile(t Tables) error {
	c.profile.Affiliation = t.Affiliation
	if t.Owner == "" {
		return nil
	}
	a, ok := c.authors[t.Owner]
	if !ok {
		return &UnresolvedReferenceError{Kind: "profile", Table: "author", Key: t.Owner}
	}
	c.profile.Owner = a
	return nil
}

func (c *Catalog) buildStyle(t Tables) error {
	c.style.Capitalize = append([]string(nil), t.Capitalize...)
	for i, row := range t.Replacements {
		r := newReader("replacement", i, row, 2)
		rep := Replacement{Old: r.text(0, "old"), New: r.text(1, "new")}
		if r.err != nil {
			return r.err
		}
		c.style.Replacements = append(c.style.Replacements, rep)
	}
	return nil
}
