package bib

import "fmt"

// PaperFilename derives the name shared by a paper's PDF, its thumbnail and
// its page anchor: "<year>_<conf>", or "<year>_<conf>_<n>" when several
// papers share the conference and year. n is the 1-based position among those
// papers in declaration order. A paper missing from papers is numbered as if
// it were appended.
func PaperFilename(p *ConferencePaper, papers []*ConferencePaper) string {
	key := p.Conference.Key
	same, pos := 0, 0
	for _, q := range papers {
		if q.Conference.Key != key || q.Year != p.Year {
			continue
		}
		same++
		if q == p {
			pos = same
		}
	}
	if pos == 0 {
		same++
		pos = same
	}

	if same == 1 {
		return fmt.Sprintf("%d_%s", p.Year, key)
	}
	return fmt.Sprintf("%d_%s_%d", p.Year, key, pos)
}

// ArticleFilename derives "<volume>_<journal>". Volumes are assumed unique
// per journal; the in-press volume -1 is used as is.
func ArticleFilename(a *JournalArticle) string {
	return fmt.Sprintf("%d_%s", a.Volume, a.Journal.Key)
}
