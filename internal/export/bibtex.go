// Package export renders catalog records as BibTeX, LaTeX and HAML.
package export

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ikodrasi/publist/internal/bib"
)

// field is one "name = value" line of a BibTeX entry. Values are written
// verbatim, so braced strings must include their braces.
type field struct {
	name  string
	value string
}

func braced(s string) string {
	return "{" + s + "}"
}

// writeEntry writes an entry with aligned field names.
func writeEntry(b *strings.Builder, entryType, key string, fields []field) {
	fmt.Fprintf(b, "@%s{%s,\n", entryType, key)
	lines := make([]string, len(fields))
	for i, f := range fields {
		lines[i] = fmt.Sprintf("  %-9s = %s", f.name, f.value)
	}
	b.WriteString(strings.Join(lines, ",\n"))
	b.WriteString("\n}\n")
}

// PaperBibTeX renders a conference paper as an @inproceedings entry keyed by
// its derived filename.
func PaperBibTeX(p *bib.ConferencePaper, style bib.TitleStyle) string {
	fields := []field{
		{"author", braced(formatAuthors(p.Authors))},
		{"title", braced(protectTitle(p.Title, style))},
		{"booktitle", braced(escapeLatex(p.Conference.Name))},
		{"year", fmt.Sprint(p.Year)},
		{"month", p.Venue.Month},
		{"address", braced(p.Venue.Location())},
	}
	if p.Pages != "" {
		fields = append(fields, field{"pages", braced(p.Pages)})
	}
	if p.Conference.Publisher != "" {
		fields = append(fields, field{"publisher", braced(p.Conference.Publisher)})
	}
	if p.DOI != "" {
		fields = append(fields, field{"doi", braced(bib.BareDOI(p.DOI))})
	}
	fields = append(fields, field{"keywords", braced("conference")})

	var b strings.Builder
	writeEntry(&b, "inproceedings", p.Filename, fields)
	return b.String()
}

// ArticleKey returns the citation key of an article: journal key and year.
func ArticleKey(a *bib.JournalArticle) string {
	return fmt.Sprintf("%s%d", a.Journal.Key, a.Year)
}

// ArticleBibTeX renders a journal article as an @article entry. Articles in
// press carry a note instead of year, volume, number and pages.
func ArticleBibTeX(a *bib.JournalArticle, style bib.TitleStyle) string {
	fields := []field{
		{"author", braced(formatAuthors(a.Authors))},
		{"title", braced(protectTitle(a.Title, style))},
		{"journal", braced(protectTitle(a.Journal.Name, style))},
	}
	if a.InPress() {
		fields = append(fields, field{"note", braced("in press")})
	} else {
		fields = append(fields,
			field{"year", fmt.Sprint(a.Year)},
			field{"volume", fmt.Sprint(a.Volume)},
		)
		if a.Issue != "" {
			fields = append(fields, field{"number", braced(a.Issue)})
		}
		if a.Pages != "" {
			fields = append(fields, field{"pages", braced(a.Pages)})
		}
	}
	fields = append(fields, field{"publisher", braced(a.Journal.Publisher)})
	if a.DOI != "" {
		fields = append(fields, field{"doi", braced(bib.BareDOI(a.DOI))})
	}
	fields = append(fields, field{"keywords", braced("article")})

	var b strings.Builder
	writeEntry(&b, "article", ArticleKey(a), fields)
	return b.String()
}

// BookBibTeX renders a book as a @book entry.
func BookBibTeX(bk *bib.Book, style bib.TitleStyle) string {
	var b strings.Builder
	writeEntry(&b, "book", bk.Key, []field{
		{"author", braced(formatAuthors(bk.Authors))},
		{"title", braced(protectTitle(bk.Title, style))},
		{"publisher", braced(bk.Publisher)},
		{"year", fmt.Sprint(bk.Year)},
	})
	return b.String()
}

// StringMacros renders an @STRING definition for every conference with a
// short name.
func StringMacros(conferences []*bib.Conference) string {
	var b strings.Builder
	for _, c := range conferences {
		if c.ShortName == "" {
			continue
		}
		fmt.Fprintf(&b, "@STRING{%s = {%s}}\n", c.ShortName, escapeLatex(c.Name))
	}
	return b.String()
}

// Bibliography renders the whole .bib stream: macros, books, articles, then
// conference papers, separated by blank lines.
func Bibliography(c *bib.Catalog) string {
	style := c.TitleStyle()

	var b strings.Builder
	b.WriteString(StringMacros(c.Conferences()))
	b.WriteString("\n")
	for _, bk := range c.Books() {
		b.WriteString(BookBibTeX(bk, style))
		b.WriteString("\n")
	}
	for _, a := range c.Articles() {
		b.WriteString(ArticleBibTeX(a, style))
		b.WriteString("\n")
	}
	for _, p := range c.Papers() {
		b.WriteString(PaperBibTeX(p, style))
		b.WriteString("\n")
	}
	return b.String()
}

// formatAuthors formats authors in BibTeX style: "Last, First and Last, First"
func formatAuthors(authors []*bib.Author) string {
	var formatted []string
	for _, a := range authors {
		if a.First != "" {
			formatted = append(formatted, fmt.Sprintf("%s, %s", a.Last, a.First))
		} else {
			formatted = append(formatted, a.Last)
		}
	}
	return strings.Join(formatted, " and ")
}

// latexReplacer escapes LaTeX special characters. Braces are left alone so
// titles can carry their own protection.
var latexReplacer = strings.NewReplacer(
	"&", `\&`,
	"%", `\%`,
	"$", `\$`,
	"#", `\#`,
	"_", `\_`,
	"~", `\textasciitilde{}`,
	"^", `\textasciicircum{}`,
)

func escapeLatex(s string) string {
	return latexReplacer.Replace(s)
}

// protectTitle escapes s, wraps every configured token in braces and then
// applies the literal replacements. Tokens are escaped like the title so
// ones carrying LaTeX specials still match.
func protectTitle(s string, style bib.TitleStyle) string {
	s = escapeLatex(s)
	for _, tok := range style.Capitalize {
		s = braceToken(s, escapeLatex(tok))
	}
	for _, r := range style.Replacements {
		s = strings.ReplaceAll(s, r.Old, r.New)
	}
	return s
}

// braceToken wraps each standalone occurrence of tok outside braces in a
// brace group. Occurrences already inside braces are left as they are, so
// applying it twice is the same as applying it once.
func braceToken(s, tok string) string {
	if tok == "" {
		return s
	}

	var b strings.Builder
	depth := 0
	for i := 0; i < len(s); {
		switch c := s[i]; {
		case c == '{' && !escapedAt(s, i):
			depth++
		case c == '}' && !escapedAt(s, i) && depth > 0:
			depth--
		case depth == 0 && strings.HasPrefix(s[i:], tok) && boundaryBefore(s, i) && boundaryAfter(s, i+len(tok)):
			b.WriteString(braced(tok))
			i += len(tok)
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

func escapedAt(s string, i int) bool {
	return i > 0 && s[i-1] == '\\'
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWordRune(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !isWordRune(r)
}
