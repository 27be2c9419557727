package pdf

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// doiPattern matches "10.<registrant>/<suffix>" up to whitespace or markup.
var doiPattern = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)

// doiPages is how many leading pages are searched for a DOI.
const doiPages = 2

// ErrNoPages is returned for a PDF that parses but has no pages.
var ErrNoPages = errors.New("pdf has no pages")

// Info is what Inspect learns about a PDF.
type Info struct {
	Pages int
	DOI   string // first DOI printed on the leading pages, may be empty
}

// Inspect opens a PDF, counts its pages and searches the first pages for a
// DOI. A PDF that cannot be parsed or has no pages is an error; a missing
// DOI is not.
func Inspect(filePath string) (Info, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return Info{}, fmt.Errorf("opening %s: %w", filePath, err)
	}
	defer f.Close()

	info := Info{Pages: r.NumPage()}
	if info.Pages < 1 {
		return info, fmt.Errorf("%w: %s", ErrNoPages, filePath)
	}

	maxPages := min(doiPages, info.Pages)
	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		if doi := findDOI(text); doi != "" {
			info.DOI = doi
			break
		}
	}

	return info, nil
}

// findDOI returns the first plausible DOI printed in text. Sentence
// punctuation picked up by the pattern is dropped.
func findDOI(text string) string {
	for _, m := range doiPattern.FindAllString(text, -1) {
		if m = strings.TrimRight(m, ".,;:)"); isValidDOI(m) {
			return m
		}
	}
	return ""
}

// isValidDOI reports whether doi has a "10." prefix, a registrant and a
// non-empty suffix.
func isValidDOI(doi string) bool {
	prefix, suffix, ok := strings.Cut(doi, "/")
	return ok && len(doi) >= 10 && strings.HasPrefix(prefix, "10.") && suffix != ""
}
