package export

import (
	"bufio"
	"io"
	"regexp"
	"strings"
)

// entryStartRegex matches the start of a regular entry: @type{key,
var entryStartRegex = regexp.MustCompile(`^@(\w+)\{([^,]+),`)

// CitationKeys scans a .bib stream and counts the citation keys it defines.
// @STRING definitions are not entries and are skipped.
func CitationKeys(r io.Reader) (map[string]int, error) {
	keys := make(map[string]int)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		matches := entryStartRegex.FindStringSubmatch(scanner.Text())
		if len(matches) < 3 || strings.EqualFold(matches[1], "string") {
			continue
		}
		keys[strings.TrimSpace(matches[2])]++
	}

	return keys, scanner.Err()
}

// DuplicateCitationKeys returns the keys defined more than once in a .bib
// stream, in first-seen order.
func DuplicateCitationKeys(bibtex string) ([]string, error) {
	counts, err := CitationKeys(strings.NewReader(bibtex))
	if err != nil {
		return nil, err
	}

	var dups []string
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(strings.NewReader(bibtex))
	for scanner.Scan() {
		matches := entryStartRegex.FindStringSubmatch(scanner.Text())
		if len(matches) < 3 {
			continue
		}
		key := strings.TrimSpace(matches[2])
		if counts[key] > 1 && !seen[key] {
			seen[key] = true
			dups = append(dups, key)
		}
	}
	return dups, scanner.Err()
}
