package bib

import "strings"

// BareDOI strips resolver prefixes such as "https://doi.org/" from a DOI.
func BareDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	for _, prefix := range []string{"https://doi.org/", "http://doi.org/", "https://dx.doi.org/", "http://dx.doi.org/", "doi.org/", "DOI:", "doi:"} {
		doi = strings.TrimPrefix(doi, prefix)
	}
	return strings.TrimSpace(doi)
}

// NormalizeDOI returns a DOI suitable for comparison. DOIs are
// case-insensitive.
func NormalizeDOI(doi string) string {
	return strings.ToLower(BareDOI(doi))
}

// DOIURL returns a resolvable link for a DOI that may already be a URL.
func DOIURL(doi string) string {
	if strings.HasPrefix(doi, "http://") || strings.HasPrefix(doi, "https://") {
		return doi
	}
	return "https://doi.org/" + BareDOI(doi)
}
