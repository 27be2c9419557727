package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// outputJSON writes a value as formatted JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if jsonOutput {
		outputJSON(os.Stdout, ErrorResponse{Error: msg})
	} else {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatsResponse is the response for the stats operation.
type StatsResponse struct {
	Authors          int `json:"authors"`
	ConferencePapers int `json:"conference_papers"`
	Countries        int `json:"countries"`
	JournalArticles  int `json:"journal_articles"`
	Books            int `json:"books"`
	News             int `json:"news"`
	InvitedTalks     int `json:"invited_talks"`
}

// CheckResult is the response for the check operation.
type CheckResult struct {
	Status   string       `json:"status"`
	Papers   int          `json:"papers"`
	Articles int          `json:"articles"`
	Books    int          `json:"books"`
	Cache    *CacheStats  `json:"cache,omitempty"`
	Issues   []CheckIssue `json:"issues"`
}

// CacheStats counts the records in the sqlite cache.
type CacheStats struct {
	Geocodes   int `json:"geocodes"`
	Thumbnails int `json:"thumbnails"`
}

// CheckIssue represents a single issue found during check.
type CheckIssue struct {
	Type   string `json:"type"`
	ID     string `json:"id"`
	Reason string `json:"reason,omitempty"`
}
