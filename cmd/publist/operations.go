package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Operation is one of the fixed publist operations. The set is closed: the
// command tree is generated from operations and nothing else.
type Operation int

const (
	OpPublications Operation = iota
	OpHAML
	OpHAMLArticle
	OpHAMLNews
	OpHAMLInvited
	OpStats
	OpPDFs
	OpGeo
	OpCheck
)

// operation describes how an Operation is exposed and run.
type operation struct {
	name  string
	short string
	long  string
	run   func(e *env) error
}

// operations is indexed by Operation.
var operations = [...]operation{
	OpPublications: {
		name:  "publications",
		short: "Print the BibTeX bibliography and write the LaTeX wrapper",
		long: `Print the BibTeX bibliography to stdout: @STRING macros for conference
short names, then books, journal articles and conference papers.
Also writes the LaTeX document that typesets it (latex_file, overwritten).`,
		run: runPublications,
	},
	OpHAML: {
		name:  "haml",
		short: "Print conference papers as HAML, newest first",
		run:   runHAML,
	},
	OpHAMLArticle: {
		name:  "haml-article",
		short: "Print journal articles as HAML, newest first",
		run:   runHAMLArticle,
	},
	OpHAMLNews: {
		name:  "haml-news",
		short: "Print the news feed as HAML, newest first",
		run:   runHAMLNews,
	},
	OpHAMLInvited: {
		name:  "haml-invited",
		short: "Print invited talks as HAML",
		run:   runHAMLInvited,
	},
	OpStats: {
		name:  "stats",
		short: "Print author, paper and country counts",
		run:   runStats,
	},
	OpPDFs: {
		name:  "pdfs",
		short: "Create missing or stale paper thumbnails",
		long: `Render the first page of every paper and article PDF found in papers_dir
to a thumbnail in thumbs_dir. A thumbnail is regenerated when its PDF
content or the configured height changed. Missing PDFs are reported.`,
		run: runPDFs,
	},
	OpGeo: {
		name:  "geo",
		short: "Print map markers for every conference venue",
		long: `Geocode every distinct conference venue and print one JavaScript marker
literal per venue. Answers are cached, so only new venues hit the
geocoding service.`,
		run: runGeo,
	},
	OpCheck: {
		name:  "check",
		short: "Validate the dataset and report problems",
		run:   runCheck,
	},
}

func (o Operation) String() string {
	if o < 0 || int(o) >= len(operations) {
		return fmt.Sprintf("Operation(%d)", int(o))
	}
	return operations[o].name
}

// Operations returns every Operation in declaration order.
func Operations() []Operation {
	ops := make([]Operation, len(operations))
	for i := range operations {
		ops[i] = Operation(i)
	}
	return ops
}

// command builds the cobra command for an Operation.
func (o Operation) command() *cobra.Command {
	op := operations[o]
	return &cobra.Command{
		Use:   op.name,
		Short: op.short,
		Long:  op.long,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if err := op.run(newEnv(cmd)); err != nil {
				exitWithError(ExitError, "%s: %v", op.name, err)
			}
		},
	}
}

func init() {
	for _, o := range Operations() {
		rootCmd.AddCommand(o.command())
	}
}
