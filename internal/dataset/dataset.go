// Package dataset holds the bibliography literal tables compiled into the
// binary and decodes them into bib.Tables.
package dataset

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/ikodrasi/publist/internal/bib"
	"gopkg.in/yaml.v3"
)

//go:embed publications.yaml
var embedded []byte

// file mirrors the YAML layout of publications.yaml.
type file struct {
	Owner        string    `yaml:"owner"`
	Affiliation  string    `yaml:"affiliation"`
	Capitalize   []string  `yaml:"capitalize"`
	Replacements []bib.Row `yaml:"replacements"`
	Authors      []bib.Row `yaml:"authors"`
	Conferences  []bib.Row `yaml:"conferences"`
	Journals     []bib.Row `yaml:"journals"`
	Universities []bib.Row `yaml:"universities"`
	Papers       []bib.Row `yaml:"papers"`
	Articles     []bib.Row `yaml:"articles"`
	Books        []bib.Row `yaml:"books"`
	BestPapers   []bib.Row `yaml:"best_papers"`
	News         []bib.Row `yaml:"news"`
	Talks        []bib.Row `yaml:"talks"`
}

// Load decodes the embedded tables.
func Load() (*bib.Tables, error) {
	return Parse(embedded)
}

// LoadFile decodes tables from a file with the same layout as the embedded one.
func LoadFile(path string) (*bib.Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	return Parse(data)
}

// Parse decodes tables from YAML.
func Parse(data []byte) (*bib.Tables, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}

	return &bib.Tables{
		Authors:      f.Authors,
		Conferences:  f.Conferences,
		Journals:     f.Journals,
		Universities: f.Universities,
		Papers:       f.Papers,
		Articles:     f.Articles,
		Books:        f.Books,
		News:         f.News,
		Talks:        f.Talks,
		BestPapers:   f.BestPapers,
		Capitalize:   f.Capitalize,
		Replacements: f.Replacements,
		Owner:        f.Owner,
		Affiliation:  f.Affiliation,
	}, nil
}

// Catalog loads the tables from path, or the embedded ones when path is
// empty, and builds the catalog.
func Catalog(path string) (*bib.Catalog, error) {
	var (
		tables *bib.Tables
		err    error
	)
	if path == "" {
		tables, err = Load()
	} else {
		tables, err = LoadFile(path)
	}
	if err != nil {
		return nil, err
	}
	return bib.Build(*tables)
}
