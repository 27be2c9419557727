package export

import (
	"bytes"
	"text/template"

	"github.com/ikodrasi/publist/internal/bib"
)

// latexTemplate is parsed at init time to fail fast on template errors.
var latexTemplate = template.Must(template.New("latex").Parse(`\documentclass[conference]{IEEEtran}
\usepackage[utf8]{inputenc}
\usepackage[T1]{fontenc}

\usepackage[backend=biber,style=ieee]{biblatex}
\addbibresource{ {{- .BibFile -}} }

\title{List of Publications}
\author{
  \IEEEauthorblockN{ {{- .Name -}} }
  \IEEEauthorblockA{ {{- .Affiliation -}} }
}

\begin{document}
  \maketitle

  \nocite{*}
  \printbibliography[type=book,title={Books}]
  \printbibliography[type=article,keyword=article,title={Journal articles}]
  \printbibliography[type=inproceedings,keyword=conference,title={Conference papers}]
\end{document}
`))

// DefaultBibFile is the bibliography resource named in the LaTeX document.
const DefaultBibFile = "publications.bib"

type latexData struct {
	BibFile     string
	Name        string
	Affiliation string
}

// LaTeXDocument renders the publication list skeleton that typesets the
// generated bibliography with biblatex.
func LaTeXDocument(profile bib.Profile, bibFile string) (string, error) {
	if bibFile == "" {
		bibFile = DefaultBibFile
	}
	data := latexData{BibFile: bibFile, Affiliation: profile.Affiliation}
	if profile.Owner != nil {
		data.Name = profile.Owner.FullName()
	}

	var buf bytes.Buffer
	if err := latexTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
