package export

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/ikodrasi/publist/internal/bib"
)

// hamlTemplates holds the fragment templates, parsed at init time to fail
// fast on template errors. Actions trim the preceding newline so optional
// lines disappear entirely instead of leaving blank HAML lines.
var hamlTemplates = template.Must(template.New("haml").Parse(`
{{- define "assets"}}
{{- if .DOI}}
      %a(href="{{.DOI}}" data-toggle="tooltip" data-placement="top" title="Open paper" target="_blank")
        %span.glyphicon.glyphicon-new-window
{{- end}}
{{- if .HasPDF}}
      %a.paper(href="papers/{{.Filename}}.pdf" data-toggle="tooltip" data-placement="top" title="View PDF")
        %span.glyphicon.glyphicon-cloud-download
{{- end}}
{{- end}}

{{- define "paper" -}}
.item
  .pubmain
    .pubassets{{template "assets" .}}
    %a.paper(href="papers/{{.Filename}}.pdf" target="_blank")
      %img.pubthumb(src="images/{{.Image}}.png")
    %h4.pubtitle#c{{.Number}}
      {{.Title}}
    .pubauthor
      {{.Authors}}
    .pubcite
      %span.label.label-warning Conference Paper {{.Number}}
      In {{.Conference}} ({{.ShortName}}) | {{.Location}}, {{.Month}} {{.Year}}{{.Pages}} | Publisher: {{.Publisher}}
{{- if .Best}}
    .pubcite(style="color: #990000")
      %span.glyphicon.glyphicon-certificate
      %b {{.Best}}
{{- end}}
{{end}}

{{- define "article" -}}
.item
  .pubmain
    .pubassets{{template "assets" .}}
    %a.paper(href="papers/{{.Filename}}.pdf" target="_blank")
      %img.pubthumb(src="images/{{.Image}}.png" border="0")
    %h4.pubtitle#j{{.Number}} {{.Title}}
    .pubauthor
      {{.Authors}}
    .pubcite
      %span.label.label-info Journal Article {{.Number}}
      In {{.Journal}}{{if .Info}} {{.Info}}{{end}}{{.Pages}} | Publisher: {{.Publisher}}
{{end}}

{{- define "talk" -}}
.pitem
  .pubmain(style="min-height:0px")
{{- with .University}}
    %a(href="{{.Webpage}}" target="_blank")
      %img.project-thumb(src="images/logos/{{.Key}}.png" border="0")
{{- end}}
    %h4.pubtitle {{.Title}}
    .project-description
      Talk
      %i {{.TalkTitle}}
{{- if .Host}}
      invited by {{.Host}}
{{- end}}
      ({{.Month}}{{.Year}})
{{- if .Webpage}}
    .project-description
      %a(href="{{.Webpage}}" target="_blank") More information
{{- end}}
{{end}}
`))

// AssetIndex reports which generated assets exist for a derived filename.
type AssetIndex interface {
	HasPDF(name string) bool
	HasThumbnail(name string) bool
}

// NoAssets is an AssetIndex with no files.
type NoAssets struct{}

func (NoAssets) HasPDF(string) bool       { return false }
func (NoAssets) HasThumbnail(string) bool { return false }

// Site carries what the HAML formatters need beyond the record itself.
type Site struct {
	Assets AssetIndex
	Owner  *bib.Author // highlighted in author lists, may be nil
	Best   func(filename string) (bib.BestPaper, bool)
}

// NewSite builds a Site for the catalog owner and best-paper annotations.
func NewSite(c *bib.Catalog, assets AssetIndex) Site {
	if assets == nil {
		assets = NoAssets{}
	}
	return Site{Assets: assets, Owner: c.Profile().Owner, Best: c.BestPaper}
}

// image returns the thumbnail path under images/ without extension.
func (s Site) image(filename string) string {
	if s.Assets != nil && s.Assets.HasThumbnail(filename) {
		return "thumbs/" + filename
	}
	return "nothumb"
}

func (s Site) hasPDF(filename string) bool {
	return s.Assets != nil && s.Assets.HasPDF(filename)
}

// authors lists authors one per line, the owner in bold.
func (s Site) authors(authors []*bib.Author) string {
	names := make([]string, len(authors))
	for i, a := range authors {
		names[i] = a.FullName()
		if s.Owner != nil && a.Key == s.Owner.Key {
			names[i] = "%strong " + names[i]
		}
	}
	return strings.Join(names, ",\n      ")
}

func formatPages(pages string) string {
	if pages == "" {
		return ""
	}
	return " | Pages " + strings.ReplaceAll(pages, "--", "&ndash;")
}

func doiLink(doi string) string {
	if doi == "" {
		return ""
	}
	return bib.DOIURL(doi)
}

func execute(name string, data any) string {
	var buf bytes.Buffer
	if err := hamlTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		// Templates are fixed and the data types are ours.
		panic(fmt.Sprintf("executing %s template: %v", name, err))
	}
	return buf.String()
}

type paperData struct {
	DOI        string
	HasPDF     bool
	Filename   string
	Image      string
	Number     int
	Title      string
	Authors    string
	Conference string
	ShortName  string
	Location   string
	Month      string
	Year       int
	Pages      string
	Publisher  string
	Best       string
}

// PaperHAML renders one conference paper.
func PaperHAML(p *bib.ConferencePaper, site Site) string {
	data := paperData{
		DOI:        doiLink(p.DOI),
		HasPDF:     site.hasPDF(p.Filename),
		Filename:   p.Filename,
		Image:      site.image(p.Filename),
		Number:     p.Number,
		Title:      p.Title,
		Authors:    site.authors(p.Authors),
		Conference: p.Conference.Name,
		ShortName:  p.Conference.ShortName,
		Location:   p.Venue.Location(),
		Month:      bib.MonthName(p.Venue.Month),
		Year:       p.Venue.Year,
		Pages:      formatPages(p.Pages),
		Publisher:  p.Conference.Publisher,
	}
	if site.Best != nil {
		if b, ok := site.Best(p.Filename); ok {
			data.Best = awardLabel(b.Award)
		}
	}
	return execute("paper", data)
}

func awardLabel(a bib.Award) string {
	if a == bib.AwardWinner {
		return "Best paper award"
	}
	return "Best paper candidate"
}

// PapersHAML renders all conference papers newest first with a heading per
// year.
func PapersHAML(papers []*bib.ConferencePaper, site Site) string {
	var b strings.Builder
	year := 0
	for i := len(papers) - 1; i >= 0; i-- {
		p := papers[i]
		if p.Year != year {
			year = p.Year
			fmt.Fprintf(&b, "%%h4 %d\n", year)
		}
		b.WriteString(PaperHAML(p, site))
	}
	return b.String()
}

type articleData struct {
	DOI       string
	HasPDF    bool
	Filename  string
	Image     string
	Number    int
	Title     string
	Authors   string
	Journal   string
	Info      string
	Pages     string
	Publisher string
}

// ArticleHAML renders one journal article.
func ArticleHAML(a *bib.JournalArticle, site Site) string {
	data := articleData{
		DOI:       doiLink(a.DOI),
		HasPDF:    site.hasPDF(a.Filename),
		Filename:  a.Filename,
		Image:     site.image(a.Filename),
		Number:    a.Number,
		Title:     a.Title,
		Authors:   site.authors(a.Authors),
		Journal:   a.Journal.Name,
		Pages:     formatPages(a.Pages),
		Publisher: a.Journal.Publisher,
	}
	if !a.InPress() {
		issue := ""
		if a.Issue != "" {
			issue = "(" + a.Issue + ")"
		}
		data.Info = fmt.Sprintf("%d%s, %d", a.Volume, issue, a.Year)
	}
	return execute("article", data)
}

func articleHeading(a *bib.JournalArticle) string {
	if a.InPress() {
		return "In press"
	}
	return fmt.Sprint(a.Year)
}

// ArticlesHAML renders all journal articles newest first with a heading per
// year; articles in press are grouped under "In press".
func ArticlesHAML(articles []*bib.JournalArticle, site Site) string {
	var b strings.Builder
	heading := ""
	for i := len(articles) - 1; i >= 0; i-- {
		a := articles[i]
		if h := articleHeading(a); h != heading {
			heading = h
			fmt.Fprintf(&b, "%%h4 %s\n", heading)
		}
		b.WriteString(ArticleHAML(a, site))
	}
	return b.String()
}

type talkData struct {
	University *bib.University
	Title      string
	TalkTitle  string
	Host       string
	Month      string
	Year       int
	Webpage    string
}

// InvitedTalkHAML renders one invited talk. University talks show the
// university logo and host; conference talks are titled by the conference.
func InvitedTalkHAML(t *bib.InvitedTalk) string {
	data := talkData{
		TalkTitle: t.Title,
		Year:      t.Year,
		Webpage:   t.Webpage,
	}
	if t.Month != "" {
		data.Month = bib.MonthName(t.Month) + " "
	}

	switch t.Kind {
	case bib.TalkUniversity:
		u := t.University
		data.University = u
		data.Title = u.Name
		if u.OriginalName != "" {
			data.Title += " (" + u.OriginalName + ")"
		}
		data.Host = t.Host
	case bib.TalkConference:
		data.Title = fmt.Sprintf("%s %d", t.Conference.Name, t.Year)
	}
	return execute("talk", data)
}

// InvitedTalksHAML renders all talks in declaration order separated by
// blank lines.
func InvitedTalksHAML(talks []*bib.InvitedTalk) string {
	blocks := make([]string, len(talks))
	for i, t := range talks {
		blocks[i] = InvitedTalkHAML(t)
	}
	return strings.Join(blocks, "\n")
}
