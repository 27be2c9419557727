// Package bib defines the bibliography records and the resolver that turns
// flat literal tuples into a linked, read-only Catalog.
package bib

// Author is a person appearing in author lists.
type Author struct {
	Key   string // short mnemonic, unique across the dataset
	First string
	Last  string
}

// FullName returns "First Last".
func (a *Author) FullName() string {
	if a.First == "" {
		return a.Last
	}
	return a.First + " " + a.Last
}

// Venue is one year's occurrence of a conference.
type Venue struct {
	Year    int
	Month   string // BibTeX month macro: jan, feb, ...
	City    string
	Country string
}

// Location returns "City, Country".
func (v *Venue) Location() string {
	return v.City + ", " + v.Country
}

// ConferenceType is the discriminator carried by every Conference.
const ConferenceType = "conference"

// Conference is a recurring conference or workshop.
type Conference struct {
	Key       string
	ShortName string
	Name      string
	Publisher string
	Type      string

	Venues    map[int]*Venue // keyed by year
	VenueList []*Venue       // declaration order
}

// Journal is a periodical.
type Journal struct {
	Key       string
	Name      string
	Publisher string
	Webpage   string
}

// University hosts invited talks.
type University struct {
	Key          string
	Name         string
	City         string
	Country      string
	Webpage      string
	OriginalName string // name in the local language, may be empty
}

// ConferencePaper is a paper published in conference proceedings.
type ConferencePaper struct {
	Authors    []*Author
	Conference *Conference
	Venue      *Venue
	Year       int
	Title      string
	Pages      string
	DOI        string

	Filename string // derived asset name and anchor, see PaperFilename
	Number   int    // 1-based declaration position
}

// InPress is the volume sentinel for accepted articles without a volume.
const InPress = -1

// JournalArticle is an article published in a journal.
type JournalArticle struct {
	Authors []*Author
	Journal *Journal
	Volume  int
	Issue   string
	Year    int
	Title   string
	Pages   string
	DOI     string

	Filename string
	Number   int
}

// InPress reports whether the article has not been assigned a volume yet.
func (a *JournalArticle) InPress() bool {
	return a.Volume == InPress
}

// Book is a monograph, typically a thesis.
type Book struct {
	Key       string
	Authors   []*Author
	Title     string
	Publisher string
	Year      int
}

// NewsKind discriminates the NewsItem variants.
type NewsKind int

const (
	NewsConference NewsKind = iota
	NewsJournal
	NewsTutorial
)

func (k NewsKind) String() string {
	switch k {
	case NewsConference:
		return "conference"
	case NewsJournal:
		return "journal"
	case NewsTutorial:
		return "tutorial"
	default:
		return "unknown"
	}
}

// NewsItem announces accepted papers, accepted articles or a tutorial.
type NewsItem struct {
	Kind NewsKind

	// Conference announcements: every paper at (Key, Year).
	// Journal announcements: every article in volume Year of journal Key.
	Key      string
	Year     int
	Papers   []*ConferencePaper
	Articles []*JournalArticle

	Tutorial *Tutorial
}

// Tutorial is a tutorial given at a conference.
type Tutorial struct {
	Name         string
	URL          string
	Introduction string
	Authors      []*Author
	Conference   *Conference
	Venue        *Venue
}

// TalkKind discriminates the InvitedTalk variants.
type TalkKind int

const (
	TalkUniversity TalkKind = iota
	TalkConference
)

// InvitedTalk is a talk given on invitation.
type InvitedTalk struct {
	Kind    TalkKind
	Title   string
	Month   string // month macro or empty
	Year    int
	Webpage string

	University *University // TalkUniversity
	Host       string      // TalkUniversity

	Conference *Conference // TalkConference
}

// Award is the kind of best-paper annotation.
type Award int

const (
	AwardCandidate Award = iota
	AwardWinner
)

// BestPaper annotates the paper whose derived filename equals Filename.
type BestPaper struct {
	Filename string
	Award    Award
}

// Profile names the owner of the bibliography.
type Profile struct {
	Owner       *Author
	Affiliation string
}

// Replacement is a literal substitution applied to BibTeX titles.
type Replacement struct {
	Old string
	New string
}

// TitleStyle configures BibTeX title protection.
type TitleStyle struct {
	Capitalize   []string
	Replacements []Replacement
}

var monthNames = map[string]string{
	"jan": "January",
	"feb": "February",
	"mar": "March",
	"apr": "April",
	"may": "May",
	"jun": "June",
	"jul": "July",
	"aug": "August",
	"sep": "September",
	"oct": "October",
	"nov": "November",
	"dec": "December",
}

// MonthName returns the English name for a month macro, or "" if unknown.
func MonthName(macro string) string {
	return monthNames[macro]
}

// IsMonth reports whether macro is one of jan..dec.
func IsMonth(macro string) bool {
	_, ok := monthNames[macro]
	return ok
}
