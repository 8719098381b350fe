package catalog

import (
	"regexp"
	"strings"
)

type AuthorRecord struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type LetterStat struct {
	Letter string `json:"letter"`
	Count  int    `json:"count"`
}

// Row is one <tr> of the author table. A row is either a letter header
// (it carries a th cell) or a data row holding one author.
type Row interface {
	IsHeader() bool
	HeaderID() string
	HeaderText() string

	// AnchorText returns the text of the first anchor inside a td.
	AnchorText() (string, bool)
	// FallbackAnchorText returns the text of the anchor in the second td.
	FallbackAnchorText() (string, bool)
}

var reLineBreaks = regexp.MustCompile(`[\r\n]+`)

// CleanText replaces each run of line breaks with one space and trims the
// ends. Other whitespace is kept as is.
func CleanText(s string) string {
	return strings.TrimSpace(reLineBreaks.ReplaceAllString(s, " "))
}

// FormatName turns "Family, Given" into "Given Family". Text without a
// comma is returned unchanged.
func FormatName(cleaned string) string {
	family, given, found := strings.Cut(cleaned, ",")
	if !found {
		return cleaned
	}

	family = strings.TrimSpace(family)
	given = strings.TrimSpace(given)
	if given == "" {
		return family
	}

	return strings.TrimSpace(given + " " + family)
}

func Total(stats []LetterStat) int {
	sum := 0
	for _, s := range stats {
		sum += s.Count
	}

	return sum
}
