package catalog

import (
	"strings"
	"unicode/utf8"
)

// ExtractLetterStats counts the data rows that follow each header row.
//
// A header whose identifier is empty resets the running count but keeps the
// previous letter, so the rows after it are counted under that letter again.
// Data rows before the first usable header are never emitted.
func ExtractLetterStats(rows []Row) []LetterStat {
	var (
		out     = []LetterStat{}
		current string
		count   int
	)

	for _, row := range rows {
		if !row.IsHeader() {
			count++
			continue
		}

		if current != "" && count > 0 {
			out = append(out, LetterStat{Letter: strings.ToUpper(current), Count: count})
		}
		count = 0

		if l := firstLetter(headerIdentifier(row)); l != "" {
			current = l
		}
	}

	if current != "" && count > 0 {
		out = append(out, LetterStat{Letter: strings.ToUpper(current), Count: count})
	}

	return out
}

func headerIdentifier(row Row) string {
	if id := row.HeaderID(); id != "" {
		return id
	}

	return CleanText(row.HeaderText())
}

func firstLetter(s string) string {
	if s == "" {
		return ""
	}

	r, _ := utf8.DecodeRuneInString(s)

	return string(r)
}
