package catalog

func ExtractAuthors(rows []Row) []AuthorRecord {
	out := []AuthorRecord{}
	next := 1

	for _, row := range rows {
		if row.IsHeader() {
			continue
		}

		name, ok := authorName(row)
		if !ok {
			continue
		}

		out = append(out, AuthorRecord{ID: next, Name: name})
		next++
	}

	return out
}

func authorName(row Row) (string, bool) {
	raw, ok := row.AnchorText()
	if !ok {
		return "", false
	}

	cleaned := CleanText(raw)
	if cleaned == "" {
		if alt, ok := row.FallbackAnchorText(); ok {
			cleaned = CleanText(alt)
		}
	}
	if cleaned == "" {
		return "", false
	}

	return FormatName(cleaned), true
}
