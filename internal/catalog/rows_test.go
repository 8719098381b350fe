package catalog

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `<html><body>
<table id="autores">
<tr><th id="A">A</th></tr>
<tr><td><a href="marx/index.htm">Marx,
 Karl</a></td></tr>
<tr><td><a href="engels/index.htm">Engels, Friedrich</a></td></tr>
<tr><th id="B">B</th></tr>
<tr><td><a href="#"></a></td><td><a href="bakunin/index.htm">Bakunin, Mikhail</a></td></tr>
<tr><th>c</th></tr>
<tr><td><a href="connolly/index.htm">Connolly, James</a></td></tr>
<tr><th id="D">D</th></tr>
</table>
<table id="outros"><tr><td><a href="#">Ignored, Row</a></td></tr></table>
</body></html>`

func TestRowsFromSelection(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fixture))
	require.NoError(t, err)

	rows := RowsFromSelection(doc.Find("#autores tr"))
	require.Len(t, rows, 8)

	assert.True(t, rows[0].IsHeader())
	assert.Equal(t, "A", rows[0].HeaderID())
	assert.False(t, rows[1].IsHeader())
	assert.Equal(t, "", rows[5].HeaderID())
	assert.Equal(t, "c", rows[5].HeaderText())

	txt, ok := rows[4].AnchorText()
	assert.True(t, ok)
	assert.Equal(t, "", txt)

	txt, ok = rows[4].FallbackAnchorText()
	assert.True(t, ok)
	assert.Equal(t, "Bakunin, Mikhail", txt)

	_, ok = rows[0].AnchorText()
	assert.False(t, ok)
}

func TestExtract_FromHTML(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fixture))
	require.NoError(t, err)

	rows := RowsFromSelection(doc.Find("#autores tr"))

	authors := ExtractAuthors(rows)
	stats := ExtractLetterStats(rows)

	assert.Equal(t, []AuthorRecord{
		{ID: 1, Name: "Karl Marx"},
		{ID: 2, Name: "Friedrich Engels"},
		{ID: 3, Name: "Mikhail Bakunin"},
		{ID: 4, Name: "James Connolly"},
	}, authors)
	assert.Equal(t, []LetterStat{{"A", 2}, {"B", 1}, {"C", 1}}, stats)
	assert.Equal(t, len(authors), Total(stats))
}

func TestRowsFromSelection_Empty(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body><p>nothing</p></body></html>"))
	require.NoError(t, err)

	rows := RowsFromSelection(doc.Find("#autores tr"))
	assert.Empty(t, rows)
}
