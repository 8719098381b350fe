package catalog

import (
	"github.com/PuerkitoBio/goquery"
)

const (
	anchorSelector         = "td a"
	fallbackAnchorSelector = "td:nth-child(2) a"
)

type htmlRow struct {
	sel *goquery.Selection
	th  *goquery.Selection
}

// RowsFromSelection wraps every <tr> of sel as a Row.
func RowsFromSelection(sel *goquery.Selection) []Row {
	rows := make([]Row, 0, sel.Length())
	sel.Each(func(_ int, tr *goquery.Selection) {
		rows = append(rows, htmlRow{
			sel: tr,
			th:  tr.Find("th").First(),
		})
	})

	return rows
}

func (r htmlRow) IsHeader() bool {
	return r.th.Length() > 0
}

func (r htmlRow) HeaderID() string {
	id, _ := r.th.Attr("id")
	return id
}

func (r htmlRow) HeaderText() string {
	return r.th.Text()
}

func (r htmlRow) AnchorText() (string, bool) {
	return firstText(r.sel, anchorSelector)
}

func (r htmlRow) FallbackAnchorText() (string, bool) {
	return firstText(r.sel, fallbackAnchorSelector)
}

func firstText(sel *goquery.Selection, selector string) (string, bool) {
	a := sel.Find(selector).First()
	if a.Length() == 0 {
		return "", false
	}

	return a.Text(), true
}
