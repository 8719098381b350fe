package render

import (
	"fmt"
	"io"

	"github.com/brogergvhs/biblioscrape/internal/catalog"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type TableRenderer struct {
	out   io.Writer
	style table.Style
}

func NewTableRenderer(out io.Writer) *TableRenderer {
	return &TableRenderer{out: out, style: table.StyleRounded}
}

func (r *TableRenderer) RenderStats(stats []catalog.LetterStat) error {
	t := r.newTable()
	t.SetTitle("Authors by letter")
	t.AppendHeader(table.Row{"Letter", "Authors"})
	for _, s := range stats {
		t.AppendRow(table.Row{s.Letter, fmt.Sprintf("%d authors", s.Count)})
	}
	t.AppendFooter(table.Row{"Total", catalog.Total(stats)})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignCenter},
		{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})

	return r.write(t)
}

func (r *TableRenderer) RenderAuthors(authors []catalog.AuthorRecord) error {
	t := r.newTable()
	t.AppendHeader(table.Row{"Author", "#"})
	for _, a := range authors {
		t.AppendRow(table.Row{a.Name, fmt.Sprintf("#%d", a.ID)})
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d shown", len(authors)), ""})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})

	return r.write(t)
}

func (r *TableRenderer) newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(r.style)
	t.Style().Options.DrawBorder = true
	t.Style().Options.SeparateRows = false
	return t
}

func (r *TableRenderer) write(t table.Writer) error {
	_, err := io.WriteString(r.out, t.Render()+"\n")
	return err
}
