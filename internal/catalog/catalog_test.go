package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeRow struct {
	header   bool
	headerID string
	headText string

	anchor      *string
	fallbackTxt *string
}

func (r fakeRow) IsHeader() bool     { return r.header }
func (r fakeRow) HeaderID() string   { return r.headerID }
func (r fakeRow) HeaderText() string { return r.headText }

func (r fakeRow) AnchorText() (string, bool) {
	if r.anchor == nil {
		return "", false
	}
	return *r.anchor, true
}

func (r fakeRow) FallbackAnchorText() (string, bool) {
	if r.fallbackTxt == nil {
		return "", false
	}
	return *r.fallbackTxt, true
}

func header(id string) Row { return fakeRow{header: true, headerID: id} }

func data(name string) Row { return fakeRow{anchor: &name} }

func TestCleanText(t *testing.T) {
	cases := map[string]string{
		"Le\nnin":                 "Le nin",
		"Le\r\n\r\nnin":           "Le nin",
		"\n Rosa \n Luxemburg \n": "Rosa   Luxemburg",
		"  Gramsci  ":             "Gramsci",
		"Rosa  Luxemburg":         "Rosa  Luxemburg",
		"\n\n":                    "",
	}

	for in, want := range cases {
		assert.Equal(t, want, CleanText(in), "input %q", in)
	}
}

func TestFormatName(t *testing.T) {
	cases := map[string]string{
		"Marx, Karl":          "Karl Marx",
		"Engels":              "Engels",
		"Bakunin,":            "Bakunin",
		"Bakunin ,  ":         "Bakunin",
		"Lenin,Vladimir":      "Vladimir Lenin",
		"Luxemburg, Rosa, Dr": "Rosa, Dr Luxemburg",
		", Karl":              "Karl",
	}

	for in, want := range cases {
		assert.Equal(t, want, FormatName(in), "input %q", in)
	}
}

func TestTotal(t *testing.T) {
	assert.Equal(t, 0, Total(nil))
	assert.Equal(t, 5, Total([]LetterStat{{"A", 2}, {"B", 3}}))
}
