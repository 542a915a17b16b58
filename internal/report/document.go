// Package report decodes broker trade-history reports into trades.
//
// The decoding works on a Document, a markup-independent view of the report's
// tables. ParseHTML builds a Document from an HTML export; Parse decodes the
// closed trades out of it.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Cell is the text content of one table cell. Header is set for th cells.
type Cell struct {
	Text   string
	Header bool
}

// Row is one table row. Text is the row's full text content, which may
// include text that sits outside any cell.
type Row struct {
	Text  string
	Cells []Cell
}

// Table is a sequence of rows in document order. Rows of nested tables are
// included, as they are when selecting every tr below a table.
type Table struct {
	Rows []Row
}

// Document is every table of a report, in document order.
type Document struct {
	Tables []Table
}

// ParseHTML reads an HTML report into a Document.
func ParseHTML(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse report html: %w", err)
	}

	out := &Document{}
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		var t Table
		table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			row := Row{Text: tr.Text()}
			tr.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
				row.Cells = append(row.Cells, Cell{
					Text:   cell.Text(),
					Header: goquery.NodeName(cell) == "th",
				})
			})
			t.Rows = append(t.Rows, row)
		})
		out.Tables = append(out.Tables, t)
	})
	return out, nil
}

// NewRow is a convenience for building rows of data cells.
func NewRow(cells ...string) Row {
	row := Row{Text: strings.Join(cells, "")}
	for _, c := range cells {
		row.Cells = append(row.Cells, Cell{Text: c})
	}
	return row
}

// dataCells returns the td cells of a row; header cells are never data.
func (r Row) dataCells() []string {
	out := make([]string, 0, len(r.Cells))
	for _, c := range r.Cells {
		if !c.Header {
			out = append(out, c.Text)
		}
	}
	return out
}
