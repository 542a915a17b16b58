package report

import "strings"

// headerScanRows is how many leading rows of a table are considered as header
// candidates.
const headerScanRows = 10

// ColumnMap holds the column index of each logical field, or -1 when the
// header had no such column.
type ColumnMap struct {
	Symbol     int
	Type       int
	Volume     int
	EntryPrice int
	ExitPrice  int
	Profit     int
	Date       int
}

func emptyColumnMap() ColumnMap {
	return ColumnMap{-1, -1, -1, -1, -1, -1, -1}
}

// MaxIndex is the highest column index the map references.
func (m ColumnMap) MaxIndex() int {
	highest := -1
	for _, idx := range []int{m.Symbol, m.Type, m.Volume, m.EntryPrice, m.ExitPrice, m.Profit, m.Date} {
		if idx > highest {
			highest = idx
		}
	}
	return highest
}

// usable reports whether the map can decode trades at all.
func (m ColumnMap) usable() bool {
	return m.Symbol >= 0 && m.Profit >= 0
}

// IsHeader reports whether a row's text looks like the header of a closed
// trades table.
func IsHeader(text string) bool {
	text = strings.ToLower(text)
	return strings.Contains(text, "symbol") &&
		(strings.Contains(text, "profit") || strings.Contains(text, "p/l"))
}

// MapColumns finds the header among the first rows of a table and maps its
// columns. Only the first qualifying row is considered. It returns the index
// of the header row and false when the table has no usable header.
func MapColumns(rows []Row) (ColumnMap, int, bool) {
	limit := min(len(rows), headerScanRows)
	for i := 0; i < limit; i++ {
		if !IsHeader(rows[i].Text) {
			continue
		}
		m := classify(rows[i].Cells)
		if !m.usable() {
			return ColumnMap{}, -1, false
		}
		return m, i, true
	}
	return ColumnMap{}, -1, false
}

// classify assigns each header cell to at most one field. Predicates are
// tried in order and the first match wins. The first price column is the
// entry price and the second the exit price; later duplicates of any other
// field take the later column.
func classify(cells []Cell) ColumnMap {
	m := emptyColumnMap()
	for idx, cell := range cells {
		content := strings.ToLower(strings.TrimSpace(cell.Text))
		switch {
		case strings.Contains(content, "symbol"):
			m.Symbol = idx
		case strings.Contains(content, "type"):
			m.Type = idx
		case strings.Contains(content, "volume") || strings.Contains(content, "size"):
			m.Volume = idx
		case strings.Contains(content, "price") && m.EntryPrice < 0:
			m.EntryPrice = idx
		case strings.Contains(content, "price") && m.ExitPrice < 0:
			m.ExitPrice = idx
		case strings.Contains(content, "price"):
			// third and later price columns are ignored
		case strings.Contains(content, "profit") || strings.Contains(content, "p/l"):
			m.Profit = idx
		case strings.Contains(content, "time") || strings.Contains(content, "date"):
			m.Date = idx
		}
	}
	return m
}
