package report

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/TradeTrack-Backend/internal/model"
)

var (
	nonNumeric = regexp.MustCompile(`[^\d.-]`)
	leadingNum = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
)

// clock is replaced in tests.
var clock = time.Now

// Parse decodes the closed trades of every usable table in doc, in document
// order. Trades carry no account; the caller assigns one.
func Parse(doc *Document) []model.Trade {
	trades := []model.Trade{}
	for _, table := range doc.Tables {
		if len(table.Rows) < 2 {
			continue
		}
		cols, header, ok := MapColumns(table.Rows)
		if !ok {
			continue
		}
		for i := header + 1; i < len(table.Rows); i++ {
			if t, ok := DecodeRow(cols, table.Rows[i].dataCells(), i); ok {
				trades = append(trades, t)
			}
		}
	}
	return trades
}

// DecodeRow turns one data row into a trade. It rejects rows that are too
// short, rows whose type is neither buy nor sell, rows without a numeric
// profit and rows without a symbol. Rejection is silent; MT5 interleaves
// balance and summary rows with real deals.
func DecodeRow(cols ColumnMap, cells []string, rowIndex int) (model.Trade, bool) {
	if len(cells) <= cols.MaxIndex() {
		return model.Trade{}, false
	}

	side, ok := model.ParseSide(cell(cells, cols.Type))
	if !ok {
		return model.Trade{}, false
	}
	pnl, ok := parseLeadingFloat(nonNumeric.ReplaceAllString(cell(cells, cols.Profit), ""))
	if !ok {
		return model.Trade{}, false
	}
	symbol := cell(cells, cols.Symbol)
	if symbol == "" {
		return model.Trade{}, false
	}

	return model.Trade{
		ID:         fmt.Sprintf("mt5-%s-%d", uuid.New().String(), rowIndex),
		Date:       NormalizeDate(cell(cells, cols.Date)),
		Instrument: symbol,
		MarketType: model.InferMarketType(symbol),
		Side:       side,
		EntryPrice: numberOr(cell(cells, cols.EntryPrice), 0),
		ExitPrice:  numberOr(cell(cells, cols.ExitPrice), 0),
		Size:       numberOr(cell(cells, cols.Volume), 1),
		PnL:        pnl,
		Notes:      model.NoteReportImport,
	}, true
}

func cell(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}

// numberOr parses the leading number of s, falling back to def when there is
// none or it is zero.
func numberOr(s string, def float64) float64 {
	v, ok := parseLeadingFloat(s)
	if !ok || v == 0 {
		return def
	}
	return v
}

// parseLeadingFloat parses the longest numeric prefix of s, so "1.5 lots"
// yields 1.5 and "12-3" yields 12.
func parseLeadingFloat(s string) (float64, bool) {
	match := leadingNum.FindString(strings.TrimSpace(s))
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// NormalizeDate converts report dates to YYYY-MM-DD. Any time of day is
// dropped, dots and slashes become hyphens, and DD-MM-YYYY is reordered.
// Other shapes pass through unchanged. An empty input yields today's date.
func NormalizeDate(raw string) string {
	if raw == "" {
		return clock().UTC().Format(time.DateOnly)
	}

	datePart, _, _ := strings.Cut(raw, " ")
	normalized := strings.NewReplacer(".", "-", "/", "-").Replace(datePart)

	parts := strings.Split(normalized, "-")
	if len(parts) == 3 && len(parts[0]) == 2 && len(parts[2]) == 4 {
		return parts[2] + "-" + parts[1] + "-" + parts[0]
	}
	return normalized
}
