package report

import (
	"strings"
	"testing"
	"time"

	"github.com/ndewijer/TradeTrack-Backend/internal/model"
)

var mt5Header = NewRow("Time", "Symbol", "Type", "Volume", "Price", "Price", "S/L", "T/P", "Profit")

// TestMapColumns tests header detection and column assignment.
//
// WHY: Broker exports differ in header wording and put a preamble above the
// trade table. Only the first qualifying row within the scan window counts,
// and the first Price column is the entry price.
func TestMapColumns(t *testing.T) {
	t.Run("first price is entry, second is exit", func(t *testing.T) {
		cols, header, ok := MapColumns([]Row{mt5Header})

		if !ok {
			t.Fatal("Expected header to be found")
		}
		if header != 0 {
			t.Errorf("Expected header row 0, got %d", header)
		}
		want := ColumnMap{
			Symbol:     1,
			Type:       2,
			Volume:     3,
			EntryPrice: 4,
			ExitPrice:  5,
			Profit:     8,
			Date:       0,
		}
		if cols != want {
			t.Errorf("MapColumns() = %+v, want %+v", cols, want)
		}
		if cols.MaxIndex() != 8 {
			t.Errorf("MaxIndex() = %d, want 8", cols.MaxIndex())
		}
	})

	t.Run("header found below preamble rows", func(t *testing.T) {
		rows := []Row{
			NewRow("Trade History Report"),
			NewRow("Account:", "12345"),
			NewRow("Symbol", "Side", "Size", "P/L"),
		}

		cols, header, ok := MapColumns(rows)

		if !ok {
			t.Fatal("Expected header to be found")
		}
		if header != 2 {
			t.Errorf("Expected header row 2, got %d", header)
		}
		if cols.Symbol != 0 || cols.Volume != 2 || cols.Profit != 3 {
			t.Errorf("Expected symbol 0, volume 2, profit 3, got %+v", cols)
		}
		if cols.Type != -1 || cols.Date != -1 {
			t.Errorf("Expected unmapped type and date, got type %d, date %d", cols.Type, cols.Date)
		}
	})

	t.Run("header beyond the scan window is ignored", func(t *testing.T) {
		rows := make([]Row, 0, 11)
		for i := 0; i < 10; i++ {
			rows = append(rows, NewRow("filler"))
		}
		rows = append(rows, mt5Header)

		if _, _, ok := MapColumns(rows); ok {
			t.Error("Expected no header beyond the scan window")
		}
	})

	t.Run("only the first qualifying row is considered", func(t *testing.T) {
		rows := []Row{
			// mentions both words in the row text but has no symbol column
			{Text: "Symbol summary profit", Cells: []Cell{{Text: "Summary"}}},
			mt5Header,
		}

		if _, _, ok := MapColumns(rows); ok {
			t.Error("Expected the first qualifying row to end the search")
		}
	})

	t.Run("third price column ignored", func(t *testing.T) {
		cols, _, ok := MapColumns([]Row{NewRow("Symbol", "Price", "Price", "Price", "Profit")})

		if !ok {
			t.Fatal("Expected header to be found")
		}
		if cols.EntryPrice != 1 || cols.ExitPrice != 2 {
			t.Errorf("Expected entry 1 and exit 2, got %d and %d", cols.EntryPrice, cols.ExitPrice)
		}
	})
}

// TestDecodeRow tests turning one data row into a trade.
//
// WHY: Report tables mix trades with balance, summary and partial rows.
// Anything without a symbol, side or numeric profit must be skipped rather
// than imported as a zero trade.
func TestDecodeRow(t *testing.T) {
	cols, _, ok := MapColumns([]Row{mt5Header})
	if !ok {
		t.Fatal("Expected MT5 header to map")
	}

	t.Run("buy row decodes to long", func(t *testing.T) {
		cells := []string{"2024.03.15 10:30:00", "EURUSD", "buy", "0.10", "1.0850", "1.0900", "", "", "12.34"}

		trade, ok := DecodeRow(cols, cells, 3)

		if !ok {
			t.Fatal("Expected row to decode")
		}
		want := model.Trade{
			ID:         trade.ID,
			Date:       "2024-03-15",
			Instrument: "EURUSD",
			MarketType: model.MarketForex,
			Side:       model.SideLong,
			EntryPrice: 1.0850,
			ExitPrice:  1.0900,
			Size:       0.10,
			PnL:        12.34,
			Notes:      model.NoteReportImport,
		}
		if trade != want {
			t.Errorf("DecodeRow() = %+v, want %+v", trade, want)
		}
		if !strings.HasPrefix(trade.ID, "mt5-") || !strings.HasSuffix(trade.ID, "-3") {
			t.Errorf("Expected id mt5-...-3, got %s", trade.ID)
		}
	})

	t.Run("sell row decodes to short", func(t *testing.T) {
		cells := []string{"2024.03.15", "NQ", "Sell", "1", "18000", "18010", "", "", "-200.00"}

		trade, ok := DecodeRow(cols, cells, 1)

		if !ok {
			t.Fatal("Expected row to decode")
		}
		if trade.Side != model.SideShort || trade.PnL != -200 || trade.MarketType != model.MarketFutures {
			t.Errorf("Expected futures short of -200, got %+v", trade)
		}
	})

	skipped := []struct {
		name  string
		cells []string
	}{
		{"balance row skipped", []string{"2024.03.15", "", "balance", "", "", "", "", "", "1000.00"}},
		{"short row skipped", []string{"2024.03.15", "EURUSD", "buy", "1", "1", "1", "", ""}},
		{"non numeric profit skipped", []string{"2024.03.15", "EURUSD", "buy", "1", "1", "1", "", "", "n/a"}},
		{"empty symbol skipped", []string{"2024.03.15", "  ", "buy", "1", "1", "1", "", "", "5"}},
	}
	for _, tt := range skipped {
		t.Run(tt.name, func(t *testing.T) {
			if trade, ok := DecodeRow(cols, tt.cells, 1); ok {
				t.Errorf("Expected row to be skipped, got %+v", trade)
			}
		})
	}

	t.Run("profit with thousands separator and currency", func(t *testing.T) {
		cells := []string{"2024.03.15", "XAUUSD", "buy", "1", "1", "1", "", "", "$1 234.50"}

		trade, ok := DecodeRow(cols, cells, 1)

		if !ok {
			t.Fatal("Expected row to decode")
		}
		if trade.PnL != 1234.5 {
			t.Errorf("PnL = %v, want 1234.5", trade.PnL)
		}
	})

	t.Run("missing numbers fall back to defaults", func(t *testing.T) {
		cells := []string{"2024.03.15", "ES", "buy", "-", "", "abc", "", "", "10"}

		trade, ok := DecodeRow(cols, cells, 1)

		if !ok {
			t.Fatal("Expected row to decode")
		}
		if trade.Size != 1 || trade.EntryPrice != 0 || trade.ExitPrice != 0 {
			t.Errorf("Expected size 1 and zero prices, got size %v, entry %v, exit %v", trade.Size, trade.EntryPrice, trade.ExitPrice)
		}
	})
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024.03.15 10:30:00", "2024-03-15"},
		{"15/03/2024", "2024-03-15"},
		{"2024-03-15", "2024-03-15"},
		{"15.03.2024 09:00", "2024-03-15"},
		{"2024/03/15", "2024-03-15"},
		{"March 15", "March"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeDate(tt.in); got != tt.want {
				t.Errorf("NormalizeDate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	t.Run("idempotent", func(t *testing.T) {
		once := NormalizeDate("15/03/2024")
		if twice := NormalizeDate(once); twice != once {
			t.Errorf("Expected %q to stay put, got %q", once, twice)
		}
	})

	t.Run("empty input is today", func(t *testing.T) {
		orig := clock
		t.Cleanup(func() { clock = orig })
		clock = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

		if got := NormalizeDate(""); got != "2025-06-01" {
			t.Errorf("NormalizeDate(\"\") = %q, want 2025-06-01", got)
		}
	})
}

// TestParse tests that every qualifying table of a document contributes trades.
func TestParse(t *testing.T) {
	// Setup
	doc := &Document{Tables: []Table{
		{Rows: []Row{
			NewRow("Balance", "Equity"),
			NewRow("1000", "1000"),
		}},
		{Rows: []Row{
			mt5Header,
			NewRow("2024.03.14", "EURUSD", "buy", "0.1", "1.1", "1.2", "", "", "10"),
			NewRow("2024.03.14", "", "balance", "", "", "", "", "", "500"),
			NewRow("2024.03.15", "NQ", "sell", "1", "100", "90", "", "", "-5"),
		}},
		{Rows: []Row{
			NewRow("Symbol", "Type", "Profit"),
			NewRow("GBPUSD", "buy", "7"),
		}},
	}}

	// Execute
	trades := Parse(doc)

	// Assert
	if len(trades) != 3 {
		t.Fatalf("Expected 3 trades, got %d", len(trades))
	}
	for i, want := range []string{"EURUSD", "NQ", "GBPUSD"} {
		if trades[i].Instrument != want {
			t.Errorf("trades[%d].Instrument = %s, want %s", i, trades[i].Instrument, want)
		}
	}
	if trades[0].ID == trades[1].ID {
		t.Errorf("Expected unique ids, both are %s", trades[0].ID)
	}
}

func TestParseHTML(t *testing.T) {
	html := `<html><body>
<table><tr><td>Name:</td><td>Demo</td></tr></table>
<table>
  <tr><th>Time</th><th>Symbol</th><th>Type</th><th>Volume</th><th>Price</th><th>Price</th><th>S/L</th><th>T/P</th><th>Profit</th></tr>
  <tr><th colspan="9">Closed Transactions</th></tr>
  <tr><td>2024.03.15 10:30:00</td><td>EURUSD</td><td>buy</td><td>0.10</td><td>1.0850</td><td>1.0900</td><td></td><td></td><td>12.34</td></tr>
  <tr><td>2024.03.15 11:00:00</td><td></td><td>balance</td><td></td><td></td><td></td><td></td><td></td><td>100.00</td></tr>
  <tr><td>15.03.2024 12:00</td><td>US30</td><td>sell</td><td>2</td><td>39000</td><td>39050</td><td></td><td></td><td>-100.00</td></tr>
</table>
</body></html>`

	doc, err := ParseHTML(strings.NewReader(html))
	if err != nil {
		t.Fatalf("ParseHTML() returned unexpected error: %v", err)
	}
	if len(doc.Tables) != 2 {
		t.Fatalf("Expected 2 tables, got %d", len(doc.Tables))
	}
	if !doc.Tables[1].Rows[0].Cells[0].Header {
		t.Error("Expected th cells to be marked as headers")
	}

	trades := Parse(doc)

	if len(trades) != 2 {
		t.Fatalf("Expected 2 trades, got %d", len(trades))
	}
	if trades[0].Side != model.SideLong || trades[0].PnL != 12.34 {
		t.Errorf("Expected long of 12.34, got %s of %v", trades[0].Side, trades[0].PnL)
	}
	if trades[1].Date != "2024-03-15" || trades[1].Side != model.SideShort || trades[1].Size != 2 {
		t.Errorf("Expected short of size 2 on 2024-03-15, got %+v", trades[1])
	}
}
