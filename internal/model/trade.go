package model

import "strings"

// MarketType classifies the venue a trade was placed on.
type MarketType string

const (
	MarketForex   MarketType = "Forex"
	MarketFutures MarketType = "Futures"
)

// TradeSide is the direction of a trade.
type TradeSide string

const (
	SideLong  TradeSide = "Long"
	SideShort TradeSide = "Short"
)

// Provenance markers written to Trade.Notes by the bulk producers.
const (
	NoteReportImport = "Imported from MT5 Report"
	NoteImageImport  = "Batch AI Import"
)

// Trade is one closed trade in the ledger.
//
// PnL is authoritative: it is stored as reported by the producer and is never
// re-derived from the entry/exit prices, since imported and AI-extracted trades
// may carry broker P/L that includes fees or slippage.
//
// AccountType holds the Account.Name the trade belongs to. It is a lookup key
// only; the account may have been deleted since (an orphaned trade).
type Trade struct {
	ID          string     `json:"id"`
	Date        string     `json:"date"` // YYYY-MM-DD
	Instrument  string     `json:"instrument"`
	MarketType  MarketType `json:"marketType"`
	AccountType string     `json:"accountType"`
	Side        TradeSide  `json:"side"`
	EntryPrice  float64    `json:"entryPrice"`
	ExitPrice   float64    `json:"exitPrice"`
	Size        float64    `json:"size"`
	PnL         float64    `json:"pnl"`
	Notes       string     `json:"notes,omitempty"`
	Screenshot  string     `json:"screenshot,omitempty"` // data URL of the source image
}

// InferMarketType classifies an instrument when the producer did not supply a
// market type. Anything longer than five characters or containing a slash is
// treated as Forex, everything else as Futures.
//
// The rule is crude (a six letter futures ticker comes out as Forex) but the
// categorisation users already see depends on it, so it is kept as is.
func InferMarketType(instrument string) MarketType {
	if len(instrument) > 5 || strings.Contains(instrument, "/") {
		return MarketForex
	}
	return MarketFutures
}

// ParseSide maps a raw broker token to a TradeSide. Tokens containing "buy"
// are Long, tokens containing "sell" are Short, anything else is rejected.
func ParseSide(raw string) (TradeSide, bool) {
	token := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(token, "buy"):
		return SideLong, true
	case strings.Contains(token, "sell"):
		return SideShort, true
	}
	return "", false
}

// NormalizeSide accepts the canonical side names (case-insensitive) as well as
// buy/sell tokens. Used for AI output, which is asked for Long/Short but does
// not always comply.
func NormalizeSide(raw string) (TradeSide, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "long":
		return SideLong, true
	case "short":
		return SideShort, true
	}
	return ParseSide(raw)
}

// ValidMarketType reports whether m is one of the known market types.
func ValidMarketType(m MarketType) bool {
	return m == MarketForex || m == MarketFutures
}

// ValidSide reports whether s is one of the known trade sides.
func ValidSide(s TradeSide) bool {
	return s == SideLong || s == SideShort
}
