package model

import "time"

// Import sources.
const (
	ImportSourceReport = "report"
	ImportSourceImage  = "image"
)

// ImportPreview is a decoded batch waiting for the user to confirm it. Nothing
// in a preview touches the ledger until it is confirmed.
type ImportPreview struct {
	ID          string            `json:"id"`
	Source      string            `json:"source"`
	AccountName string            `json:"accountName"`
	Trades      []Trade           `json:"trades"`
	Items       []ImageItemResult `json:"items,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	ExpiresAt   time.Time         `json:"expiresAt"`
}

// Image import item states.
const (
	ImageStatusCompleted = "completed"
	ImageStatusError     = "error"
)

// ImageItemResult is the per-image outcome of a batch image import.
type ImageItemResult struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	TradeID string `json:"tradeId,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ExtractedTrade is the partial trade an image extraction returns. Missing
// values are nil and fall back to producer defaults.
type ExtractedTrade struct {
	Instrument *string    `json:"instrument,omitempty"`
	Side       *string    `json:"side,omitempty"`
	EntryPrice *float64   `json:"entryPrice,omitempty"`
	ExitPrice  *float64   `json:"exitPrice,omitempty"`
	Size       *float64   `json:"size,omitempty"`
	PnL        *float64   `json:"pnl,omitempty"`
	Date       *string    `json:"date,omitempty"`
	MarketType MarketType `json:"marketType,omitempty"`
}
