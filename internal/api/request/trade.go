package request

// CreateTradeRequest represents the request body for a manually entered trade.
// Numeric fields are pointers so a missing value can be told apart from zero.
type CreateTradeRequest struct {
	Date        string   `json:"date"`
	Instrument  string   `json:"instrument"`
	MarketType  string   `json:"marketType"`
	AccountType string   `json:"accountType"`
	Side        string   `json:"side"`
	EntryPrice  *float64 `json:"entryPrice"`
	ExitPrice   *float64 `json:"exitPrice"`
	Size        *float64 `json:"size"`
	PnL         *float64 `json:"pnl"`
	Notes       string   `json:"notes"`
	Screenshot  string   `json:"screenshot"`
}

// CreateAccountRequest represents the request body for creating an account.
type CreateAccountRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}
