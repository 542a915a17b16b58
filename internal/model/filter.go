package model

// TradeFilter narrows the ledger for read paths. Empty fields match every
// trade. From and To are inclusive YYYY-MM-DD bounds.
type TradeFilter struct {
	Account    string     `json:"account,omitempty"`
	MarketType MarketType `json:"marketType,omitempty"`
	Side       TradeSide  `json:"side,omitempty"`
	From       string     `json:"from,omitempty"`
	To         string     `json:"to,omitempty"`
}

// Matches reports whether t satisfies every criterion that is set. Dates are
// compared as strings, which orders correctly for YYYY-MM-DD values.
func (f TradeFilter) Matches(t Trade) bool {
	if f.Account != "" && t.AccountType != f.Account {
		return false
	}
	if f.MarketType != "" && t.MarketType != f.MarketType {
		return false
	}
	if f.Side != "" && t.Side != f.Side {
		return false
	}
	if f.From != "" && t.Date < f.From {
		return false
	}
	if f.To != "" && t.Date > f.To {
		return false
	}
	return true
}

// Apply returns the trades matching f in their original order. The input is
// never modified.
func (f TradeFilter) Apply(trades []Trade) []Trade {
	out := make([]Trade, 0, len(trades))
	for _, t := range trades {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// IsZero reports whether no criterion is set.
func (f TradeFilter) IsZero() bool {
	return f == TradeFilter{}
}
