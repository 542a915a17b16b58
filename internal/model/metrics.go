package model

// TradeMetrics is the aggregate performance record for a set of trades.
type TradeMetrics struct {
	TotalPnL      float64 `json:"totalPnl"`
	WinRate       float64 `json:"winRate"` // percentage, 0-100
	ProfitFactor  float64 `json:"profitFactor"`
	TotalTrades   int     `json:"totalTrades"`
	WinningTrades int     `json:"winningTrades"`
	LosingTrades  int     `json:"losingTrades"`
	AvgWin        float64 `json:"avgWin"`
	AvgLoss       float64 `json:"avgLoss"`     // positive magnitude
	MaxDrawdown   float64 `json:"maxDrawdown"` // positive magnitude
}

// EquityPoint is one step of the cumulative P/L curve. Index starts at 1.
type EquityPoint struct {
	Index  int     `json:"index"`
	Equity float64 `json:"equity"`
}

// AccountPnL is one slice of the per-account breakdown. Weight is the
// non-negative value a proportional chart should draw; PnL is the real sum.
type AccountPnL struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
	PnL    float64 `json:"pnl"`
}

// DistributionBucket counts trades whose P/L falls into one fixed bin.
type DistributionBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// InstrumentPnL is the summed P/L of one instrument.
type InstrumentPnL struct {
	Instrument string  `json:"instrument"`
	PnL        float64 `json:"pnl"`
	Trades     int     `json:"trades"`
}

// DailyPnL is the summed P/L of one calendar day.
type DailyPnL struct {
	Date   string  `json:"date"`
	PnL    float64 `json:"pnl"`
	Trades int     `json:"trades"`
}

// Dashboard bundles every derived dataset for one filtered view of a ledger.
type Dashboard struct {
	Metrics          TradeMetrics         `json:"metrics"`
	EquityCurve      []EquityPoint        `json:"equityCurve"`
	Accounts         []AccountPnL         `json:"accounts"`
	Distribution     []DistributionBucket `json:"distribution"`
	Instruments      []InstrumentPnL      `json:"instruments"`
	Daily            []DailyPnL           `json:"daily"`
	OrphanedAccounts []string             `json:"orphanedAccounts"`
	LedgerTotalPnL   float64              `json:"ledgerTotalPnl"`
}
