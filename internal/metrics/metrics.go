// Package metrics derives performance figures and chart series from a trade
// collection. Every function is pure and expects trades in ledger order,
// newest insertion first.
package metrics

import "github.com/ndewijer/TradeTrack-Backend/internal/model"

// Compute returns the aggregate metrics for trades.
//
// Trades with zero P/L count toward TotalTrades and TotalPnL but are neither
// wins nor losses. When there are no losing trades ProfitFactor is the gross
// win rather than infinity.
func Compute(trades []model.Trade) model.TradeMetrics {
	if len(trades) == 0 {
		return model.TradeMetrics{}
	}

	var (
		total, grossWin, grossLoss float64
		wins, losses               int
	)
	for _, t := range trades {
		total += t.PnL
		switch {
		case t.PnL > 0:
			wins++
			grossWin += t.PnL
		case t.PnL < 0:
			losses++
			grossLoss += t.PnL
		}
	}
	if grossLoss < 0 {
		grossLoss = -grossLoss
	}

	m := model.TradeMetrics{
		TotalPnL:      total,
		TotalTrades:   len(trades),
		WinningTrades: wins,
		LosingTrades:  losses,
		WinRate:       float64(wins) / float64(len(trades)) * 100,
		MaxDrawdown:   MaxDrawdown(trades),
	}

	if grossLoss == 0 {
		m.ProfitFactor = grossWin
	} else {
		m.ProfitFactor = grossWin / grossLoss
	}
	if wins > 0 {
		m.AvgWin = grossWin / float64(wins)
	}
	if losses > 0 {
		m.AvgLoss = grossLoss / float64(losses)
	}
	return m
}

// MaxDrawdown walks trades oldest first and returns the largest drop of
// cumulative P/L below its running peak. The peak starts at zero, so a
// losing first trade already counts as drawdown.
func MaxDrawdown(trades []model.Trade) float64 {
	var equity, peak, maxDD float64
	for i := len(trades) - 1; i >= 0; i-- {
		equity += trades[i].PnL
		if equity > peak {
			peak = equity
		}
		if dd := peak - equity; dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD
}
