package metrics

import (
	"math"
	"testing"

	"github.com/ndewijer/TradeTrack-Backend/internal/model"
)

func pnls(values ...float64) []model.Trade {
	trades := make([]model.Trade, len(values))
	for i, v := range values {
		trades[i] = model.Trade{ID: string(rune('a' + i)), PnL: v}
	}
	return trades
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// TestCompute tests the aggregate metrics over a trade set.
//
// WHY: Zero P/L trades count toward the total but are neither wins nor
// losses, and every ratio must stay finite when one side is empty.
func TestCompute(t *testing.T) {
	t.Run("empty set is all zeros", func(t *testing.T) {
		if got := Compute(nil); got != (model.TradeMetrics{}) {
			t.Errorf("Compute(nil) = %+v, want zero metrics", got)
		}
		if got := Compute([]model.Trade{}); got != (model.TradeMetrics{}) {
			t.Errorf("Compute(empty) = %+v, want zero metrics", got)
		}
	})

	t.Run("zero pnl trades are neither wins nor losses", func(t *testing.T) {
		m := Compute(pnls(100, 0, -40, 0))

		if m.TotalTrades != 4 || m.WinningTrades != 1 || m.LosingTrades != 1 {
			t.Errorf("Expected 4 trades / 1 win / 1 loss, got %d / %d / %d", m.TotalTrades, m.WinningTrades, m.LosingTrades)
		}
		checks := []struct {
			name      string
			got, want float64
		}{
			{"TotalPnL", m.TotalPnL, 60},
			{"WinRate", m.WinRate, 25},
			{"ProfitFactor", m.ProfitFactor, 2.5},
			{"AvgWin", m.AvgWin, 100},
			{"AvgLoss", m.AvgLoss, 40},
		}
		for _, c := range checks {
			if !near(c.got, c.want) {
				t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
			}
		}
	})

	t.Run("no losers reports gross win as profit factor", func(t *testing.T) {
		m := Compute(pnls(100, 50))

		if m.ProfitFactor != 150 || m.AvgLoss != 0 || m.WinRate != 100 {
			t.Errorf("Expected profit factor 150, avg loss 0, win rate 100, got %+v", m)
		}
	})

	t.Run("only losers", func(t *testing.T) {
		m := Compute(pnls(-10, -30))

		if m.ProfitFactor != 0 || m.AvgWin != 0 || m.WinRate != 0 {
			t.Errorf("Expected zero profit factor, avg win and win rate, got %+v", m)
		}
		if !near(m.AvgLoss, 20) {
			t.Errorf("AvgLoss = %v, want 20", m.AvgLoss)
		}
		if !near(m.MaxDrawdown, 40) {
			t.Errorf("MaxDrawdown = %v, want 40", m.MaxDrawdown)
		}
	})

	t.Run("win rate is exact ratio", func(t *testing.T) {
		m := Compute(pnls(1, 2, -3))
		if want := float64(2) / float64(3) * 100; m.WinRate != want {
			t.Errorf("WinRate = %v, want %v", m.WinRate, want)
		}
	})
}

// TestMaxDrawdown tests the peak-to-trough walk.
//
// WHY: The ledger is stored newest first, so the walk runs the slice in
// reverse. Feeding already-sorted input must give a different answer.
func TestMaxDrawdown(t *testing.T) {
	tests := []struct {
		name   string
		trades []model.Trade
		want   float64
	}{
		// chronological walk: 100 -> 130 -> 80
		{"walks newest-first ledger oldest first", pnls(-50, 30, 100), 50},
		// chronological walk: -50 -> -20 -> 80
		{"pre-sorted input yields a different walk", pnls(100, 30, -50), 50},
		{"rising curve has no drawdown", pnls(30, 100), 0},
		// walk: 10 -> 0 -> 50 -> 20 -> -10 -> 40
		{"deepest trough after a new peak", pnls(50, -30, -30, 50, -10, 10), 60},
		{"empty is zero", nil, 0},
		{"only wins is zero", pnls(5, 5, 5), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaxDrawdown(tt.trades); !near(got, tt.want) {
				t.Errorf("MaxDrawdown() = %v, want %v", got, tt.want)
			}
		})
	}
}
