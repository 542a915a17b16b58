package metrics

import (
	"sort"

	"github.com/ndewijer/TradeTrack-Backend/internal/model"
)

// MinAccountWeight is the display weight given to accounts whose P/L is zero
// or negative, so proportional charts still draw a sliver for them.
const MinAccountWeight = 0.1

// compactAccountThreshold is the account count from which zero-P/L accounts
// are left out of the breakdown.
const compactAccountThreshold = 5

// EquityCurve returns the running cumulative P/L in chronological order, one
// point per trade. Indexes start at 1.
func EquityCurve(trades []model.Trade) []model.EquityPoint {
	points := make([]model.EquityPoint, 0, len(trades))
	var equity float64
	for i := len(trades) - 1; i >= 0; i-- {
		equity += trades[i].PnL
		points = append(points, model.EquityPoint{Index: len(points) + 1, Equity: equity})
	}
	return points
}

// AccountBreakdown sums P/L per account in account-list order. Trades whose
// account name matches no live account are grouped under that name after the
// live accounts, in order of first appearance.
//
// Callers pass the whole ledger here, not an account-filtered view.
func AccountBreakdown(accounts []model.Account, trades []model.Trade) []model.AccountPnL {
	sums := make(map[string]float64, len(accounts))
	for _, t := range trades {
		sums[t.AccountType] += t.PnL
	}

	out := make([]model.AccountPnL, 0, len(accounts))
	for _, a := range accounts {
		pnl := sums[a.Name]
		if pnl == 0 && len(accounts) >= compactAccountThreshold {
			continue
		}
		out = append(out, accountSlice(a.Name, pnl))
	}
	for _, name := range OrphanedAccounts(accounts, trades) {
		out = append(out, accountSlice(name, sums[name]))
	}
	return out
}

func accountSlice(name string, pnl float64) model.AccountPnL {
	weight := pnl
	if weight < MinAccountWeight {
		weight = MinAccountWeight
	}
	return model.AccountPnL{Name: name, Weight: weight, PnL: pnl}
}

// OrphanedAccounts returns the distinct account names referenced by trades
// that match no live account, in order of first appearance.
func OrphanedAccounts(accounts []model.Account, trades []model.Trade) []string {
	live := make(map[string]struct{}, len(accounts))
	for _, a := range accounts {
		live[a.Name] = struct{}{}
	}
	seen := make(map[string]struct{})
	orphans := []string{}
	for _, t := range trades {
		if _, ok := live[t.AccountType]; ok {
			continue
		}
		if _, ok := seen[t.AccountType]; ok {
			continue
		}
		seen[t.AccountType] = struct{}{}
		orphans = append(orphans, t.AccountType)
	}
	return orphans
}

// Distribution bin labels, lowest first.
var distributionLabels = []string{
	"<-500",
	"-500 to -100",
	"-100 to 0",
	"0 to 100",
	"100 to 500",
	">500",
}

// Distribution counts trades into six fixed P/L bins with boundaries at
// -500, -100, 0, 100 and 500. Lower bounds are inclusive.
func Distribution(trades []model.Trade) []model.DistributionBucket {
	counts := make([]int, len(distributionLabels))
	for _, t := range trades {
		counts[bucketIndex(t.PnL)]++
	}
	out := make([]model.DistributionBucket, len(distributionLabels))
	for i, label := range distributionLabels {
		out[i] = model.DistributionBucket{Label: label, Count: counts[i]}
	}
	return out
}

func bucketIndex(pnl float64) int {
	switch {
	case pnl < -500:
		return 0
	case pnl < -100:
		return 1
	case pnl < 0:
		return 2
	case pnl < 100:
		return 3
	case pnl < 500:
		return 4
	default:
		return 5
	}
}

// InstrumentBreakdown sums P/L per instrument, best performer first. Ties
// keep the order in which instruments first appear.
func InstrumentBreakdown(trades []model.Trade) []model.InstrumentPnL {
	index := make(map[string]int)
	out := []model.InstrumentPnL{}
	for _, t := range trades {
		i, ok := index[t.Instrument]
		if !ok {
			i = len(out)
			index[t.Instrument] = i
			out = append(out, model.InstrumentPnL{Instrument: t.Instrument})
		}
		out[i].PnL += t.PnL
		out[i].Trades++
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].PnL > out[b].PnL })
	return out
}

// Daily sums P/L per calendar day, oldest day first.
func Daily(trades []model.Trade) []model.DailyPnL {
	index := make(map[string]int)
	out := []model.DailyPnL{}
	for _, t := range trades {
		i, ok := index[t.Date]
		if !ok {
			i = len(out)
			index[t.Date] = i
			out = append(out, model.DailyPnL{Date: t.Date})
		}
		out[i].PnL += t.PnL
		out[i].Trades++
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Date < out[b].Date })
	return out
}

// Build assembles the dashboard for one filter over a ledger. Metrics and
// series use the filtered trades; the account breakdown always uses the
// whole ledger.
func Build(ledger *model.Ledger, filter model.TradeFilter) model.Dashboard {
	filtered := filter.Apply(ledger.Trades)

	var ledgerTotal float64
	for _, t := range ledger.Trades {
		ledgerTotal += t.PnL
	}

	return model.Dashboard{
		Metrics:          Compute(filtered),
		EquityCurve:      EquityCurve(filtered),
		Accounts:         AccountBreakdown(ledger.Accounts, ledger.Trades),
		Distribution:     Distribution(filtered),
		Instruments:      InstrumentBreakdown(filtered),
		Daily:            Daily(filtered),
		OrphanedAccounts: OrphanedAccounts(ledger.Accounts, ledger.Trades),
		LedgerTotalPnL:   ledgerTotal,
	}
}
