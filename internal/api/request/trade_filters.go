package request

import (
	"fmt"
	"strings"
	"time"

	"github.com/ndewijer/TradeTrack-Backend/internal/model"
)

// ParseTradeFilter extracts and validates trade filters from query parameters.
// Every parameter is optional; an empty value or "all" leaves the criterion unset.
//
// Validation rules:
//   - market: Forex or Futures (case-insensitive)
//   - side: Long or Short (case-insensitive)
//   - from/to: YYYY-MM-DD, from not after to
//
// Returns an error if any parameter fails validation.
func ParseTradeFilter(accountParam, marketParam, sideParam, fromParam, toParam string) (model.TradeFilter, error) {
	var filter model.TradeFilter

	if !isAll(accountParam) {
		filter.Account = strings.TrimSpace(accountParam)
	}

	if !isAll(marketParam) {
		switch strings.ToLower(strings.TrimSpace(marketParam)) {
		case "forex":
			filter.MarketType = model.MarketForex
		case "futures":
			filter.MarketType = model.MarketFutures
		default:
			return model.TradeFilter{}, fmt.Errorf("invalid market: %s", marketParam)
		}
	}

	if !isAll(sideParam) {
		switch strings.ToLower(strings.TrimSpace(sideParam)) {
		case "long":
			filter.Side = model.SideLong
		case "short":
			filter.Side = model.SideShort
		default:
			return model.TradeFilter{}, fmt.Errorf("invalid side: %s", sideParam)
		}
	}

	if fromParam != "" {
		if _, err := time.Parse(time.DateOnly, fromParam); err != nil {
			return model.TradeFilter{}, fmt.Errorf("invalid from date format: %w", err)
		}
		filter.From = fromParam
	}

	if toParam != "" {
		if _, err := time.Parse(time.DateOnly, toParam); err != nil {
			return model.TradeFilter{}, fmt.Errorf("invalid to date format: %w", err)
		}
		filter.To = toParam
	}

	if filter.From != "" && filter.To != "" && filter.From > filter.To {
		return model.TradeFilter{}, fmt.Errorf("invalid date range: from is after to")
	}

	return filter, nil
}

func isAll(param string) bool {
	p := strings.TrimSpace(param)
	return p == "" || strings.EqualFold(p, "all")
}
