package validation

import (
	"strings"

	"github.com/ndewijer/TradeTrack-Backend/internal/api/request"
	"github.com/ndewijer/TradeTrack-Backend/internal/model"
)

// ValidateCreateTrade validates a manually entered trade.
//
// Required fields:
//   - instrument: non-empty
//   - accountType: non-empty (the account name; existence is not checked)
//   - side: Long or Short
//   - entryPrice, exitPrice: present and not negative
//   - pnl: present, unless size is given so it can be derived from the prices
//
// Optional fields:
//   - date: YYYY-MM-DD if provided
//   - marketType: Forex or Futures if provided
//   - size: not negative if provided; missing or zero means 1
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTrade(req request.CreateTradeRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Instrument) == "" {
		errors["instrument"] = "instrument is required"
	} else if len(req.Instrument) > 32 {
		errors["instrument"] = "instrument must be 32 characters or less"
	}

	if strings.TrimSpace(req.AccountType) == "" {
		errors["accountType"] = "accountType is required"
	}

	if strings.TrimSpace(req.Side) == "" {
		errors["side"] = "side is required"
	} else if !model.ValidSide(model.TradeSide(req.Side)) {
		errors["side"] = "side must be Long or Short"
	}

	if req.MarketType != "" && !model.ValidMarketType(model.MarketType(req.MarketType)) {
		errors["marketType"] = "marketType must be Forex or Futures"
	}

	if req.Date != "" {
		if err := ValidateDate(req.Date); err != nil {
			errors["date"] = err.Error()
		}
	}

	if req.EntryPrice == nil {
		errors["entryPrice"] = "entryPrice is required"
	} else if *req.EntryPrice < 0 {
		errors["entryPrice"] = "entryPrice cannot be negative"
	}

	if req.ExitPrice == nil {
		errors["exitPrice"] = "exitPrice is required"
	} else if *req.ExitPrice < 0 {
		errors["exitPrice"] = "exitPrice cannot be negative"
	}

	if req.Size != nil && *req.Size < 0 {
		errors["size"] = "size cannot be negative"
	}

	if req.PnL == nil && (req.Size == nil || *req.Size <= 0) {
		errors["pnl"] = "pnl is required when size is not provided"
	}

	if len(req.Notes) > 2000 {
		errors["notes"] = "notes must be 2000 characters or less"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
