package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/ndewijer/TradeTrack-Backend/internal/model"
	"github.com/ndewijer/TradeTrack-Backend/internal/service"
)

// TradeBuilder provides a fluent interface for creating test trades.
//
// Example usage:
//
//	// Simple creation with defaults
//	trade := testutil.NewTrade().Build()
//
//	// Customized trade, persisted for a user
//	trade := testutil.NewTrade().
//	    WithInstrument("NQ").
//	    Short().
//	    WithPnL(-120).
//	    Persist(t, ledgerSvc, testutil.TestUser)
type TradeBuilder struct {
	ID          string
	Date        string
	Instrument  string
	MarketType  model.MarketType
	AccountType string
	Side        model.TradeSide
	EntryPrice  float64
	ExitPrice   float64
	Size        float64
	PnL         float64
	Notes       string
}

// NewTrade creates a TradeBuilder with sensible defaults.
func NewTrade() *TradeBuilder {
	return &TradeBuilder{
		ID:          MakeID(),
		Date:        time.Now().UTC().Format(time.DateOnly),
		Instrument:  "EURUSD",
		MarketType:  model.MarketForex,
		AccountType: "Personal Capital",
		Side:        model.SideLong,
		EntryPrice:  1.1000,
		ExitPrice:   1.1050,
		Size:        1,
		PnL:         50,
	}
}

// WithID sets a custom ID.
func (b *TradeBuilder) WithID(id string) *TradeBuilder {
	b.ID = id
	return b
}

// WithDate sets the trade date (YYYY-MM-DD).
func (b *TradeBuilder) WithDate(date string) *TradeBuilder {
	b.Date = date
	return b
}

// WithInstrument sets the instrument and re-derives the market type from it.
func (b *TradeBuilder) WithInstrument(instrument string) *TradeBuilder {
	b.Instrument = instrument
	b.MarketType = model.InferMarketType(instrument)
	return b
}

// WithMarketType overrides the market type.
func (b *TradeBuilder) WithMarketType(m model.MarketType) *TradeBuilder {
	b.MarketType = m
	return b
}

// WithAccount sets the account name.
func (b *TradeBuilder) WithAccount(name string) *TradeBuilder {
	b.AccountType = name
	return b
}

// Short marks the trade as a short.
func (b *TradeBuilder) Short() *TradeBuilder {
	b.Side = model.SideShort
	return b
}

// WithPrices sets the entry and exit prices.
func (b *TradeBuilder) WithPrices(entry, exit float64) *TradeBuilder {
	b.EntryPrice = entry
	b.ExitPrice = exit
	return b
}

// WithSize sets the position size.
func (b *TradeBuilder) WithSize(size float64) *TradeBuilder {
	b.Size = size
	return b
}

// WithPnL sets the realized profit or loss.
func (b *TradeBuilder) WithPnL(pnl float64) *TradeBuilder {
	b.PnL = pnl
	return b
}

// WithNotes sets the notes.
func (b *TradeBuilder) WithNotes(notes string) *TradeBuilder {
	b.Notes = notes
	return b
}

// Build returns the trade without persisting it.
func (b *TradeBuilder) Build() model.Trade {
	return model.Trade{
		ID:          b.ID,
		Date:        b.Date,
		Instrument:  b.Instrument,
		MarketType:  b.MarketType,
		AccountType: b.AccountType,
		Side:        b.Side,
		EntryPrice:  b.EntryPrice,
		ExitPrice:   b.ExitPrice,
		Size:        b.Size,
		PnL:         b.PnL,
		Notes:       b.Notes,
	}
}

// Persist adds the trade to the user's ledger and returns it.
func (b *TradeBuilder) Persist(t *testing.T, ledger *service.LedgerService, user string) model.Trade {
	t.Helper()

	trade := b.Build()
	if err := ledger.AddTrades(context.Background(), user, []model.Trade{trade}); err != nil {
		t.Fatalf("Failed to persist test trade: %v", err)
	}
	return trade
}

// SeedTrades adds trades with the given P/L values to the user's ledger, in
// the order given, and returns them as stored.
func SeedTrades(t *testing.T, ledger *service.LedgerService, user string, pnls ...float64) []model.Trade {
	t.Helper()

	trades := make([]model.Trade, len(pnls))
	for i, pnl := range pnls {
		trades[i] = NewTrade().WithPnL(pnl).Build()
	}
	if err := ledger.AddTrades(context.Background(), user, trades); err != nil {
		t.Fatalf("Failed to seed trades: %v", err)
	}
	return trades
}

// AccountBuilder provides a fluent interface for creating test accounts.
//
// Example usage:
//
//	account := testutil.NewAccount().WithName("Prop Firm").Challenge().Build()
type AccountBuilder struct {
	ID          string
	Name        string
	Type        model.AccountKind
	Description string
}

// NewAccount creates an AccountBuilder with sensible defaults.
func NewAccount() *AccountBuilder {
	return &AccountBuilder{
		ID:   MakeID(),
		Name: MakeAccountName("Test Account"),
		Type: model.AccountPersonal,
	}
}

// WithID sets a custom ID.
func (b *AccountBuilder) WithID(id string) *AccountBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *AccountBuilder) WithName(name string) *AccountBuilder {
	b.Name = name
	return b
}

// WithDescription sets a custom description.
func (b *AccountBuilder) WithDescription(desc string) *AccountBuilder {
	b.Description = desc
	return b
}

// Challenge marks the account as a prop-firm challenge.
func (b *AccountBuilder) Challenge() *AccountBuilder {
	b.Type = model.AccountChallenge
	return b
}

// Build returns the account without persisting it.
func (b *AccountBuilder) Build() model.Account {
	return model.Account{
		ID:          b.ID,
		Name:        b.Name,
		Type:        b.Type,
		Description: b.Description,
	}
}

// NewDirection returns a pending bias record for today.
func NewDirection(bias model.Bias) model.DailyDirection {
	now := time.Now().UTC()
	return model.DailyDirection{
		ID:         MakeID(),
		Date:       now.Format(time.DateOnly),
		Instrument: "EURUSD",
		Bias:       bias,
		Confidence: 7,
		Reasoning:  "Higher highs on the 4h chart",
		KeyLevels:  []string{"1.1000", "1.1100"},
		Outcome:    model.OutcomePending,
		CreatedAt:  now,
	}
}
