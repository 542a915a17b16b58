package request

import (
	"testing"

	"github.com/ndewijer/TradeTrack-Backend/internal/model"
)

func TestParseTradeFilter(t *testing.T) {
	t.Run("no parameters is the empty filter", func(t *testing.T) {
		filter, err := ParseTradeFilter("", "", "", "", "")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !filter.IsZero() {
			t.Errorf("Expected empty filter, got %+v", filter)
		}
	})

	t.Run("all is treated as unset", func(t *testing.T) {
		filter, err := ParseTradeFilter("all", "ALL", "All", "", "")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !filter.IsZero() {
			t.Errorf("Expected empty filter, got %+v", filter)
		}
	})

	t.Run("every criterion", func(t *testing.T) {
		filter, err := ParseTradeFilter("Main", "forex", "SHORT", "2024-01-01", "2024-01-31")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if filter.Account != "Main" {
			t.Errorf("Expected account 'Main', got '%s'", filter.Account)
		}
		if filter.MarketType != model.MarketForex {
			t.Errorf("Expected Forex, got '%s'", filter.MarketType)
		}
		if filter.Side != model.SideShort {
			t.Errorf("Expected Short, got '%s'", filter.Side)
		}
		if filter.From != "2024-01-01" || filter.To != "2024-01-31" {
			t.Errorf("Unexpected range %s..%s", filter.From, filter.To)
		}
	})

	t.Run("invalid market returns error", func(t *testing.T) {
		if _, err := ParseTradeFilter("", "crypto", "", "", ""); err == nil {
			t.Error("Expected error for invalid market, got nil")
		}
	})

	t.Run("invalid side returns error", func(t *testing.T) {
		if _, err := ParseTradeFilter("", "", "flat", "", ""); err == nil {
			t.Error("Expected error for invalid side, got nil")
		}
	})

	t.Run("invalid date returns error", func(t *testing.T) {
		if _, err := ParseTradeFilter("", "", "", "15/03/2024", ""); err == nil {
			t.Error("Expected error for invalid from date, got nil")
		}
		if _, err := ParseTradeFilter("", "", "", "", "2024-13-01"); err == nil {
			t.Error("Expected error for invalid to date, got nil")
		}
	})

	t.Run("inverted range returns error", func(t *testing.T) {
		if _, err := ParseTradeFilter("", "", "", "2024-02-01", "2024-01-01"); err == nil {
			t.Error("Expected error for inverted range, got nil")
		}
	})

	t.Run("single-day range is allowed", func(t *testing.T) {
		if _, err := ParseTradeFilter("", "", "", "2024-02-01", "2024-02-01"); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})
}
