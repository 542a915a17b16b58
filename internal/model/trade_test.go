package model

import "testing"

// TestInferMarketType tests the fallback classification of instruments.
//
// WHY: Reports and screenshots rarely name the market. Anything longer than
// five characters or containing a slash is treated as a currency pair.
func TestInferMarketType(t *testing.T) {
	tests := []struct {
		instrument string
		want       MarketType
	}{
		{"EURUSD", MarketForex},
		{"NQ", MarketFutures},
		{"EUR/USD", MarketForex},
		{"ES", MarketFutures},
		{"XAUUS", MarketFutures},
		{"A/B", MarketForex},
		{"", MarketFutures},
	}
	for _, tt := range tests {
		t.Run(tt.instrument, func(t *testing.T) {
			if got := InferMarketType(tt.instrument); got != tt.want {
				t.Errorf("InferMarketType(%q) = %s, want %s", tt.instrument, got, tt.want)
			}
		})
	}
}

func TestParseSide(t *testing.T) {
	tests := []struct {
		raw  string
		want TradeSide
		ok   bool
	}{
		{"buy", SideLong, true},
		{"Buy Limit", SideLong, true},
		{" SELL ", SideShort, true},
		{"sell stop", SideShort, true},
		{"balance", "", false},
		{"", "", false},
		{"Long", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseSide(tt.raw)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseSide(%q) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestNormalizeSide(t *testing.T) {
	tests := []struct {
		raw  string
		want TradeSide
		ok   bool
	}{
		{"long", SideLong, true},
		{"SHORT", SideShort, true},
		{"buy", SideLong, true},
		{"flat", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := NormalizeSide(tt.raw)
			if ok != tt.ok || got != tt.want {
				t.Errorf("NormalizeSide(%q) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.ok)
			}
		})
	}
}
