// Package ai talks to the generative model service used for screenshot trade
// extraction, chart bias analysis and performance insights.
//
// Callers depend on the Client interface; the service layer treats every
// call as an opaque request that either returns structured output or fails.
package ai

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/ndewijer/TradeTrack-Backend/internal/apperrors"
	"github.com/ndewijer/TradeTrack-Backend/internal/model"
)

// Client is the contract the service layer depends on.
type Client interface {
	// ExtractTrade reads the most prominent trade from a screenshot.
	ExtractTrade(ctx context.Context, img Image) (model.ExtractedTrade, error)
	// AnalyzeChart returns a directional bias call for a chart screenshot.
	AnalyzeChart(ctx context.Context, img Image) (model.BiasAnalysis, error)
	// Insights returns a free-text review of the given trades.
	Insights(ctx context.Context, trades []TradeSummary) (string, error)
}

// Image is an encoded image ready to be sent to the model.
type Image struct {
	MIMEType string
	Data     []byte
}

// DataURL renders the image as a data URL, the form trades keep as screenshot.
func (i Image) DataURL() string {
	return fmt.Sprintf("data:%s;base64,%s", i.mimeType(), base64.StdEncoding.EncodeToString(i.Data))
}

func (i Image) mimeType() string {
	if i.MIMEType == "" {
		return "image/jpeg"
	}
	return i.MIMEType
}

// DecodeImage accepts either a data URL or bare base64 content. A MIME type
// in the data URL wins over fallbackMIME.
func DecodeImage(encoded, fallbackMIME string) (Image, error) {
	mime := fallbackMIME
	payload := encoded
	if rest, ok := strings.CutPrefix(encoded, "data:"); ok {
		header, data, found := strings.Cut(rest, ",")
		if !found {
			return Image{}, fmt.Errorf("%w: malformed data URL", apperrors.ErrInvalidImage)
		}
		if m, _, _ := strings.Cut(header, ";"); m != "" {
			mime = m
		}
		payload = data
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return Image{}, fmt.Errorf("%w: bad base64: %w", apperrors.ErrInvalidImage, err)
	}
	if len(raw) == 0 {
		return Image{}, fmt.Errorf("%w: image is empty", apperrors.ErrInvalidImage)
	}
	return Image{MIMEType: mime, Data: raw}, nil
}

// TradeSummary is the slice of a trade sent for insight generation.
type TradeSummary struct {
	Side       model.TradeSide  `json:"side"`
	Instrument string           `json:"instrument"`
	PnL        float64          `json:"pnl"`
	Account    string           `json:"account"`
	MarketType model.MarketType `json:"type"`
	Notes      string           `json:"notes,omitempty"`
}

// Summarize converts trades to summaries, keeping their order.
func Summarize(trades []model.Trade) []TradeSummary {
	out := make([]TradeSummary, len(trades))
	for i, t := range trades {
		out[i] = TradeSummary{
			Side:       t.Side,
			Instrument: t.Instrument,
			PnL:        t.PnL,
			Account:    t.AccountType,
			MarketType: t.MarketType,
			Notes:      t.Notes,
		}
	}
	return out
}
