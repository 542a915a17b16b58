package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ndewijer/TradeTrack-Backend/internal/ai"
	"github.com/ndewijer/TradeTrack-Backend/internal/logging"
	"github.com/ndewijer/TradeTrack-Backend/internal/model"
)

const (
	// MinInsightTrades is the smallest sample worth sending for review.
	MinInsightTrades = 3
	// MaxInsightTrades caps how many trades go out per review.
	MaxInsightTrades = 15

	// NotEnoughTradesMessage is returned instead of calling the model.
	NotEnoughTradesMessage = "Please log at least 3 trades for a meaningful AI analysis."
)

// InsightService produces a free-text review of recent trading.
type InsightService struct {
	ledger   *LedgerService
	ai       ai.Client
	inFlight *InFlight
}

// NewInsightService creates a new InsightService with the provided dependencies.
func NewInsightService(ledger *LedgerService, aiClient ai.Client, inFlight *InFlight) *InsightService {
	return &InsightService{
		ledger:   ledger,
		ai:       aiClient,
		inFlight: inFlight,
	}
}

// Analyze reviews the trades matching filter. Model failures come back as
// apperrors.ErrAIQuotaExceeded or apperrors.ErrAIUnavailable.
func (s *InsightService) Analyze(ctx context.Context, user string, filter model.TradeFilter) (string, error) {
	trades, err := s.ledger.ListTrades(ctx, user, filter)
	if err != nil {
		return "", err
	}
	if len(trades) < MinInsightTrades {
		return NotEnoughTradesMessage, nil
	}

	release, err := s.inFlight.Acquire(user, OpInsightAnalysis)
	if err != nil {
		return "", err
	}
	defer release()

	ctx, span := logging.StartSpan(ctx, "insights.analyze")
	defer span.End()

	sample := InsightSample(trades)
	span.SetAttributes(attribute.Int("trades", len(sample)))

	text, err := s.ai.Insights(ctx, ai.Summarize(sample))
	if err != nil {
		err = ai.Classify(err)
		logging.Error(ctx, "insight generation failed", err, zap.Int("trades", len(sample)))
		return "", err
	}
	return text, nil
}

// InsightSample returns the trades sent for review: the last
// MaxInsightTrades of the ledger sequence.
func InsightSample(trades []model.Trade) []model.Trade {
	if len(trades) <= MaxInsightTrades {
		return trades
	}
	return trades[len(trades)-MaxInsightTrades:]
}
