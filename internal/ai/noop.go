package ai

import (
	"context"
	"fmt"

	"github.com/ndewijer/TradeTrack-Backend/internal/apperrors"
	"github.com/ndewijer/TradeTrack-Backend/internal/model"
)

// NoopClient is used when no model provider is configured. Every call fails
// with apperrors.ErrAIUnavailable so AI features degrade to an error message.
type NoopClient struct{}

var _ Client = (*NoopClient)(nil)

// NewNoopClient returns a client that never reaches a model.
func NewNoopClient() *NoopClient {
	return &NoopClient{}
}

var errNotConfigured = fmt.Errorf("%w: no AI provider configured", apperrors.ErrAIUnavailable)

// ExtractTrade implements Client.
func (*NoopClient) ExtractTrade(context.Context, Image) (model.ExtractedTrade, error) {
	return model.ExtractedTrade{}, errNotConfigured
}

// AnalyzeChart implements Client.
func (*NoopClient) AnalyzeChart(context.Context, Image) (model.BiasAnalysis, error) {
	return model.BiasAnalysis{}, errNotConfigured
}

// Insights implements Client.
func (*NoopClient) Insights(context.Context, []TradeSummary) (string, error) {
	return "", errNotConfigured
}
