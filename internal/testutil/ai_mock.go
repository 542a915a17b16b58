package testutil

import (
	"context"
	"sync"

	"github.com/ndewijer/TradeTrack-Backend/internal/ai"
	"github.com/ndewijer/TradeTrack-Backend/internal/model"
)

// MockAIClient is a mock implementation of ai.Client for testing.
// It returns predefined results instead of calling a model service.
//
// Extractions are consumed in order, one per ExtractTrade call. Once the
// queue is empty the last entry keeps being returned.
type MockAIClient struct {
	mu sync.Mutex

	// Extractions are returned from ExtractTrade in order
	Extractions []MockExtraction
	// Analysis is returned from AnalyzeChart
	Analysis model.BiasAnalysis
	// InsightText is returned from Insights
	InsightText string
	// Err, when set, is returned from AnalyzeChart and Insights
	Err error

	// Calls counts every method call
	Calls int
	// LastSummaries holds the summaries of the most recent Insights call
	LastSummaries []ai.TradeSummary
	// Block, when set, makes every call wait until it is closed
	Block chan struct{}
}

// MockExtraction is one queued ExtractTrade result.
type MockExtraction struct {
	Trade model.ExtractedTrade
	Err   error
}

var _ ai.Client = (*MockAIClient)(nil)

// NewMockAIClient creates a mock with a bullish analysis and a short insight.
func NewMockAIClient() *MockAIClient {
	return &MockAIClient{
		Analysis: model.BiasAnalysis{
			Bias:       model.BiasBullish,
			Confidence: 8,
			Reasoning:  "Price holding above the daily open",
			KeyLevels:  []string{"1.0950", "1.1020"},
		},
		InsightText: "You cut winners early.",
	}
}

// WithExtraction queues an ExtractTrade result.
func (m *MockAIClient) WithExtraction(trade model.ExtractedTrade, err error) *MockAIClient {
	m.Extractions = append(m.Extractions, MockExtraction{Trade: trade, Err: err})
	return m
}

// WithError configures AnalyzeChart and Insights to fail with err.
func (m *MockAIClient) WithError(err error) *MockAIClient {
	m.Err = err
	return m
}

func (m *MockAIClient) enter(ctx context.Context) error {
	m.mu.Lock()
	m.Calls++
	block := m.Block
	m.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// ExtractTrade implements ai.Client.
func (m *MockAIClient) ExtractTrade(ctx context.Context, _ ai.Image) (model.ExtractedTrade, error) {
	if err := m.enter(ctx); err != nil {
		return model.ExtractedTrade{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Extractions) == 0 {
		return model.ExtractedTrade{}, nil
	}
	next := m.Extractions[0]
	if len(m.Extractions) > 1 {
		m.Extractions = m.Extractions[1:]
	}
	return next.Trade, next.Err
}

// AnalyzeChart implements ai.Client.
func (m *MockAIClient) AnalyzeChart(ctx context.Context, _ ai.Image) (model.BiasAnalysis, error) {
	if err := m.enter(ctx); err != nil {
		return model.BiasAnalysis{}, err
	}
	if m.Err != nil {
		return model.BiasAnalysis{}, m.Err
	}
	return m.Analysis, nil
}

// Insights implements ai.Client.
func (m *MockAIClient) Insights(ctx context.Context, trades []ai.TradeSummary) (string, error) {
	if err := m.enter(ctx); err != nil {
		return "", err
	}

	m.mu.Lock()
	m.LastSummaries = trades
	m.mu.Unlock()

	if m.Err != nil {
		return "", m.Err
	}
	return m.InsightText, nil
}

// Ptr returns a pointer to v, for filling ExtractedTrade fields.
func Ptr[T any](v T) *T {
	return &v
}

// TinyPNG is a valid base64 payload for image requests.
const TinyPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII="
