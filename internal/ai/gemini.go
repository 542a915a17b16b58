package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ndewijer/TradeTrack-Backend/internal/apperrors"
	"github.com/ndewijer/TradeTrack-Backend/internal/logging"
	"github.com/ndewijer/TradeTrack-Backend/internal/model"
)

const (
	extractPrompt = "Extract all trade details from this screenshot. Identify the instrument (e.g. NQ, ES, EURUSD), " +
		"side (Long/Short), quantity/size, entry price, exit price, and total profit or loss. " +
		"Format the date strictly as YYYY-MM-DD. If multiple trades are visible, extract the most prominent or summarized one."

	chartPrompt = "Act as a professional senior technical analyst. Analyze this chart screenshot (likely from TradingView). " +
		"Determine the 'Direction for the Day' (Bullish, Bearish, or Neutral). Identify key support/resistance levels, " +
		"trend structures, and price action signals. Provide a concise professional reasoning and a confidence score from 1-10."

	insightSystem = "You are an elite institutional performance manager specializing in retail trader data analysis."

	insightPrompt = "Analyze the following trading history. Contrast the performance between the different accounts.\n\n" +
		"Recent Trades: %s\n\n" +
		"Provide a concise summary with sections for 'Comparative Insights', 'Psychological Patterns', and " +
		"'Actionable Fixes'. Use professional trading terminology."

	maxErrorBody = 512
)

// GeminiConfig configures GeminiClient.
type GeminiConfig struct {
	Endpoint    string
	APIKey      string
	TextModel   string
	VisionModel string
	Timeout     time.Duration
}

// GeminiClient calls the Gemini generateContent REST API.
type GeminiClient struct {
	cfg        GeminiConfig
	httpClient *http.Client
}

var _ Client = (*GeminiClient)(nil)

// NewGeminiClient creates a client with its own HTTP client bounded by cfg.Timeout.
func NewGeminiClient(cfg GeminiConfig) *GeminiClient {
	return &GeminiClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature      *float64       `json:"temperature,omitempty"`
	ResponseMIMEType string         `json:"responseMimeType,omitempty"`
	ResponseSchema   map[string]any `json:"responseSchema,omitempty"`
}

type generateRequest struct {
	Contents          []content        `json:"contents"`
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

var extractSchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"instrument": map[string]any{"type": "STRING"},
		"side":       map[string]any{"type": "STRING", "enum": []string{"Long", "Short"}},
		"entryPrice": map[string]any{"type": "NUMBER"},
		"exitPrice":  map[string]any{"type": "NUMBER"},
		"size":       map[string]any{"type": "NUMBER"},
		"pnl":        map[string]any{"type": "NUMBER"},
		"date":       map[string]any{"type": "STRING", "description": "YYYY-MM-DD format"},
	},
	"required": []string{"instrument", "pnl", "side", "date"},
}

var chartSchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"bias":       map[string]any{"type": "STRING", "enum": []string{"Bullish", "Bearish", "Neutral"}},
		"confidence": map[string]any{"type": "NUMBER"},
		"reasoning":  map[string]any{"type": "STRING"},
		"keyLevels": map[string]any{
			"type":        "ARRAY",
			"items":       map[string]any{"type": "STRING"},
			"description": "Important price levels to watch",
		},
	},
	"required": []string{"bias", "confidence", "reasoning", "keyLevels"},
}

func imagePart(img Image) part {
	return part{InlineData: &inlineData{
		MIMEType: img.mimeType(),
		Data:     base64.StdEncoding.EncodeToString(img.Data),
	}}
}

// ExtractTrade implements Client.
func (c *GeminiClient) ExtractTrade(ctx context.Context, img Image) (model.ExtractedTrade, error) {
	ctx, span := logging.StartSpan(ctx, "ai.extract_trade")
	defer span.End()

	text, err := c.generate(ctx, c.cfg.VisionModel, generateRequest{
		Contents: []content{{Parts: []part{imagePart(img), {Text: extractPrompt}}}},
		GenerationConfig: generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   extractSchema,
		},
	})
	if err != nil {
		return model.ExtractedTrade{}, err
	}

	var out model.ExtractedTrade
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return model.ExtractedTrade{}, fmt.Errorf("%w: %v", apperrors.ErrAIMalformedResponse, err)
	}
	return out, nil
}

// AnalyzeChart implements Client.
func (c *GeminiClient) AnalyzeChart(ctx context.Context, img Image) (model.BiasAnalysis, error) {
	ctx, span := logging.StartSpan(ctx, "ai.analyze_chart")
	defer span.End()

	text, err := c.generate(ctx, c.cfg.VisionModel, generateRequest{
		Contents: []content{{Parts: []part{imagePart(img), {Text: chartPrompt}}}},
		GenerationConfig: generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   chartSchema,
		},
	})
	if err != nil {
		return model.BiasAnalysis{}, err
	}

	var out model.BiasAnalysis
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return model.BiasAnalysis{}, fmt.Errorf("%w: %v", apperrors.ErrAIMalformedResponse, err)
	}
	return out, nil
}

// Insights implements Client.
func (c *GeminiClient) Insights(ctx context.Context, trades []TradeSummary) (string, error) {
	ctx, span := logging.StartSpan(ctx, "ai.insights")
	defer span.End()

	encoded, err := json.Marshal(trades)
	if err != nil {
		return "", fmt.Errorf("failed to encode trades: %w", err)
	}

	temperature := 0.7
	text, err := c.generate(ctx, c.cfg.TextModel, generateRequest{
		Contents:          []content{{Role: "user", Parts: []part{{Text: fmt.Sprintf(insightPrompt, encoded)}}}},
		SystemInstruction: &content{Parts: []part{{Text: insightSystem}}},
		GenerationConfig:  generationConfig{Temperature: &temperature},
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

// generate posts one request and returns the concatenated text parts of the
// first candidate.
func (c *GeminiClient) generate(ctx context.Context, modelName string, body generateRequest) (string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", strings.TrimRight(c.cfg.Endpoint, "/"), modelName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(start)
	if err != nil {
		logging.Error(ctx, "model request failed", err, zap.String("model", modelName), zap.Duration("latency", latency))
		return "", Classify(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", Classify(fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode >= 300 {
		bodyText := string(data)
		if len(bodyText) > maxErrorBody {
			bodyText = bodyText[:maxErrorBody]
		}
		statusErr := &StatusError{StatusCode: resp.StatusCode, Body: bodyText}
		logging.Error(ctx, "model service returned error status", statusErr,
			zap.String("model", modelName),
			zap.Int("status_code", resp.StatusCode),
		)
		return "", statusErr
	}

	logging.Debug(ctx, "model response received",
		zap.String("model", modelName),
		zap.Duration("latency", latency),
		zap.Int("bytes", len(data)),
	)

	var decoded generateResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrAIMalformedResponse, err)
	}
	if len(decoded.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", apperrors.ErrAIMalformedResponse)
	}

	var sb strings.Builder
	for _, p := range decoded.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("%w: empty text", apperrors.ErrAIMalformedResponse)
	}
	return text, nil
}
