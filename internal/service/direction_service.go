package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ndewijer/TradeTrack-Backend/internal/ai"
	"github.com/ndewijer/TradeTrack-Backend/internal/api/request"
	"github.com/ndewijer/TradeTrack-Backend/internal/apperrors"
	"github.com/ndewijer/TradeTrack-Backend/internal/logging"
	"github.com/ndewijer/TradeTrack-Backend/internal/model"
)

// DirectionService records daily bias calls made from chart screenshots.
type DirectionService struct {
	ledger   *LedgerService
	ai       ai.Client
	inFlight *InFlight
	now      func() time.Time
}

// NewDirectionService creates a new DirectionService with the provided dependencies.
func NewDirectionService(ledger *LedgerService, aiClient ai.Client, inFlight *InFlight) *DirectionService {
	return &DirectionService{
		ledger:   ledger,
		ai:       aiClient,
		inFlight: inFlight,
		now:      time.Now,
	}
}

// Analyze asks the model for a bias on the chart and records it as pending.
func (s *DirectionService) Analyze(ctx context.Context, user string, req request.AnalyzeDirectionRequest) (*model.DailyDirection, error) {
	img, err := ai.DecodeImage(req.Image, req.MIMEType)
	if err != nil {
		return nil, err
	}

	release, err := s.inFlight.Acquire(user, OpChartAnalysis)
	if err != nil {
		return nil, err
	}
	defer release()

	ctx, span := logging.StartSpan(ctx, "direction.analyze")
	defer span.End()

	analysis, err := s.ai.AnalyzeChart(ctx, img)
	if err != nil {
		return nil, ai.Classify(err)
	}

	now := s.now().UTC()
	date := req.Date
	if date == "" {
		date = now.Format(time.DateOnly)
	}
	keyLevels := analysis.KeyLevels
	if keyLevels == nil {
		keyLevels = []string{}
	}

	record := model.DailyDirection{
		ID:         uuid.New().String(),
		Date:       date,
		Instrument: strings.TrimSpace(req.Instrument),
		Bias:       analysis.Bias,
		Confidence: analysis.Confidence,
		Reasoning:  analysis.Reasoning,
		KeyLevels:  keyLevels,
		Outcome:    model.OutcomePending,
		CreatedAt:  now,
	}

	_, err = s.ledger.Mutate(ctx, user, func(l *model.Ledger) error {
		l.Directions = append([]model.DailyDirection{record}, l.Directions...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save direction: %w", err)
	}

	logging.Info(ctx, "direction recorded",
		zap.String("direction_id", record.ID),
		zap.String("bias", string(record.Bias)),
		zap.Float64("confidence", record.Confidence))
	return &record, nil
}

// List returns the bias history, newest first.
func (s *DirectionService) List(ctx context.Context, user string) ([]model.DailyDirection, error) {
	ledger, err := s.ledger.Load(ctx, user)
	if err != nil {
		return nil, err
	}
	return ledger.Directions, nil
}

// UpdateOutcome marks whether a bias call played out.
func (s *DirectionService) UpdateOutcome(ctx context.Context, user, id string, outcome model.DirectionOutcome) (*model.DailyDirection, error) {
	var updated model.DailyDirection
	_, err := s.ledger.Mutate(ctx, user, func(l *model.Ledger) error {
		d := l.FindDirection(id)
		if d == nil {
			return apperrors.ErrDirectionNotFound
		}
		d.Outcome = outcome
		updated = *d
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update direction %s: %w", id, err)
	}
	return &updated, nil
}

// Delete removes a bias record.
func (s *DirectionService) Delete(ctx context.Context, user, id string) error {
	_, err := s.ledger.Mutate(ctx, user, func(l *model.Ledger) error {
		if !l.DeleteDirection(id) {
			return apperrors.ErrDirectionNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete direction %s: %w", id, err)
	}
	return nil
}
