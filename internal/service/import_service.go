package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ndewijer/TradeTrack-Backend/internal/ai"
	"github.com/ndewijer/TradeTrack-Backend/internal/api/request"
	"github.com/ndewijer/TradeTrack-Backend/internal/apperrors"
	"github.com/ndewijer/TradeTrack-Backend/internal/logging"
	"github.com/ndewijer/TradeTrack-Backend/internal/model"
	"github.com/ndewijer/TradeTrack-Backend/internal/report"
	"github.com/ndewijer/TradeTrack-Backend/internal/repository"
)

const unknownInstrument = "Unknown"

// ImportService turns MT5 reports and trade screenshots into previews that
// only reach the ledger once confirmed.
type ImportService struct {
	ledger   *LedgerService
	previews *repository.PreviewRepository
	ai       ai.Client
	inFlight *InFlight
	ttl      time.Duration
	now      func() time.Time
}

// NewImportService creates a new ImportService with the provided dependencies.
func NewImportService(
	ledger *LedgerService,
	previews *repository.PreviewRepository,
	aiClient ai.Client,
	inFlight *InFlight,
	ttl time.Duration,
) *ImportService {
	return &ImportService{
		ledger:   ledger,
		previews: previews,
		ai:       aiClient,
		inFlight: inFlight,
		ttl:      ttl,
		now:      time.Now,
	}
}

// SetClock replaces the time source.
func (s *ImportService) SetClock(now func() time.Time) {
	s.now = now
}

// PreviewReport decodes an MT5 HTML report into a preview for account.
func (s *ImportService) PreviewReport(ctx context.Context, user, filename string, body io.Reader, account string) (*model.ImportPreview, error) {
	ctx, span := logging.StartSpan(ctx, "import.preview_report")
	defer span.End()

	trades, err := DecodeReport(filename, body, account)
	span.SetAttributes(attribute.Int("trades", len(trades)))
	if errors.Is(err, apperrors.ErrNoClosedTrades) {
		logging.Warn(ctx, "report contained no closed trades", zap.String("file", filename))
	}
	if err != nil {
		return nil, err
	}

	preview, err := s.storePreview(ctx, user, model.ImportSourceReport, account, trades, nil)
	if err != nil {
		return nil, err
	}
	logging.Info(ctx, "report decoded",
		zap.String("preview_id", preview.ID),
		zap.String("file", filename),
		zap.Int("trades", len(trades)))
	return preview, nil
}

// DecodeReport turns an uploaded .html or .htm report into trades booked to
// account. It fails with ErrNoClosedTrades when nothing usable was found.
func DecodeReport(filename string, body io.Reader, account string) ([]model.Trade, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".html" && ext != ".htm" {
		return nil, apperrors.ErrUnsupportedReport
	}

	doc, err := report.ParseHTML(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrUnsupportedReport, err)
	}
	trades := report.Parse(doc)
	if len(trades) == 0 {
		return nil, apperrors.ErrNoClosedTrades
	}

	for i := range trades {
		trades[i].AccountType = account
	}
	return trades, nil
}

// ImportImages extracts one trade per screenshot, strictly in order. A
// failing item is reported in the preview and never stops the batch.
func (s *ImportService) ImportImages(ctx context.Context, user string, req request.ImageImportRequest) (*model.ImportPreview, error) {
	release, err := s.inFlight.Acquire(user, OpImageImport)
	if err != nil {
		return nil, err
	}
	defer release()

	ctx, span := logging.StartSpan(ctx, "import.images")
	defer span.End()
	span.SetAttributes(attribute.Int("images", len(req.Images)))

	trades := []model.Trade{}
	items := make([]model.ImageItemResult, 0, len(req.Images))
	for i, img := range req.Images {
		name := img.Name
		if name == "" {
			name = fmt.Sprintf("image-%d", i+1)
		}

		trade, err := s.extractTrade(ctx, img, req.Account)
		if err != nil {
			logging.Warn(ctx, "image extraction failed", zap.String("image", name), zap.Error(err))
			items = append(items, model.ImageItemResult{
				Name:   name,
				Status: model.ImageStatusError,
				Error:  err.Error(),
			})
			continue
		}

		trades = append(trades, trade)
		items = append(items, model.ImageItemResult{
			Name:    name,
			Status:  model.ImageStatusCompleted,
			TradeID: trade.ID,
		})
	}

	return s.storePreview(ctx, user, model.ImportSourceImage, req.Account, trades, items)
}

func (s *ImportService) extractTrade(ctx context.Context, item request.ImageImportItem, account string) (model.Trade, error) {
	img, err := ai.DecodeImage(item.Image, item.MIMEType)
	if err != nil {
		return model.Trade{}, err
	}

	extracted, err := s.ai.ExtractTrade(ctx, img)
	if err != nil {
		return model.Trade{}, err
	}
	return TradeFromExtraction(extracted, account, img.DataURL(), s.now())
}

// TradeFromExtraction fills the gaps of an AI extraction with import
// defaults. A side that is neither long nor short is an error.
func TradeFromExtraction(x model.ExtractedTrade, account, screenshot string, now time.Time) (model.Trade, error) {
	var rawSide string
	if x.Side != nil {
		rawSide = *x.Side
	}
	side, ok := model.NormalizeSide(rawSide)
	if !ok {
		return model.Trade{}, fmt.Errorf("could not determine trade side from %q", rawSide)
	}

	instrument := unknownInstrument
	if x.Instrument != nil && strings.TrimSpace(*x.Instrument) != "" {
		instrument = strings.TrimSpace(*x.Instrument)
	}

	date := now.UTC().Format(time.DateOnly)
	if x.Date != nil && *x.Date != "" {
		date = report.NormalizeDate(*x.Date)
	}

	marketType := x.MarketType
	if !model.ValidMarketType(marketType) {
		marketType = model.InferMarketType(instrument)
	}

	size := 1.0
	if x.Size != nil && *x.Size != 0 {
		size = *x.Size
	}

	return model.Trade{
		ID:          uuid.New().String(),
		Date:        date,
		Instrument:  instrument,
		MarketType:  marketType,
		AccountType: account,
		Side:        side,
		EntryPrice:  deref(x.EntryPrice),
		ExitPrice:   deref(x.ExitPrice),
		Size:        size,
		PnL:         deref(x.PnL),
		Notes:       model.NoteImageImport,
		Screenshot:  screenshot,
	}, nil
}

func (s *ImportService) storePreview(ctx context.Context, user, source, account string, trades []model.Trade, items []model.ImageItemResult) (*model.ImportPreview, error) {
	now := s.now().UTC()

	if n, err := s.previews.PurgeExpired(ctx, now); err != nil {
		logging.Warn(ctx, "failed to purge expired previews", zap.Error(err))
	} else if n > 0 {
		logging.Debug(ctx, "purged expired previews", zap.Int64("count", n))
	}

	preview := &model.ImportPreview{
		ID:          ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String(),
		Source:      source,
		AccountName: account,
		Trades:      trades,
		Items:       items,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.ttl),
	}
	if err := s.previews.InsertPreview(ctx, user, preview); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToImport, err)
	}
	return preview, nil
}

// GetPreview returns a pending preview.
func (s *ImportService) GetPreview(ctx context.Context, user, id string) (*model.ImportPreview, error) {
	return s.previews.GetPreview(ctx, user, id, s.now().UTC())
}

// ConfirmPreview commits a preview to the ledger. A non-empty account moves
// every trade of the preview to that account first. The preview is claimed
// before the commit, so a preview reaches the ledger at most once.
func (s *ImportService) ConfirmPreview(ctx context.Context, user, id, account string) ([]model.Trade, error) {
	preview, err := s.previews.TakePreview(ctx, user, id, s.now().UTC())
	if err != nil {
		return nil, err
	}

	if account != "" {
		for i := range preview.Trades {
			preview.Trades[i].AccountType = account
		}
	}

	if err := s.ledger.AddTrades(ctx, user, preview.Trades); err != nil {
		// Hand the preview back so the user can retry the confirm.
		preview.AccountName = coalesce(account, preview.AccountName)
		if rerr := s.previews.InsertPreview(ctx, user, preview); rerr != nil {
			logging.Warn(ctx, "failed to restore preview after failed confirm", zap.String("preview_id", id), zap.Error(rerr))
		}
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToImport, err)
	}

	logging.Info(ctx, "import confirmed",
		zap.String("preview_id", id),
		zap.String("source", preview.Source),
		zap.Int("trades", len(preview.Trades)))
	return preview.Trades, nil
}

func coalesce(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

// DiscardPreview drops a preview without touching the ledger.
func (s *ImportService) DiscardPreview(ctx context.Context, user, id string) error {
	return s.previews.DeletePreview(ctx, user, id)
}
