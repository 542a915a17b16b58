package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/TradeTrack-Backend/internal/api/request"
	"github.com/ndewijer/TradeTrack-Backend/internal/apperrors"
	"github.com/ndewijer/TradeTrack-Backend/internal/logging"
	"github.com/ndewijer/TradeTrack-Backend/internal/metrics"
	"github.com/ndewijer/TradeTrack-Backend/internal/model"
	"github.com/ndewijer/TradeTrack-Backend/internal/repository"
)

// LedgerService owns every user's trades, accounts and bias history. All
// producers go through it, and every mutation is load, apply, save under a
// per-user lock so concurrent requests for one user cannot lose writes.
type LedgerService struct {
	docs *repository.DocumentRepository

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewLedgerService creates a new LedgerService with the provided repository dependency.
func NewLedgerService(docs *repository.DocumentRepository) *LedgerService {
	return &LedgerService{
		docs:  docs,
		locks: make(map[string]*sync.Mutex),
	}
}

func (s *LedgerService) userLock(user string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[user]
	if !ok {
		l = &sync.Mutex{}
		s.locks[user] = l
	}
	return l
}

// Load reads the user's ledger. Documents that were never saved fall back to
// the first-run defaults.
func (s *LedgerService) Load(ctx context.Context, user string) (*model.Ledger, error) {
	ledger := model.NewLedger()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.loadDocument(gctx, user, repository.KindTrades, &ledger.Trades)
	})
	g.Go(func() error {
		return s.loadDocument(gctx, user, repository.KindAccounts, &ledger.Accounts)
	})
	g.Go(func() error {
		return s.loadDocument(gctx, user, repository.KindDirections, &ledger.Directions)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// A stored JSON null decodes to nil; keep the empty-slice shape.
	if ledger.Trades == nil {
		ledger.Trades = []model.Trade{}
	}
	if ledger.Accounts == nil {
		ledger.Accounts = []model.Account{}
	}
	if ledger.Directions == nil {
		ledger.Directions = []model.DailyDirection{}
	}
	return ledger, nil
}

func (s *LedgerService) loadDocument(ctx context.Context, user, kind string, target any) error {
	payload, found, err := s.docs.GetDocument(ctx, user, kind)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}
	if err := json.Unmarshal(payload, target); err != nil {
		return fmt.Errorf("failed to decode %s document: %w", kind, err)
	}
	return nil
}

// Save writes the whole ledger. The last writer wins.
func (s *LedgerService) Save(ctx context.Context, user string, ledger *model.Ledger) error {
	docs := make(map[string][]byte, 3)
	for kind, value := range map[string]any{
		repository.KindTrades:     ledger.Trades,
		repository.KindAccounts:   ledger.Accounts,
		repository.KindDirections: ledger.Directions,
	} {
		payload, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to encode %s document: %w", kind, err)
		}
		docs[kind] = payload
	}
	return s.docs.PutDocuments(ctx, user, docs)
}

// Mutate applies op to the user's ledger and saves the result. When op fails
// nothing is saved.
func (s *LedgerService) Mutate(ctx context.Context, user string, op func(*model.Ledger) error) (*model.Ledger, error) {
	lock := s.userLock(user)
	lock.Lock()
	defer lock.Unlock()

	ledger, err := s.Load(ctx, user)
	if err != nil {
		return nil, err
	}
	if err := op(ledger); err != nil {
		return nil, err
	}
	if err := s.Save(ctx, user, ledger); err != nil {
		return nil, err
	}
	return ledger, nil
}

// AddTrades prepends a batch to the ledger. Every producer ends here.
func (s *LedgerService) AddTrades(ctx context.Context, user string, trades []model.Trade) error {
	if len(trades) == 0 {
		return nil
	}
	_, err := s.Mutate(ctx, user, func(l *model.Ledger) error {
		l.AddTrades(trades)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to add trades: %w", err)
	}
	logging.Info(ctx, "trades added", zap.String("user", user), zap.Int("count", len(trades)))
	return nil
}

// CreateTrade builds a trade from a validated manual entry and adds it.
func (s *LedgerService) CreateTrade(ctx context.Context, user string, req request.CreateTradeRequest) (*model.Trade, error) {
	trade := NewManualTrade(req, time.Now())
	if err := s.AddTrades(ctx, user, []model.Trade{trade}); err != nil {
		return nil, err
	}
	return &trade, nil
}

// NewManualTrade turns a validated manual entry into a trade. Missing size
// means 1. A missing P/L is derived from the prices and rounded to cents.
func NewManualTrade(req request.CreateTradeRequest, now time.Time) model.Trade {
	size := 1.0
	if req.Size != nil && *req.Size > 0 {
		size = *req.Size
	}

	side := model.TradeSide(req.Side)
	entry, exit := deref(req.EntryPrice), deref(req.ExitPrice)

	var pnl float64
	if req.PnL != nil {
		pnl = *req.PnL
	} else {
		if side == model.SideLong {
			pnl = (exit - entry) * size
		} else {
			pnl = (entry - exit) * size
		}
		pnl = math.Round(pnl*100) / 100
	}

	date := req.Date
	if date == "" {
		date = now.Format(time.DateOnly)
	}

	instrument := strings.TrimSpace(req.Instrument)
	marketType := model.MarketType(req.MarketType)
	if marketType == "" {
		marketType = model.InferMarketType(instrument)
	}

	return model.Trade{
		ID:          uuid.New().String(),
		Date:        date,
		Instrument:  instrument,
		MarketType:  marketType,
		AccountType: req.AccountType,
		Side:        side,
		EntryPrice:  entry,
		ExitPrice:   exit,
		Size:        size,
		PnL:         pnl,
		Notes:       req.Notes,
		Screenshot:  req.Screenshot,
	}
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// DeleteTrade removes one trade by id.
func (s *LedgerService) DeleteTrade(ctx context.Context, user, id string) error {
	_, err := s.Mutate(ctx, user, func(l *model.Ledger) error {
		if !l.DeleteTrade(id) {
			return apperrors.ErrTradeNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete trade %s: %w", id, err)
	}
	logging.Info(ctx, "trade deleted", zap.String("user", user), zap.String("trade_id", id))
	return nil
}

// ListTrades returns the trades matching filter in ledger order.
func (s *LedgerService) ListTrades(ctx context.Context, user string, filter model.TradeFilter) ([]model.Trade, error) {
	ledger, err := s.Load(ctx, user)
	if err != nil {
		return nil, err
	}
	return filter.Apply(ledger.Trades), nil
}

// ListAccounts returns the user's accounts in creation order.
func (s *LedgerService) ListAccounts(ctx context.Context, user string) ([]model.Account, error) {
	ledger, err := s.Load(ctx, user)
	if err != nil {
		return nil, err
	}
	return ledger.Accounts, nil
}

// CreateAccount appends an account. Names are unique per user because trades
// refer to accounts by name.
func (s *LedgerService) CreateAccount(ctx context.Context, user string, req request.CreateAccountRequest) (*model.Account, error) {
	account := model.Account{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(req.Name),
		Type:        model.AccountKind(req.Type),
		Description: req.Description,
	}

	_, err := s.Mutate(ctx, user, func(l *model.Ledger) error {
		if _, exists := l.FindAccount(account.Name); exists {
			return apperrors.ErrDuplicateAccount
		}
		l.Accounts = append(l.Accounts, account)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return &account, nil
}

// DeleteAccount removes an account. Its trades keep the account name and
// show up as orphaned in the dashboard.
func (s *LedgerService) DeleteAccount(ctx context.Context, user, id string) error {
	var removed model.Account
	_, err := s.Mutate(ctx, user, func(l *model.Ledger) error {
		a, ok := l.DeleteAccount(id)
		if !ok {
			return apperrors.ErrAccountNotFound
		}
		removed = a
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", id, err)
	}
	logging.Info(ctx, "account deleted", zap.String("user", user), zap.String("account", removed.Name))
	return nil
}

// AccountExists reports whether the user has a live account with the given name.
func (s *LedgerService) AccountExists(ctx context.Context, user, name string) (bool, error) {
	ledger, err := s.Load(ctx, user)
	if err != nil {
		return false, err
	}
	_, ok := ledger.FindAccount(name)
	return ok, nil
}

// Dashboard derives every dashboard dataset for filter.
func (s *LedgerService) Dashboard(ctx context.Context, user string, filter model.TradeFilter) (*model.Dashboard, error) {
	ledger, err := s.Load(ctx, user)
	if err != nil {
		return nil, err
	}
	d := metrics.Build(ledger, filter)
	return &d, nil
}

// Replace overwrites the user's whole ledger, as a restore does.
func (s *LedgerService) Replace(ctx context.Context, user string, ledger *model.Ledger) error {
	lock := s.userLock(user)
	lock.Lock()
	defer lock.Unlock()
	return s.Save(ctx, user, ledger)
}

// Users returns every user with persisted state.
func (s *LedgerService) Users(ctx context.Context) ([]string, error) {
	return s.docs.Usernames(ctx)
}

// IsNotFound reports whether err is one of the ledger's not-found errors.
func IsNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrTradeNotFound) ||
		errors.Is(err, apperrors.ErrAccountNotFound) ||
		errors.Is(err, apperrors.ErrDirectionNotFound)
}
