package service

import (
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/ndewijer/TradeTrack-Backend/internal/apperrors"
)

// AI operations gated by InFlight.
const (
	OpImageImport     = "image-import"
	OpChartAnalysis   = "chart-analysis"
	OpInsightAnalysis = "insight-analysis"
)

// InFlight allows one running instance of each operation per user. A second
// request fails fast with apperrors.ErrOperationInFlight; nothing is queued
// and nothing is cancelled.
type InFlight struct {
	mu    sync.Mutex
	slots map[string]*semaphore.Weighted
}

// NewInFlight creates an empty gate.
func NewInFlight() *InFlight {
	return &InFlight{slots: make(map[string]*semaphore.Weighted)}
}

// Acquire claims the slot for user and op. The returned func releases it.
func (g *InFlight) Acquire(user, op string) (func(), error) {
	key := user + "\x00" + op

	g.mu.Lock()
	sem, ok := g.slots[key]
	if !ok {
		sem = semaphore.NewWeighted(1)
		g.slots[key] = sem
	}
	g.mu.Unlock()

	if !sem.TryAcquire(1) {
		return nil, apperrors.ErrOperationInFlight
	}
	return func() { sem.Release(1) }, nil
}
