package service_test

import (
	"errors"
	"testing"

	"github.com/ndewijer/TradeTrack-Backend/internal/apperrors"
	"github.com/ndewijer/TradeTrack-Backend/internal/service"
)

func TestInFlight_Acquire(t *testing.T) {
	gate := service.NewInFlight()

	release, err := gate.Acquire("alice", service.OpChartAnalysis)
	if err != nil {
		t.Fatalf("Acquire() returned unexpected error: %v", err)
	}

	if _, err := gate.Acquire("alice", service.OpChartAnalysis); !errors.Is(err, apperrors.ErrOperationInFlight) {
		t.Errorf("Expected ErrOperationInFlight for a second call, got %v", err)
	}

	otherOp, err := gate.Acquire("alice", service.OpInsightAnalysis)
	if err != nil {
		t.Errorf("Expected a different operation to proceed, got %v", err)
	} else {
		otherOp()
	}

	otherUser, err := gate.Acquire("bob", service.OpChartAnalysis)
	if err != nil {
		t.Errorf("Expected a different user to proceed, got %v", err)
	} else {
		otherUser()
	}

	release()
	again, err := gate.Acquire("alice", service.OpChartAnalysis)
	if err != nil {
		t.Fatalf("Expected Acquire() to succeed after release, got %v", err)
	}
	again()
}
