package ai

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ndewijer/TradeTrack-Backend/internal/apperrors"
)

// StatusError is a non-2xx answer from the model service.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("model service returned %d: %s", e.StatusCode, e.Body)
}

// Is lets callers match rate-limit answers against apperrors.ErrAIQuotaExceeded
// and every other answer against apperrors.ErrAIUnavailable.
func (e *StatusError) Is(target error) bool {
	if isQuota(e.StatusCode, e.Body) {
		return target == apperrors.ErrAIQuotaExceeded
	}
	return target == apperrors.ErrAIUnavailable
}

func isQuota(status int, body string) bool {
	if status == http.StatusTooManyRequests {
		return true
	}
	upper := strings.ToUpper(body)
	return strings.Contains(upper, "RESOURCE_EXHAUSTED") || strings.Contains(upper, "QUOTA")
}

// Classify maps any client error onto the two sentinel kinds the API
// distinguishes. Errors that already match one of them pass through.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, apperrors.ErrAIQuotaExceeded) ||
		errors.Is(err, apperrors.ErrAIUnavailable) ||
		errors.Is(err, apperrors.ErrAIMalformedResponse) {
		return err
	}
	if isQuota(0, err.Error()) {
		return fmt.Errorf("%w: %v", apperrors.ErrAIQuotaExceeded, err)
	}
	return fmt.Errorf("%w: %v", apperrors.ErrAIUnavailable, err)
}
