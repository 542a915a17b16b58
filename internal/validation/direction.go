package validation

import (
	"strings"

	"github.com/ndewijer/TradeTrack-Backend/internal/api/request"
	"github.com/ndewijer/TradeTrack-Backend/internal/model"
)

// ValidateAnalyzeDirection validates a chart analysis request.
func ValidateAnalyzeDirection(req request.AnalyzeDirectionRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Image) == "" {
		errors["image"] = "image is required"
	}
	if req.Date != "" {
		if err := ValidateDate(req.Date); err != nil {
			errors["date"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateUpdateOutcome validates an outcome update.
func ValidateUpdateOutcome(req request.UpdateOutcomeRequest) error {
	if !model.ValidOutcome(model.DirectionOutcome(req.Outcome)) {
		return &Error{Fields: map[string]string{
			"outcome": "outcome must be Pending, Correct or Incorrect",
		}}
	}
	return nil
}
