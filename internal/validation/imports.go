package validation

import (
	"fmt"
	"strings"

	"github.com/ndewijer/TradeTrack-Backend/internal/api/request"
)

// MaxImagesPerBatch bounds one image import.
const MaxImagesPerBatch = 20

// ValidateImageImport validates a batch image import request.
func ValidateImageImport(req request.ImageImportRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Account) == "" {
		errors["account"] = "account is required"
	}

	switch {
	case len(req.Images) == 0:
		errors["images"] = "at least one image is required"
	case len(req.Images) > MaxImagesPerBatch:
		errors["images"] = fmt.Sprintf("at most %d images per batch", MaxImagesPerBatch)
	default:
		for i, img := range req.Images {
			if strings.TrimSpace(img.Image) == "" {
				errors[fmt.Sprintf("images[%d]", i)] = "image is required"
			}
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
