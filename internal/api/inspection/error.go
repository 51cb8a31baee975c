package inspection

import (
	"net/http"

	"QualityInspector/pkg/response"
)

// The pipeline's failure taxonomy. Every failure leaving the service layer
// is one of these values; decoder and runtime internals never cross the
// handler boundary.
var (
	ErrModelNotLoaded    = response.NewError(http.StatusServiceUnavailable, "model is not loaded")
	ErrEmptyImage        = response.NewError(http.StatusBadRequest, "no image data provided")
	ErrImageTooLarge     = response.NewError(http.StatusRequestEntityTooLarge, "file too large")
	ErrUnsupportedFormat = response.NewError(http.StatusBadRequest, "unsupported image format")
	ErrCorruptImage      = response.NewError(http.StatusBadRequest, "image appears to be corrupted or truncated")
	ErrInferenceFailed   = response.NewError(http.StatusInternalServerError, "prediction failed")
)
