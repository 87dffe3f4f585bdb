package domain

import (
	"errors"
	"strings"
)

// Error taxonomy for the generation pipeline. Provider-level errors propagate
// through the orchestrator unchanged except where fallback or retry logic
// catches them explicitly; no path swallows an error silently.
var (
	// ErrGenerationFailed indicates a transport-level failure or no usable
	// response from the provider.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrInvalidResponse indicates a well-formed transport response that is
	// missing the expected payload shape, such as an empty choice list.
	ErrInvalidResponse = errors.New("invalid response from provider")

	// ErrParsingFailed indicates that zero structured records were extracted
	// from an otherwise successful completion.
	ErrParsingFailed = errors.New("failed to parse model output")

	// ErrCacheMiss indicates no cached completion was found.
	ErrCacheMiss = errors.New("cache miss")
)

// APIError is a provider-reported failure. Detail carries the HTTP status and
// the provider's error message and code when they could be decoded; the UI
// renders it verbatim.
type APIError struct {
	Detail string
}

func (e *APIError) Error() string {
	return "api error: " + e.Detail
}

// IsRateLimit reports whether err is a rate-limit-class API error. These
// advance the model fallback chain instead of aborting it.
func IsRateLimit(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}

	detail := strings.ToLower(apiErr.Detail)
	return strings.Contains(detail, "429") || strings.Contains(detail, "rate limit")
}
