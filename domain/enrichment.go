package domain

import (
	"errors"
)

var (
	MessageFailedScanLabel     = "could not analyze image"
	MessageFailedGoalAdvice    = "could not generate advice"
	MessageSuccessScanLabel    = "nutrition label analyzed successfully"
	MessageSuccessGoalAdvice   = "goal advice generated successfully"
	MessageEnrichmentDisabled  = "AI service unavailable."
	MessageAnalysisUnavailable = "Could not generate analysis."

	// ErrEnrichmentUnavailable is the unavailable signal of the enrichment
	// client: backend unreachable, uncredentialed, or unparseable output.
	// It is recovered locally into a placeholder, null or empty result and
	// never surfaces as a request failure, except for label scans and goal
	// advice where no sensible placeholder exists.
	ErrEnrichmentUnavailable = errors.New("enrichment unavailable")

	ErrCouldNotAnalyzeImage = errors.New("could not analyze image")
	ErrAdviceFailed         = errors.New("could not generate advice")
)
