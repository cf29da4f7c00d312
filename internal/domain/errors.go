package domain

import "errors"

// Matching failures a provider reports to its caller. The first three are
// market or input conditions a dry run folds into a plain false; unsupported
// features indicate a caller bug and always surface as errors.
var (
	ErrUnsupportedDirection  = errors.New("unsupported exchange direction")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrInsufficientLiquidity = errors.New("insufficient liquidity")
	ErrUnsupportedFeature    = errors.New("feature not supported by provider")
)

// IsMarketCondition reports whether err is a failure a dry run converts to a
// boolean result instead of propagating.
func IsMarketCondition(err error) bool {
	return errors.Is(err, ErrUnsupportedDirection) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInsufficientLiquidity)
}
