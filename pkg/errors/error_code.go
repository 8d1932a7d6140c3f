package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown  ErrorCode = 1
	ErrCodeCanceled ErrorCode = 2

	// Validation and configuration errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeConfigNotFound       ErrorCode = 102
	ErrCodeInvalidTimeframe     ErrorCode = 103
	ErrCodeInvalidProvider      ErrorCode = 104
	ErrCodeInvalidPrecision     ErrorCode = 105

	// Market data errors (200-299)
	ErrCodeMarketDataFetchFailed ErrorCode = 200
	ErrCodeMarketDataParseFailed ErrorCode = 201
	ErrCodeNoDataFound           ErrorCode = 202
	ErrCodeInsufficientData      ErrorCode = 203

	// Exchange gateway errors (300-399)
	ErrCodeExchangeRequestFailed ErrorCode = 300
	ErrCodeSymbolNotFound        ErrorCode = 301
	ErrCodeAssetNotFound         ErrorCode = 302
	ErrCodeInvalidResponse       ErrorCode = 303

	// Strategy and backtest errors (400-499)
	ErrCodeIndicatorCalculation ErrorCode = 400
	ErrCodeBacktestFailed       ErrorCode = 401
	ErrCodeSignalFailed         ErrorCode = 402

	// Order placement errors (500-599)
	ErrCodeOrderFailed         ErrorCode = 500
	ErrCodeLegRejected         ErrorCode = 501
	ErrCodeUnprotectedPosition ErrorCode = 502
	ErrCodeInvalidBracket      ErrorCode = 503
	ErrCodeQuantityTooSmall    ErrorCode = 504
	ErrCodeInvalidStateChange  ErrorCode = 505
	ErrCodeOrderCancelFailed   ErrorCode = 506
	ErrCodeAccountConfigFailed ErrorCode = 507
	ErrCodeOrderStatusUnknown  ErrorCode = 508

	// Funds errors (600-699)
	ErrCodeInsufficientFunds ErrorCode = 600
)
