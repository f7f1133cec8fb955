package notify

import "errors"

// Sentinel errors for dispatch operations.
var (
	// ErrUnknownMethod indicates that the configured delivery method does not
	// match any registered backend. Dispatch is skipped, not retried.
	ErrUnknownMethod = errors.New("unsupported push method, use 'bark', 'telegram' or 'none'")

	// ErrBackendDisabled indicates that the selected backend is missing a
	// required credential (Bark device key, Telegram token or chat id).
	ErrBackendDisabled = errors.New("backend credentials missing, dispatch skipped")

	// ErrNothingToSend indicates a nil notification reached the dispatcher.
	ErrNothingToSend = errors.New("no notification to dispatch")
)
