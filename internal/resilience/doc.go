// Package resilience provides reliability and fault tolerance patterns for the application.
// It includes implementations of circuit breakers and retry logic to keep a
// check pass bounded when the storefront API or a push backend misbehaves.
//
// The package supports:
//   - Circuit breakers for storefront lookup calls
//   - Retry logic with exponential backoff and jitter for push delivery
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.StorefrontConfig())
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return callLookupAPI()
//	})
//
//	err := retry.WithBackoff(ctx, retry.NotifyConfig(), func() error {
//	    return sendNotification()
//	})
package resilience
