package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute_PassesThroughResult(t *testing.T) {
	cb := New(StorefrontConfig())

	result, err := cb.Execute(func() (interface{}, error) {
		return "1.2.3", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "1.2.3", result)
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestExecute_OpensAfterFailureThreshold(t *testing.T) {
	cfg := Config{
		Name:             "test",
		MaxRequests:      1,
		Interval:         0,
		Timeout:          time.Minute,
		FailureThreshold: 0.5,
		MinRequests:      4,
	}
	cb := New(cfg)

	failing := errors.New("storefront unreachable")
	for i := 0; i < 4; i++ {
		_, err := cb.Execute(func() (interface{}, error) {
			return nil, failing
		})
		require.Error(t, err)
	}

	assert.True(t, cb.IsOpen())

	_, err := cb.Execute(func() (interface{}, error) {
		t.Fatal("call must not run while circuit is open")
		return nil, nil
	})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func TestExecute_StaysClosedBelowMinRequests(t *testing.T) {
	cb := New(StorefrontConfig())

	for i := 0; i < 3; i++ {
		_, _ = cb.Execute(func() (interface{}, error) {
			return nil, errors.New("transient")
		})
	}

	assert.False(t, cb.IsOpen())
}
