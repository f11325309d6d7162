package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBridge = errors.New("bridge down")

func newTestCB(openTimeout time.Duration) *CircuitBreaker {
	return NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 3,
		SuccessThreshold: 2,
		OpenTimeout:      openTimeout,
	})
}

func TestCB_AbreTrasFallosConsecutivos(t *testing.T) {
	cb := newTestCB(time.Minute)
	fail := func() error { return errBridge }

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(fail), errBridge)
	}
	assert.Equal(t, CBOpen, cb.State())

	// Open circuit fast-fails without invoking fn
	called := false
	err := cb.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestCB_ExitoResetaContadorEnCerrado(t *testing.T) {
	cb := newTestCB(time.Minute)

	require.Error(t, cb.Execute(func() error { return errBridge }))
	require.Error(t, cb.Execute(func() error { return errBridge }))
	require.NoError(t, cb.Execute(func() error { return nil }))

	// Two more failures are below the threshold again
	require.Error(t, cb.Execute(func() error { return errBridge }))
	require.Error(t, cb.Execute(func() error { return errBridge }))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCB_HalfOpenCierraTrasExitos(t *testing.T) {
	cb := newTestCB(10 * time.Millisecond)
	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errBridge })
	}
	require.Equal(t, CBOpen, cb.State())

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, CBHalfOpen, cb.State())

	require.NoError(t, cb.Execute(func() error { return nil }))
	require.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCB_ProbeFallidoReabre(t *testing.T) {
	cb := newTestCB(10 * time.Millisecond)
	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errBridge })
	}
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, CBHalfOpen, cb.State())

	assert.ErrorIs(t, cb.Execute(func() error { return errBridge }), errBridge)
	assert.Equal(t, CBOpen, cb.State())
}

func TestCB_StateString(t *testing.T) {
	assert.Equal(t, "closed", CBClosed.String())
	assert.Equal(t, "open", CBOpen.String())
	assert.Equal(t, "half-open", CBHalfOpen.String())
}
