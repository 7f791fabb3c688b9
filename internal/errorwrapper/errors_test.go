package errorwrapper

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapError(t *testing.T) {
	base := errors.New("disk full")
	wrapped := WrapError(base, "saving record")

	assert.ErrorIs(t, wrapped, base)
	assert.Contains(t, wrapped.Error(), "saving record")
}

func TestFetchError_IsTransient(t *testing.T) {
	tests := []struct {
		name      string
		err       *FetchError
		transient bool
	}{
		{"transport failure", NewFetchError("http://x", "timeout", errors.New("timeout")), true},
		{"server error", NewHTTPFetchError("http://x", 503, "unavailable"), true},
		{"throttled", NewHTTPFetchError("http://x", 429, "too many requests"), true},
		{"not found", NewHTTPFetchError("http://x", 404, "not found"), false},
		{"forbidden", NewHTTPFetchError("http://x", 403, "forbidden"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.transient, tt.err.IsTransient())
		})
	}
}

func TestIsTransientFetchError_WrappedChain(t *testing.T) {
	inner := NewHTTPFetchError("http://x", 500, "boom")
	outer := fmt.Errorf("attempt 2: %w", inner)

	assert.True(t, IsTransientFetchError(outer))
	assert.False(t, IsTransientFetchError(errors.New("not a fetch error")))
}

func TestSignatureError(t *testing.T) {
	se := NewSignatureError("https://epa.gov/npdes/al", "declared Content-Length 99 does not match 4 observed bytes")

	assert.Contains(t, se.Error(), "https://epa.gov/npdes/al")
	assert.Contains(t, se.Error(), "Content-Length 99")
}

func TestCacheError_Unwrap(t *testing.T) {
	base := errors.New("permission denied")
	ce := NewCacheError("save", "epa-npdes-al", base)

	assert.ErrorIs(t, ce, base)
	assert.Contains(t, ce.Error(), "epa-npdes-al")
}
