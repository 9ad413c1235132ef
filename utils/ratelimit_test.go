package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestIPRateLimiterBucketsPerIP(t *testing.T) {
	l := NewIPRateLimiter(rate.Limit(1), 2)

	// each IP gets its own burst
	assert.True(t, l.getLimiter("10.0.0.1").Allow())
	assert.True(t, l.getLimiter("10.0.0.1").Allow())
	assert.False(t, l.getLimiter("10.0.0.1").Allow())

	assert.True(t, l.getLimiter("10.0.0.2").Allow())
}

func TestEnvFallbacks(t *testing.T) {
	assert.Equal(t, 5.0, envFloat("DOES_NOT_EXIST", 5))
	assert.Equal(t, 20, envInt("DOES_NOT_EXIST", 20))

	t.Setenv("SOME_RPS", "2.5")
	assert.Equal(t, 2.5, envFloat("SOME_RPS", 5))

	t.Setenv("SOME_BURST", "nonsense")
	assert.Equal(t, 20, envInt("SOME_BURST", 20))
}
