package worker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryPolicyNextDelay(t *testing.T) {
	policy := RetryPolicy{
		MaxRetries:    5,
		InitialDelay:  time.Second,
		MaxDelay:      10 * time.Second,
		BackoffFactor: 2,
	}

	assert.Equal(t, time.Second, policy.NextDelay(1))
	assert.Equal(t, 2*time.Second, policy.NextDelay(2))
	assert.Equal(t, 4*time.Second, policy.NextDelay(3))
	assert.Equal(t, 8*time.Second, policy.NextDelay(4))

	t.Run("ClampsToMaxDelay", func(t *testing.T) {
		assert.Equal(t, 10*time.Second, policy.NextDelay(5))
		assert.Equal(t, 10*time.Second, policy.NextDelay(50))
	})

	t.Run("NormalizesAttempt", func(t *testing.T) {
		assert.Equal(t, time.Second, policy.NextDelay(0))
		assert.Equal(t, time.Second, policy.NextDelay(-3))
	})

	t.Run("ZeroValueDefaults", func(t *testing.T) {
		var p RetryPolicy
		assert.Equal(t, time.Second, p.NextDelay(1))
		assert.Equal(t, 2*time.Second, p.NextDelay(2))
	})
}
