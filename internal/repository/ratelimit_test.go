package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateLimitPolicy_NextDelay(t *testing.T) {
	t.Run("Should double from 60 when no retry-after is given", func(t *testing.T) {
		policy := NewRateLimitPolicy()
		var got []int
		for range 4 {
			got = append(got, policy.NextDelay(`{}`))
		}
		assert.Equal(t, []int{60, 120, 240, 480}, got)
		assert.Equal(t, 480, policy.SecondaryBackoff())
	})

	t.Run("Should honor retry-after and reset the fallback", func(t *testing.T) {
		policy := NewRateLimitPolicy()
		assert.Equal(t, 60, policy.NextDelay(`{"message":"slow down"}`))
		assert.Equal(t, 2, policy.NextDelay(`{"retry-after": 2}`))
		assert.Equal(t, 0, policy.SecondaryBackoff())
		assert.Equal(t, 60, policy.NextDelay(`{}`))
	})

	t.Run("Should treat unparsable bodies as missing retry-after", func(t *testing.T) {
		cases := []string{"", "not json", `[1,2]`, `{"retry-after":"2"}`, `{"retry-after":2.5}`, `{"retry-after":-1}`}
		for _, body := range cases {
			policy := NewRateLimitPolicy()
			assert.Equal(t, 60, policy.NextDelay(body), "body %q", body)
		}
	})

	t.Run("Should cap the fallback at one hour", func(t *testing.T) {
		policy := NewRateLimitPolicy()
		var last int
		for range 10 {
			last = policy.NextDelay("")
		}
		assert.Equal(t, MaxSecondaryBackoff, last)
	})

	t.Run("Should cap a huge retry-after at one hour", func(t *testing.T) {
		policy := NewRateLimitPolicy()
		assert.Equal(t, MaxSecondaryBackoff, policy.NextDelay(`{"retry-after":10000000000}`))
		assert.Equal(t, MaxSecondaryBackoff, policy.NextDelay(`{"retry-after":3601}`))
		assert.Equal(t, 3600, policy.NextDelay(`{"retry-after":3600}`))
		assert.Equal(t, 0, policy.SecondaryBackoff())
	})

	t.Run("Should reset to zero", func(t *testing.T) {
		policy := NewRateLimitPolicy()
		policy.NextDelay("")
		policy.Reset()
		assert.Equal(t, 0, policy.SecondaryBackoff())
	})
}
