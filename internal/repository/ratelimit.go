package repository

import (
	"encoding/json"
	"sync"
)

const (
	// InitialSecondaryBackoff is the first fallback delay, in seconds, when a
	// rate-limited response carries no retry-after hint.
	InitialSecondaryBackoff = 60
	// MaxSecondaryBackoff caps every delay at one hour, so the delay in
	// nanoseconds always fits a time.Duration.
	MaxSecondaryBackoff = 3600
)

// RateLimitPolicy computes how long to wait after a 429 response.
type RateLimitPolicy struct {
	mu               sync.Mutex
	secondaryBackoff int
}

// NewRateLimitPolicy creates a policy with no accumulated back-off.
func NewRateLimitPolicy() *RateLimitPolicy {
	return &RateLimitPolicy{}
}

// NextDelay returns the number of seconds to sleep for a rate-limited
// response body. An integer "retry-after" field wins and resets the fallback;
// otherwise the fallback starts at 60 and doubles. Both are capped at
// MaxSecondaryBackoff.
func (p *RateLimitPolicy) NextDelay(body string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if seconds, ok := parseRetryAfter(body); ok {
		p.secondaryBackoff = 0
		return min(seconds, MaxSecondaryBackoff)
	}
	if p.secondaryBackoff == 0 {
		p.secondaryBackoff = InitialSecondaryBackoff
	} else {
		p.secondaryBackoff = min(p.secondaryBackoff*2, MaxSecondaryBackoff)
	}
	return p.secondaryBackoff
}

// Reset clears the fallback after a response that was not rate limited.
func (p *RateLimitPolicy) Reset() {
	p.mu.Lock()
	p.secondaryBackoff = 0
	p.mu.Unlock()
}

// SecondaryBackoff returns the current fallback delay in seconds.
func (p *RateLimitPolicy) SecondaryBackoff() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.secondaryBackoff
}

func parseRetryAfter(body string) (int, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		return 0, false
	}
	raw, ok := fields["retry-after"]
	if !ok {
		return 0, false
	}
	var seconds int
	if err := json.Unmarshal(raw, &seconds); err != nil || seconds < 0 {
		return 0, false
	}
	return seconds, true
}
