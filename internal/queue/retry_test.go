package queue

import (
	"testing"
	"time"
)

func TestRetryPolicy_Delay(t *testing.T) {
	p := RetryPolicy{MaxAttempts: 8, Initial: 30 * time.Second, Max: 6 * time.Hour}

	cases := []struct {
		attempt int
		expect  time.Duration
	}{
		{0, 0},
		{1, 30 * time.Second},
		{2, time.Minute},
		{3, 2 * time.Minute},
		{6, 16 * time.Minute},
		{10, 256 * time.Minute},
		{11, 6 * time.Hour},
		{20, 6 * time.Hour},
	}

	for _, c := range cases {
		if d := p.Delay(c.attempt); d != c.expect {
			t.Errorf("attempt %d: expected %s, got %s", c.attempt, c.expect, d)
		}
	}
}

func TestRetryPolicy_Exhausted(t *testing.T) {
	p := RetryPolicy{MaxAttempts: 3}
	for attempt, expect := range []bool{false, false, true, true} {
		if p.Exhausted(attempt) != expect {
			t.Errorf("attempt %d: expected exhausted=%t", attempt, expect)
		}
	}
}
