package httpx

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"
)

type timeoutErr struct{ timeout bool }

func (e timeoutErr) Error() string   { return "dial timeout" }
func (e timeoutErr) Timeout() bool   { return e.timeout }
func (e timeoutErr) Temporary() bool { return false }

var _ net.Error = timeoutErr{}

func TestIsRetryableStatus(t *testing.T) {
	cases := []struct {
		code int
		want bool
	}{
		{200, false},
		{400, false},
		{404, false},
		{408, true},
		{429, true},
		{500, true},
		{503, true},
		{599, true},
	}
	for _, tc := range cases {
		if got := IsRetryableStatus(tc.code); got != tc.want {
			t.Errorf("IsRetryableStatus(%d) = %v, want %v", tc.code, got, tc.want)
		}
	}
}

func TestIsRetryableError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"deadline", context.DeadlineExceeded, true},
		{"net timeout", timeoutErr{timeout: true}, true},
		{"net non-timeout", timeoutErr{timeout: false}, false},
		{"plain", errors.New("boom"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsRetryableError(tc.err); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBackoffGrowsWithJitter(t *testing.T) {
	base := 500 * time.Millisecond
	if d := Backoff(0, base); d != 0 {
		t.Fatalf("attempt 0 slept %v, want 0", d)
	}
	if d := Backoff(1, 0); d != 0 {
		t.Fatalf("zero base slept %v, want 0", d)
	}
	prevMax := time.Duration(0)
	for attempt := 1; attempt <= 3; attempt++ {
		expected := base << (attempt - 1)
		low := time.Duration(float64(expected) * 0.8)
		high := time.Duration(float64(expected) * 1.2)
		for i := 0; i < 50; i++ {
			d := Backoff(attempt, base)
			if d < low || d > high {
				t.Fatalf("attempt %d backoff %v outside [%v, %v]", attempt, d, low, high)
			}
		}
		if low <= prevMax {
			t.Fatalf("attempt %d window overlaps previous: low %v, prev high %v", attempt, low, prevMax)
		}
		prevMax = high
	}
}
