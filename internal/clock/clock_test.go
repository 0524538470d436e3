package clock

import (
	"testing"
	"time"
)

func TestNow_ReturnsCurrentTime(t *testing.T) {
	before := time.Now()
	result := Now()
	after := time.Now()

	if result.Before(before) || result.After(after) {
		t.Errorf("Now() returned %v, expected between %v and %v", result, before, after)
	}
}

func TestMockClock_Now(t *testing.T) {
	mockTime := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	mock := NewMockClock(mockTime)

	if got := mock.Now(); !got.Equal(mockTime) {
		t.Errorf("MockClock.Now() returned %v, expected exactly %v", got, mockTime)
	}
}

func TestMockClock_Advance(t *testing.T) {
	mockTime := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	mock := NewMockClock(mockTime)

	first := mock.Now()
	mock.Advance(time.Hour)

	if got := mock.Since(first); got != time.Hour {
		t.Errorf("Since after Advance = %v, expected 1h", got)
	}

	later := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.Set(later)
	if !mock.Now().Equal(later) {
		t.Errorf("Set did not take effect: %v", mock.Now())
	}
}

func TestRealClockSatisfiesInterface(t *testing.T) {
	var c Clock = RealClock{}
	if c.Since(c.Now()) < 0 {
		t.Error("Since should not be negative")
	}
}
