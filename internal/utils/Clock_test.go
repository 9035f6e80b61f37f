package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToday(t *testing.T) {
	clock := &MockClock{FixedNow: time.Date(2025, 12, 31, 23, 59, 59, 0, time.FixedZone("WAT", 3600))}

	assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), Today(clock))

	clock.SetNow(time.Date(2026, 1, 1, 0, 0, 1, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Today(clock))
}
