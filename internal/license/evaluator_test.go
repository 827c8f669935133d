package license

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestEvaluate_NoExpiry(t *testing.T) {
	status := Evaluate(nil, testNow)

	assert.True(t, status.IsActive)
	assert.Nil(t, status.ExpiresAt)
	assert.Nil(t, status.DaysUntilExpiry)
	assert.False(t, status.IsExpiringSoon)
}

func TestEvaluate_FutureExpiry(t *testing.T) {
	expiry := testNow.Add(90 * 24 * time.Hour)
	status := Evaluate(&expiry, testNow)

	assert.True(t, status.IsActive)
	assert.Equal(t, &expiry, status.ExpiresAt)
	assert.Equal(t, 90, *status.DaysUntilExpiry)
	assert.False(t, status.IsExpiringSoon)
}

func TestEvaluate_PastExpiry(t *testing.T) {
	expiry := testNow.Add(-time.Hour)
	status := Evaluate(&expiry, testNow)

	assert.False(t, status.IsActive)
	assert.Nil(t, status.DaysUntilExpiry)
	assert.False(t, status.IsExpiringSoon)
}

func TestEvaluate_ExpiryEqualsNow(t *testing.T) {
	expiry := testNow
	status := Evaluate(&expiry, testNow)

	assert.False(t, status.IsActive)
	assert.Nil(t, status.DaysUntilExpiry)
}

func TestEvaluate_DayCountRoundsUp(t *testing.T) {
	// 6 days and ~2.4 hours remaining must report 7 days, not 6.
	expiry := testNow.Add(6*24*time.Hour + 145*time.Minute)
	status := Evaluate(&expiry, testNow)

	assert.True(t, status.IsActive)
	assert.Equal(t, 7, *status.DaysUntilExpiry)
	assert.True(t, status.IsExpiringSoon)
}

func TestEvaluate_ExpiringSoonBoundary(t *testing.T) {
	// Exactly 7 days out: inside the warning window.
	atSeven := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	status := Evaluate(&atSeven, testNow)
	assert.Equal(t, 7, *status.DaysUntilExpiry)
	assert.True(t, status.IsExpiringSoon)

	// 7 days and 1 hour rounds up to 8: outside the window.
	overSeven := atSeven.Add(time.Hour)
	status = Evaluate(&overSeven, testNow)
	assert.Equal(t, 8, *status.DaysUntilExpiry)
	assert.False(t, status.IsExpiringSoon)
}
