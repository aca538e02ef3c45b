// services/track_rules_test.go
package services

import (
	"testing"
	"time"

	"teamselect/models"

	"github.com/stretchr/testify/assert"
)

func TestEligibleTrackType(t *testing.T) {
	tests := []struct {
		course   int
		want     models.TrackType
		eligible bool
	}{
		{1, models.TrackBachelor, true},
		{2, models.TrackBachelor, true},
		{3, "", false},
		{4, "", false},
		{5, models.TrackMaster, true},
		{6, "", false},
	}

	for _, tt := range tests {
		got, ok := EligibleTrackType(tt.course)
		assert.Equal(t, tt.eligible, ok, "course %d", tt.course)
		assert.Equal(t, tt.want, got, "course %d", tt.course)
	}
}

func TestIsSecondYear(t *testing.T) {
	assert.False(t, IsSecondYear(1))
	assert.True(t, IsSecondYear(2))
	assert.False(t, IsSecondYear(3))
	assert.False(t, IsSecondYear(5))
}

func TestTrackClosed(t *testing.T) {
	now := time.Now()

	open := &models.Track{EndDate: now.AddDate(0, 0, 7)}
	assert.False(t, TrackClosed(open, now))

	closed := &models.Track{EndDate: now.AddDate(0, 0, -1)}
	assert.True(t, TrackClosed(closed, now))

	// No end date set means the track never closes.
	endless := &models.Track{}
	assert.False(t, TrackClosed(endless, now))
}
