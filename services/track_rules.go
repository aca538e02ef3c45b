// services/track_rules.go - Pure track eligibility rules
package services

import (
	"time"

	"teamselect/models"
)

// EligibleTrackType returns the track type students of the given course may
// join. Courses 1 and 2 map to the bachelor track, course 5 to the master
// track; every other course is not eligible for any track.
func EligibleTrackType(course int) (models.TrackType, bool) {
	switch course {
	case 1, 2:
		return models.TrackBachelor, true
	case 5:
		return models.TrackMaster, true
	default:
		return "", false
	}
}

// IsSecondYear reports whether the course falls under the per-team
// second-course quota.
func IsSecondYear(course int) bool {
	return course == 2
}

// TrackClosed reports whether the track's selection window has ended.
// Tracks without an end date never close.
func TrackClosed(track *models.Track, now time.Time) bool {
	return !track.EndDate.IsZero() && now.After(track.EndDate)
}
