// services/student_service_test.go
package services

import (
	"testing"

	"teamselect/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateStudentAssignsLatestEligibleTrack(t *testing.T) {
	f := newFixture(t)
	f.createTrack(models.TrackBachelor, 5, 1)
	latest := f.createTrack(models.TrackBachelor, 5, 1)
	require.NoError(t, f.db.Model(latest).Update("start_date", latest.StartDate.AddDate(0, 0, 1)).Error)
	f.createTrack(models.TrackMaster, 5, 1)

	user := f.createAdmin()
	student, err := f.students.Create(user.ID, 2, 201, "", "", nil)
	require.NoError(t, err)
	require.NotNil(t, student.TrackID)
	assert.Equal(t, latest.ID, *student.TrackID)
}

func TestCreateStudentIneligibleCourseGetsNoTrack(t *testing.T) {
	f := newFixture(t)
	f.createTrack(models.TrackBachelor, 5, 1)
	f.createTrack(models.TrackMaster, 5, 1)

	user := f.createAdmin()
	student, err := f.students.Create(user.ID, 3, 301, "", "", nil)
	require.NoError(t, err)
	assert.Nil(t, student.TrackID)
}

func TestCreateStudentValidatesCourse(t *testing.T) {
	f := newFixture(t)
	user := f.createAdmin()

	for _, course := range []int{0, 7, -1} {
		_, err := f.students.Create(user.ID, course, 101, "", "", nil)
		require.Error(t, err, "course %d", course)
		assert.True(t, IsBusiness(err))
	}
}

func TestLookupNotFoundMessages(t *testing.T) {
	f := newFixture(t)

	_, err := f.students.FindByUserID(42)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "no student profile for user 42", err.Error())

	tracks := NewTrackService(f.db)
	_, err = tracks.LatestByType(models.TrackMaster)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "no master track found", err.Error())
}

func TestSearchStudents(t *testing.T) {
	f := newFixture(t)
	track := f.createTrack(models.TrackBachelor, 5, 1)
	captain := f.createStudent(1)
	f.createTeam(track, captain)
	f.createStudent(1)
	f.createStudent(2)

	course := 1
	byCourse, err := f.students.Search(&course, nil)
	require.NoError(t, err)
	assert.Len(t, byCourse, 2)

	free := false
	freeStudents, err := f.students.Search(nil, &free)
	require.NoError(t, err)
	assert.Len(t, freeStudents, 2)

	hasTeam := true
	withTeam, err := f.students.Search(&course, &hasTeam)
	require.NoError(t, err)
	require.Len(t, withTeam, 1)
	assert.Equal(t, captain.ID, withTeam[0].ID)
}
