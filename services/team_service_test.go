// services/team_service_test.go
package services

import (
	"testing"

	"teamselect/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateTeamMakesCaptainFirstMember(t *testing.T) {
	f := newFixture(t)
	track := f.createTrack(models.TrackBachelor, 5, 1)
	captain := f.createStudent(1)

	team := f.createTeam(track, captain)

	assert.Equal(t, captain.ID, team.CaptainID)
	assert.Equal(t, 1, team.QuantityOfStudents)

	reloaded := f.reloadStudent(captain.ID)
	assert.True(t, reloaded.HasTeam)
	assert.True(t, reloaded.IsCaptain)
	require.NotNil(t, reloaded.CurrentTeamID)
	assert.Equal(t, team.ID, *reloaded.CurrentTeamID)
}

func TestCreateTeamRejectsWrongTrack(t *testing.T) {
	f := newFixture(t)
	track := f.createTrack(models.TrackMaster, 5, 1)
	captain := f.createStudent(1) // bachelor course

	_, err := f.teams.CreateTeam("Mismatch", "", "", track.ID, captain.ID, nil)
	require.Error(t, err)
	assert.True(t, IsBusiness(err))
}

func TestCreateTeamRejectsClosedTrack(t *testing.T) {
	f := newFixture(t)
	track := f.closedTrack(models.TrackBachelor)
	captain := f.createStudent(1)

	_, err := f.teams.CreateTeam("Too late", "", "", track.ID, captain.ID, nil)
	require.Error(t, err)
	assert.True(t, IsBusiness(err))
}

func TestCanAcceptCapacity(t *testing.T) {
	f := newFixture(t)
	track := f.createTrack(models.TrackBachelor, 2, 2)
	captain := f.createStudent(1)
	team := f.createTeam(track, captain)

	admin := f.createAdmin()
	member := f.createStudent(1)
	_, err := f.teams.AddStudentToTeam(team.ID, member.ID, admin)
	require.NoError(t, err)

	team = f.reloadTeam(team.ID)
	assert.True(t, team.IsFull)

	late := f.createStudent(1)
	err = f.teams.CanAccept(team, late)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "full")
}

func TestCanAcceptSecondYearQuota(t *testing.T) {
	f := newFixture(t)
	track := f.createTrack(models.TrackBachelor, 5, 1)
	captain := f.createStudent(1)
	team := f.createTeam(track, captain)

	admin := f.createAdmin()
	second := f.createStudent(2)
	_, err := f.teams.AddStudentToTeam(team.ID, second.ID, admin)
	require.NoError(t, err)

	team = f.reloadTeam(team.ID)
	anotherSecond := f.createStudent(2)
	err = f.teams.CanAccept(team, anotherSecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "second-year")

	// First-year students are unaffected by the quota.
	first := f.createStudent(1)
	assert.NoError(t, f.teams.CanAccept(team, first))
}

func TestCanAcceptIneligibleCourse(t *testing.T) {
	f := newFixture(t)
	track := f.createTrack(models.TrackBachelor, 5, 1)
	captain := f.createStudent(1)
	team := f.createTeam(track, captain)

	for _, course := range []int{3, 4, 6} {
		student := f.createStudent(course)
		err := f.teams.CanAccept(team, student)
		require.Error(t, err, "course %d", course)
		assert.Contains(t, err.Error(), "wrong track")
	}

	// A master's student cannot join a bachelor team either.
	master := f.createStudent(5)
	err := f.teams.CanAccept(team, master)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wrong track")
}

func TestRemoveStudentClearsProjections(t *testing.T) {
	f := newFixture(t)
	track := f.createTrack(models.TrackBachelor, 5, 1)
	captain := f.createStudent(1)
	team := f.createTeam(track, captain)

	admin := f.createAdmin()
	member := f.createStudent(1)
	_, err := f.teams.AddStudentToTeam(team.ID, member.ID, admin)
	require.NoError(t, err)

	team = f.reloadTeam(team.ID)
	assert.Equal(t, 2, team.QuantityOfStudents)

	_, err = f.teams.RemoveStudentFromTeam(team.ID, member.ID, admin)
	require.NoError(t, err)

	reloaded := f.reloadStudent(member.ID)
	assert.False(t, reloaded.HasTeam)
	assert.Nil(t, reloaded.CurrentTeamID)

	team = f.reloadTeam(team.ID)
	assert.Equal(t, 1, team.QuantityOfStudents)
	assert.False(t, team.IsFull)
}

func TestCaptainCannotBeRemoved(t *testing.T) {
	f := newFixture(t)
	track := f.createTrack(models.TrackBachelor, 5, 1)
	captain := f.createStudent(1)
	team := f.createTeam(track, captain)

	admin := f.createAdmin()
	_, err := f.teams.RemoveStudentFromTeam(team.ID, captain.ID, admin)
	require.Error(t, err)
	assert.True(t, IsBusiness(err))
	assert.Contains(t, err.Error(), "captain")
}

func TestRemoveRequiresPermission(t *testing.T) {
	f := newFixture(t)
	track := f.createTrack(models.TrackBachelor, 5, 1)
	captain := f.createStudent(1)
	team := f.createTeam(track, captain)

	admin := f.createAdmin()
	member := f.createStudent(1)
	_, err := f.teams.AddStudentToTeam(team.ID, member.ID, admin)
	require.NoError(t, err)

	stranger := f.createStudent(1)
	_, err = f.teams.RemoveStudentFromTeam(team.ID, member.ID, stranger.User)
	require.Error(t, err)
	assert.True(t, IsForbidden(err))

	// The member may leave on their own.
	_, err = f.teams.RemoveStudentFromTeam(team.ID, member.ID, member.User)
	assert.NoError(t, err)
}

func TestCannotRejoinAfterLeaving(t *testing.T) {
	f := newFixture(t)
	track := f.createTrack(models.TrackBachelor, 5, 1)
	captain := f.createStudent(1)
	team := f.createTeam(track, captain)

	admin := f.createAdmin()
	member := f.createStudent(1)
	_, err := f.teams.AddStudentToTeam(team.ID, member.ID, admin)
	require.NoError(t, err)
	_, err = f.teams.RemoveStudentFromTeam(team.ID, member.ID, admin)
	require.NoError(t, err)

	_, err = f.teams.AddStudentToTeam(team.ID, member.ID, admin)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "re-join")

	// Another team is still open to them.
	captain2 := f.createStudent(1)
	team2 := f.createTeam(track, captain2)
	_, err = f.teams.AddStudentToTeam(team2.ID, member.ID, admin)
	assert.NoError(t, err)
}

func TestAddStudentToTeamCaptainBoundByCapacity(t *testing.T) {
	f := newFixture(t)
	track := f.createTrack(models.TrackBachelor, 2, 2)
	captain := f.createStudent(1)
	team := f.createTeam(track, captain)

	admin := f.createAdmin()
	first := f.createStudent(1)
	_, err := f.teams.AddStudentToTeam(team.ID, first.ID, admin)
	require.NoError(t, err)

	// Captain cannot push past the cap.
	extra := f.createStudent(1)
	_, err = f.teams.AddStudentToTeam(team.ID, extra.ID, captain.User)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "full")

	// Admins may overfill.
	_, err = f.teams.AddStudentToTeam(team.ID, extra.ID, admin)
	require.NoError(t, err)
	team = f.reloadTeam(team.ID)
	assert.Equal(t, 3, team.QuantityOfStudents)
}

func TestRemoveAfterOverfillKeepsFullFlag(t *testing.T) {
	f := newFixture(t)
	track := f.createTrack(models.TrackBachelor, 2, 2)
	captain := f.createStudent(1)
	team := f.createTeam(track, captain)

	admin := f.createAdmin()
	second := f.createStudent(1)
	third := f.createStudent(1)
	_, err := f.teams.AddStudentToTeam(team.ID, second.ID, admin)
	require.NoError(t, err)
	_, err = f.teams.AddStudentToTeam(team.ID, third.ID, admin)
	require.NoError(t, err)

	// Down from 3 to exactly max capacity: still full.
	_, err = f.teams.RemoveStudentFromTeam(team.ID, third.ID, admin)
	require.NoError(t, err)
	reloaded := f.reloadTeam(team.ID)
	assert.Equal(t, 2, reloaded.QuantityOfStudents)
	assert.True(t, reloaded.IsFull, "team at max capacity must be marked full")

	// One below max: no longer full.
	_, err = f.teams.RemoveStudentFromTeam(team.ID, second.ID, admin)
	require.NoError(t, err)
	reloaded = f.reloadTeam(team.ID)
	assert.Equal(t, 1, reloaded.QuantityOfStudents)
	assert.False(t, reloaded.IsFull)
}

func TestAddStudentRechecksQuotaInTransaction(t *testing.T) {
	f := newFixture(t)
	track := f.createTrack(models.TrackBachelor, 5, 1)
	captain := f.createStudent(1)
	team := f.createTeam(track, captain)

	admin := f.createAdmin()
	second := f.createStudent(2)
	_, err := f.teams.AddStudentToTeam(team.ID, second.ID, admin)
	require.NoError(t, err)

	// Even when the pre-check is skipped, the in-transaction recount
	// rejects a second-year student over the quota and rolls back.
	another := f.createStudent(2)
	team = f.reloadTeam(team.ID)
	err = f.db.Transaction(func(tx *gorm.DB) error {
		return f.teams.AddStudent(tx, team, another, false)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "second-year")

	reloaded := f.reloadTeam(team.ID)
	assert.Equal(t, 2, reloaded.QuantityOfStudents)
	assert.False(t, f.reloadStudent(another.ID).HasTeam)
}

func TestDeleteTeamDisbandsMembers(t *testing.T) {
	f := newFixture(t)
	track := f.createTrack(models.TrackBachelor, 5, 1)
	captain := f.createStudent(1)
	team := f.createTeam(track, captain)

	admin := f.createAdmin()
	member := f.createStudent(1)
	_, err := f.teams.AddStudentToTeam(team.ID, member.ID, admin)
	require.NoError(t, err)

	require.NoError(t, f.teams.DeleteTeam(team.ID, captain.User))

	for _, id := range []uint{captain.ID, member.ID} {
		s := f.reloadStudent(id)
		assert.False(t, s.HasTeam)
		assert.False(t, s.IsCaptain)
		assert.Nil(t, s.CurrentTeamID)
	}

	_, err = f.teams.FindByID(team.ID)
	assert.True(t, IsNotFound(err))
}

func TestDeleteTeamForbiddenForNonCaptain(t *testing.T) {
	f := newFixture(t)
	track := f.createTrack(models.TrackBachelor, 5, 1)
	captain := f.createStudent(1)
	team := f.createTeam(track, captain)

	stranger := f.createStudent(1)
	err := f.teams.DeleteTeam(team.ID, stranger.User)
	require.Error(t, err)
	assert.True(t, IsForbidden(err))
}

func TestTeamHistoryForStudent(t *testing.T) {
	f := newFixture(t)
	track := f.createTrack(models.TrackBachelor, 5, 1)
	captain := f.createStudent(1)
	team := f.createTeam(track, captain)

	admin := f.createAdmin()
	member := f.createStudent(1)
	_, err := f.teams.AddStudentToTeam(team.ID, member.ID, admin)
	require.NoError(t, err)
	_, err = f.teams.RemoveStudentFromTeam(team.ID, member.ID, admin)
	require.NoError(t, err)

	teams, err := f.teams.TeamHistoryForStudent(member.ID)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, team.ID, teams[0].ID)
}

func TestSearchTeams(t *testing.T) {
	f := newFixture(t)
	track := f.createTrack(models.TrackBachelor, 5, 1)
	alpha := f.createTeam(track, f.createStudent(1))
	f.createTeam(track, f.createStudent(1))

	byName, err := f.teams.Search(alpha.Name, nil, nil)
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, alpha.ID, byName[0].ID)

	notFull := false
	byTrack, err := f.teams.Search("", &track.ID, &notFull)
	require.NoError(t, err)
	assert.Len(t, byTrack, 2)
}
