// services/testhelpers_test.go - Shared fixtures for the service tests
package services

import (
	"fmt"
	"testing"
	"time"

	"teamselect/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory database per test. A single
// connection keeps every gorm call on the same sqlite handle.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Track{},
		&models.Technology{},
		&models.Team{},
		&models.Student{},
		&models.Application{},
		&models.TeamHistory{},
	)
	require.NoError(t, err)

	return db
}

type fixture struct {
	t  *testing.T
	db *gorm.DB

	teams    *TeamService
	students *StudentService
	apps     *ApplicationService

	seq int
}

func newFixture(t *testing.T) *fixture {
	db := setupTestDB(t)
	teams := NewTeamService(db)
	students := NewStudentService(db)
	return &fixture{
		t:        t,
		db:       db,
		teams:    teams,
		students: students,
		apps:     NewApplicationService(db, teams, students),
	}
}

func (f *fixture) createTrack(trackType models.TrackType, max, maxSecond int) *models.Track {
	f.t.Helper()
	f.seq++
	track := &models.Track{
		Name:                      fmt.Sprintf("Track %d", f.seq),
		Type:                      trackType,
		StartDate:                 time.Now().AddDate(0, -1, 0),
		EndDate:                   time.Now().AddDate(0, 1, 0),
		MinConstraint:             2,
		MaxConstraint:             max,
		MaxSecondCourseConstraint: maxSecond,
	}
	require.NoError(f.t, f.db.Create(track).Error)
	return track
}

func (f *fixture) closedTrack(trackType models.TrackType) *models.Track {
	f.t.Helper()
	f.seq++
	track := &models.Track{
		Name:          fmt.Sprintf("Closed track %d", f.seq),
		Type:          trackType,
		StartDate:     time.Now().AddDate(0, -2, 0),
		EndDate:       time.Now().AddDate(0, -1, 0),
		MinConstraint: 2,
		MaxConstraint: 5,
	}
	require.NoError(f.t, f.db.Create(track).Error)
	return track
}

func (f *fixture) createStudent(course int) *models.Student {
	f.t.Helper()
	f.seq++
	user := &models.User{
		Email:        fmt.Sprintf("student%d@example.com", f.seq),
		PasswordHash: "x",
		DisplayName:  fmt.Sprintf("Student %d", f.seq),
		IsEnabled:    true,
	}
	require.NoError(f.t, f.db.Create(user).Error)

	student := &models.Student{
		UserID: user.ID,
		Course: course,
	}
	require.NoError(f.t, f.db.Create(student).Error)
	student.User = user
	return student
}

func (f *fixture) createAdmin() *models.User {
	f.t.Helper()
	f.seq++
	user := &models.User{
		Email:        fmt.Sprintf("admin%d@example.com", f.seq),
		PasswordHash: "x",
		IsAdmin:      true,
		IsEnabled:    true,
	}
	require.NoError(f.t, f.db.Create(user).Error)
	return user
}

// createTeam builds a team through the service so the captain's membership and
// projections are real.
func (f *fixture) createTeam(track *models.Track, captain *models.Student) *models.Team {
	f.t.Helper()
	f.seq++
	team, err := f.teams.CreateTeam(fmt.Sprintf("Team %d", f.seq), "", "", track.ID, captain.ID, nil)
	require.NoError(f.t, err)
	return team
}

// reload fetches the current database state of a student.
func (f *fixture) reloadStudent(id uint) *models.Student {
	f.t.Helper()
	var student models.Student
	require.NoError(f.t, f.db.First(&student, id).Error)
	return &student
}

func (f *fixture) reloadTeam(id uint) *models.Team {
	f.t.Helper()
	team, err := f.teams.FindByID(id)
	require.NoError(f.t, err)
	return team
}

func (f *fixture) reloadApp(id uint) *models.Application {
	f.t.Helper()
	var app models.Application
	require.NoError(f.t, f.db.First(&app, id).Error)
	return &app
}
