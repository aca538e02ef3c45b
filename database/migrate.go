// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"teamselect/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Track{},
		&models.Technology{},
		&models.Team{},
		&models.Student{},
		&models.Application{},
		&models.TeamHistory{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	createIndexes()

	log.Println("Migrations completed")
}

// createIndexes creates indexes AutoMigrate does not cover
func createIndexes() {
	db := GetDB()

	db.Exec("CREATE INDEX IF NOT EXISTS idx_students_current_team ON students(current_team_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_applications_team_status ON applications(team_id, status)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_applications_student_status ON applications(student_id, status)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_teams_track ON teams(current_track_id)")
}
