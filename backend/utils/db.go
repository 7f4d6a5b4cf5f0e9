package utils

import (
	"fmt"

	"examportal/backend/config"
	"examportal/backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB opens the Postgres connection. TranslateError is on so unique
// constraint violations surface as gorm.ErrDuplicatedKey, which the upsert
// and get-or-create paths rely on.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserActivity{},
		&models.ExamCategory{},
		&models.Subject{},
		&models.Note{},
		&models.UpcomingExam{},
		&models.Announcement{},
		&models.AdmitCard{},
		&models.ExamResult{},
		&models.AnswerKey{},
		&models.Contact{},
		&models.SubjectProgress{},
		&models.NoteCompletion{},
		&models.StudySession{},
		&models.ExamTarget{},
	)
}
