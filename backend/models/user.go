package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Username     string `gorm:"unique;not null"`
	Email        string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null"`
	Phone        string
	ExamInterests string `gorm:"default:multiple"` // ssc, banking, teaching, upsc, railway, defense, multiple
}

// UserActivity is an append-only audit trail. Writes go through
// utils.LogActivity and are never allowed to fail a primary operation.
type UserActivity struct {
	gorm.Model
	EventID      string `gorm:"unique;not null"`
	UserID       uint   `gorm:"not null;index"`
	ActivityType string `gorm:"not null"` // login, registration, note_completed, study_session, download
	Description  string
}
