package models

import (
	"time"

	"gorm.io/gorm"
)

// SubjectProgress holds one row per (user, subject). The composite unique
// index is what makes the lazy get-or-create in the progress controller safe
// under concurrent requests: a losing insert gets a duplicate-key error and
// refetches instead of creating a second row.
type SubjectProgress struct {
	gorm.Model
	UserID             uint `gorm:"not null;uniqueIndex:idx_subject_progress_user_subject"`
	SubjectID          uint `gorm:"not null;uniqueIndex:idx_subject_progress_user_subject"`
	TotalNotes         int  `gorm:"default:0"`
	ProgressPercentage int  `gorm:"default:0"`
}

// NoteCompletion is the membership set of completed notes. Marking a note
// twice hits the unique index and is a no-op. Percentages are recomputed
// from this table by query, never from a cached count.
type NoteCompletion struct {
	gorm.Model
	UserID    uint `gorm:"not null;uniqueIndex:idx_note_completions_user_note"`
	NoteID    uint `gorm:"not null;uniqueIndex:idx_note_completions_user_note"`
	SubjectID uint `gorm:"not null;index"`
}

// StudySession records one timed study interval. DurationMinutes is derived
// from StartTime/EndTime whenever EndTime is set and stays 0 while the
// session is open; it is never accepted from the client.
type StudySession struct {
	gorm.Model
	UserID          uint `gorm:"not null;index"`
	SubjectID       uint `gorm:"not null"`
	StartTime       time.Time `gorm:"not null"`
	EndTime         *time.Time
	DurationMinutes int `gorm:"default:0"`
}

// ExamTarget holds at most one row per (user, exam); SetTarget upserts
// against the unique index.
type ExamTarget struct {
	gorm.Model
	UserID         uint `gorm:"not null;uniqueIndex:idx_exam_targets_user_exam"`
	ExamID         uint `gorm:"not null;uniqueIndex:idx_exam_targets_user_exam"`
	TargetDate     time.Time
	DailyStudyGoal int `gorm:"default:120"` // minutes
}
