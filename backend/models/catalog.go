package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type ExamCategory struct {
	gorm.Model
	Name        string `gorm:"not null"`
	Slug        string `gorm:"unique"`
	Description string
	Icon        string `gorm:"default:fas fa-book"`
	Subjects    []Subject
}

// BeforeCreate fills Slug from Name when it was not provided.
func (ec *ExamCategory) BeforeCreate(tx *gorm.DB) error {
	if ec.Slug == "" {
		ec.Slug = Slugify(ec.Name)
	}
	return nil
}

func Slugify(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

type Subject struct {
	gorm.Model
	ExamCategoryID uint   `gorm:"not null"`
	Name           string `gorm:"not null"`
	Description    string
	SortOrder      int `gorm:"default:0"`
	Notes          []Note
}

// Note is a study item attached to a subject. Archiving flips IsActive
// instead of deleting the row; inactive notes are excluded from every
// listing and progress count.
type Note struct {
	gorm.Model
	SubjectID uint   `gorm:"not null;index"`
	Title     string `gorm:"not null"`
	Content   string
	FileURL   string
	IsActive  bool `gorm:"default:true"`
}

type UpcomingExam struct {
	gorm.Model
	ExamCategoryID   uint   `gorm:"not null"`
	Title            string `gorm:"not null"`
	Description      string
	ApplicationStart time.Time
	ApplicationEnd   time.Time
	ExamDate         *time.Time
	ApplyLink        string
	IsActive         bool `gorm:"default:true"`
}

func (e UpcomingExam) IsOpenForApplication(now time.Time) bool {
	today := now.Truncate(24 * time.Hour)
	return !today.Before(e.ApplicationStart) && !today.After(e.ApplicationEnd)
}

type Announcement struct {
	gorm.Model
	Title            string `gorm:"not null"`
	Content          string
	AnnouncementType string `gorm:"default:general"` // new, update, important, general
	IsActive         bool   `gorm:"default:true"`
}

type AdmitCard struct {
	gorm.Model
	ExamID       uint   `gorm:"not null"`
	Exam         UpcomingExam
	Title        string `gorm:"not null"`
	DownloadLink string
	ReleaseDate  time.Time
	IsActive     bool `gorm:"default:true"`
}

type ExamResult struct {
	gorm.Model
	ExamID     uint `gorm:"not null"`
	Exam       UpcomingExam
	Title      string `gorm:"not null"`
	ResultLink string
	ResultDate time.Time
	IsActive   bool `gorm:"default:true"`
}

type AnswerKey struct {
	gorm.Model
	ExamID       uint `gorm:"not null"`
	Exam         UpcomingExam
	Title        string `gorm:"not null"`
	ExamType     string `gorm:"default:prelims"` // prelims, mains, both
	FileURL      string
	ExternalLink string
	ReleaseDate  time.Time
	IsActive     bool `gorm:"default:true"`
}

// DownloadURL prefers the uploaded file over the external link.
func (k AnswerKey) DownloadURL() string {
	if k.FileURL != "" {
		return k.FileURL
	}
	return k.ExternalLink
}

type Contact struct {
	gorm.Model
	Name    string `gorm:"not null"`
	Email   string `gorm:"not null"`
	Subject string
	Message string
}
