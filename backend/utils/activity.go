package utils

import (
	"log"

	"examportal/backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LogActivity appends an audit event for the user. It is fire-and-forget: a
// failed write is logged and swallowed so it can never roll back or fail the
// operation that produced it.
func LogActivity(db *gorm.DB, userID uint, activityType, description string) {
	activity := models.UserActivity{
		EventID:      uuid.NewString(),
		UserID:       userID,
		ActivityType: activityType,
		Description:  description,
	}
	if err := db.Create(&activity).Error; err != nil {
		log.Printf("activity log write failed (user=%d type=%s): %v", userID, activityType, err)
	}
}
