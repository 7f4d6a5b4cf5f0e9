package controllers

import (
	"time"

	"examportal/backend/config"
	"examportal/backend/models"
	"examportal/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DashboardController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewDashboardController(db *gorm.DB, cfg *config.Config) *DashboardController {
	return &DashboardController{DB: db, Cfg: cfg}
}

// GetDashboard godoc
// @Summary User dashboard
// @Description Aggregates progress, trailing-window study stats, targets, recent activity and recommendations
// @Tags dashboard
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /dashboard [get]
func (dc *DashboardController) GetDashboard(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, dc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var user models.User
	if err := dc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	var totalLogins int64
	dc.DB.Model(&models.UserActivity{}).
		Where("user_id = ? AND activity_type = ?", userID, "login").
		Count(&totalLogins)

	var totalDownloads int64
	dc.DB.Model(&models.UserActivity{}).
		Where("user_id = ? AND activity_type = ?", userID, "download").
		Count(&totalDownloads)

	var progresses []models.SubjectProgress
	dc.DB.Where("user_id = ?", userID).Find(&progresses)

	var completedSubjects int64
	dc.DB.Model(&models.SubjectProgress{}).
		Where("user_id = ? AND progress_percentage = 100", userID).
		Count(&completedSubjects)

	// Study minutes over the trailing window. Open sessions carry a zero
	// duration so summing the column is safe.
	windowStart := time.Now().UTC().AddDate(0, 0, -studyWindowDays)
	var sessions []models.StudySession
	dc.DB.Where("user_id = ? AND start_time >= ?", userID, windowStart).Find(&sessions)
	totalStudyMinutes, averageDailyStudy := studyWindowStats(sessions)

	var targets []models.ExamTarget
	dc.DB.Where("user_id = ?", userID).Find(&targets)

	var recentActivities []models.UserActivity
	dc.DB.Where("user_id = ?", userID).Order("created_at DESC").Limit(5).Find(&recentActivities)

	recommendedExams := dc.recommendedExams(&user)

	return c.JSON(fiber.Map{
		"user": fiber.Map{
			"id":             user.ID,
			"username":       user.Username,
			"exam_interests": user.ExamInterests,
		},
		"total_logins":        totalLogins,
		"total_downloads":     totalDownloads,
		"subject_progress":    progresses,
		"total_subjects":      len(progresses),
		"completed_subjects":  completedSubjects,
		"total_study_minutes": totalStudyMinutes,
		"average_daily_study": averageDailyStudy,
		"exam_targets":        targets,
		"recent_activities":   recentActivities,
		"recommended_exams":   recommendedExams,
	})
}

// recommendedExams picks up to three active exams matching the user's exam
// interest; users interested in everything just get the next active exams.
func (dc *DashboardController) recommendedExams(user *models.User) []models.UpcomingExam {
	var exams []models.UpcomingExam

	query := dc.DB.Model(&models.UpcomingExam{}).Where("upcoming_exams.is_active = ?", true)
	if user.ExamInterests != "" && user.ExamInterests != "multiple" {
		query = query.
			Joins("JOIN exam_categories ON exam_categories.id = upcoming_exams.exam_category_id").
			Where("exam_categories.name ILIKE ?", "%"+user.ExamInterests+"%")
	}
	query.Order("exam_date ASC NULLS LAST").Limit(3).Find(&exams)

	return exams
}
