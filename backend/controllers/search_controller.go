package controllers

import (
	"strings"

	"examportal/backend/config"
	"examportal/backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const searchBucketLimit = 10

type SearchController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewSearchController(db *gorm.DB, cfg *config.Config) *SearchController {
	return &SearchController{DB: db, Cfg: cfg}
}

// Search godoc
// @Summary Search the portal
// @Description Case-insensitive substring search across notes, exams, announcements, answer keys, admit cards and results
// @Tags search
// @Produce json
// @Param q query string true "Search term"
// @Success 200 {object} map[string]interface{}
// @Router /search [get]
func (sc *SearchController) Search(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))

	var notes []models.Note
	var exams []models.UpcomingExam
	var announcements []models.Announcement
	var answerKeys []models.AnswerKey
	var admitCards []models.AdmitCard
	var results []models.ExamResult

	if query != "" {
		pattern := "%" + query + "%"

		sc.DB.Joins("JOIN subjects ON subjects.id = notes.subject_id").
			Where("notes.is_active = ?", true).
			Where("notes.title ILIKE ? OR notes.content ILIKE ? OR subjects.name ILIKE ?",
				pattern, pattern, pattern).
			Limit(searchBucketLimit).
			Find(&notes)

		sc.DB.Where("is_active = ?", true).
			Where("title ILIKE ? OR description ILIKE ?", pattern, pattern).
			Limit(searchBucketLimit).
			Find(&exams)

		sc.DB.Where("is_active = ?", true).
			Where("title ILIKE ? OR content ILIKE ?", pattern, pattern).
			Limit(searchBucketLimit).
			Find(&announcements)

		sc.DB.Joins("JOIN upcoming_exams ON upcoming_exams.id = answer_keys.exam_id").
			Where("answer_keys.is_active = ?", true).
			Where("answer_keys.title ILIKE ? OR upcoming_exams.title ILIKE ?", pattern, pattern).
			Limit(searchBucketLimit).
			Find(&answerKeys)

		sc.DB.Joins("JOIN upcoming_exams ON upcoming_exams.id = admit_cards.exam_id").
			Where("admit_cards.is_active = ?", true).
			Where("admit_cards.title ILIKE ? OR upcoming_exams.title ILIKE ?", pattern, pattern).
			Limit(searchBucketLimit).
			Find(&admitCards)

		sc.DB.Joins("JOIN upcoming_exams ON upcoming_exams.id = exam_results.exam_id").
			Where("exam_results.is_active = ?", true).
			Where("exam_results.title ILIKE ? OR upcoming_exams.title ILIKE ?", pattern, pattern).
			Limit(searchBucketLimit).
			Find(&results)
	}

	total := len(notes) + len(exams) + len(announcements) + len(answerKeys) + len(admitCards) + len(results)

	return c.JSON(fiber.Map{
		"query": query,
		"results": fiber.Map{
			"notes":         notes,
			"exams":         exams,
			"announcements": announcements,
			"answer_keys":   answerKeys,
			"admit_cards":   admitCards,
			"results":       results,
		},
		"total_results": total,
		"has_results":   total > 0,
	})
}
