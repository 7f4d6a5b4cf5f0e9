package controllers

import (
	"errors"
	"strconv"
	"time"

	"examportal/backend/config"
	"examportal/backend/models"
	"examportal/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CatalogController serves the read-only reference data: categories,
// subjects, notes, upcoming exams, announcements, admit cards, results and
// answer keys. Nothing here is ever mutated by the tracking endpoints.
type CatalogController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCatalogController(db *gorm.DB, cfg *config.Config) *CatalogController {
	return &CatalogController{DB: db, Cfg: cfg}
}

// GetHome godoc
// @Summary Landing page data
// @Description Returns categories plus the freshest exams, announcements, admit cards and results
// @Tags catalog
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /home [get]
func (cc *CatalogController) GetHome(c *fiber.Ctx) error {
	var categories []models.ExamCategory
	cc.DB.Find(&categories)

	var exams []models.UpcomingExam
	cc.DB.Where("is_active = ?", true).Order("exam_date ASC NULLS LAST").Limit(5).Find(&exams)

	var announcements []models.Announcement
	cc.DB.Where("is_active = ?", true).Order("created_at DESC").Limit(5).Find(&announcements)

	var admitCards []models.AdmitCard
	cc.DB.Where("is_active = ?", true).Order("release_date DESC").Limit(3).Find(&admitCards)

	var results []models.ExamResult
	cc.DB.Where("is_active = ?", true).Order("result_date DESC").Limit(3).Find(&results)

	return c.JSON(fiber.Map{
		"exam_categories": categories,
		"upcoming_exams":  exams,
		"announcements":   announcements,
		"admit_cards":     admitCards,
		"results":         results,
	})
}

func (cc *CatalogController) GetCategories(c *fiber.Ctx) error {
	var categories []models.ExamCategory
	if err := cc.DB.Find(&categories).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(categories)
}

// GetSubjectsByCategory godoc
// @Summary List subjects in a category
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Router /categories/{slug}/subjects [get]
func (cc *CatalogController) GetSubjectsByCategory(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var category models.ExamCategory
	if err := cc.DB.Where("slug = ?", slug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Category not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var subjects []models.Subject
	if err := cc.DB.Where("exam_category_id = ?", category.ID).
		Order("sort_order ASC").
		Find(&subjects).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(fiber.Map{
		"category": category,
		"subjects": subjects,
	})
}

// GetNotesBySubject godoc
// @Summary List active notes for a subject
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Router /subjects/{id}/notes [get]
func (cc *CatalogController) GetNotesBySubject(c *fiber.Ctx) error {
	subjectID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid subject ID")
	}

	var subject models.Subject
	if err := cc.DB.First(&subject, subjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Subject not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	// Archived notes stay in the table but never reach a listing.
	var notes []models.Note
	if err := cc.DB.Where("subject_id = ? AND is_active = ?", subjectID, true).
		Order("created_at DESC").
		Find(&notes).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(fiber.Map{
		"subject": subject,
		"notes":   notes,
	})
}

func (cc *CatalogController) GetUpcomingExams(c *fiber.Ctx) error {
	var exams []models.UpcomingExam
	if err := cc.DB.Where("is_active = ?", true).
		Order("exam_date ASC NULLS LAST").
		Find(&exams).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	now := time.Now().UTC()
	result := make([]fiber.Map, 0, len(exams))
	for _, exam := range exams {
		result = append(result, fiber.Map{
			"id":                  exam.ID,
			"title":               exam.Title,
			"description":         exam.Description,
			"exam_category_id":    exam.ExamCategoryID,
			"application_start":   exam.ApplicationStart,
			"application_end":     exam.ApplicationEnd,
			"exam_date":           exam.ExamDate,
			"apply_link":          exam.ApplyLink,
			"open_for_application": exam.IsOpenForApplication(now),
		})
	}
	return c.JSON(result)
}

func (cc *CatalogController) GetAnnouncements(c *fiber.Ctx) error {
	var announcements []models.Announcement
	if err := cc.DB.Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&announcements).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(announcements)
}

func (cc *CatalogController) GetAdmitCards(c *fiber.Ctx) error {
	var admitCards []models.AdmitCard
	if err := cc.DB.Preload("Exam").
		Where("is_active = ?", true).
		Order("release_date DESC").
		Find(&admitCards).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(admitCards)
}

func (cc *CatalogController) GetResults(c *fiber.Ctx) error {
	var results []models.ExamResult
	if err := cc.DB.Preload("Exam").
		Where("is_active = ?", true).
		Order("result_date DESC").
		Find(&results).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(results)
}

// GetAnswerKeys godoc
// @Summary List active answer keys
// @Description Optionally filtered by exam category slug; download URL prefers the uploaded file
// @Tags catalog
// @Produce json
// @Param category query string false "Category slug"
// @Success 200 {object} map[string]interface{}
// @Router /answer-keys [get]
func (cc *CatalogController) GetAnswerKeys(c *fiber.Ctx) error {
	query := cc.DB.Preload("Exam").
		Where("answer_keys.is_active = ?", true).
		Order("release_date DESC")

	categorySlug := c.Query("category")
	if categorySlug != "" {
		query = query.
			Joins("JOIN upcoming_exams ON upcoming_exams.id = answer_keys.exam_id").
			Joins("JOIN exam_categories ON exam_categories.id = upcoming_exams.exam_category_id").
			Where("exam_categories.slug = ?", categorySlug)
	}

	var keys []models.AnswerKey
	if err := query.Find(&keys).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]fiber.Map, 0, len(keys))
	for _, key := range keys {
		result = append(result, fiber.Map{
			"id":           key.ID,
			"exam_id":      key.ExamID,
			"exam_title":   key.Exam.Title,
			"title":        key.Title,
			"exam_type":    key.ExamType,
			"download_url": key.DownloadURL(),
			"release_date": key.ReleaseDate,
		})
	}

	return c.JSON(fiber.Map{
		"answer_keys": result,
		"selected_category": categorySlug,
	})
}
