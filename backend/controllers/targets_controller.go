package controllers

import (
	"errors"
	"time"

	"examportal/backend/config"
	"examportal/backend/models"
	"examportal/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const defaultDailyStudyGoal = 120 // minutes

type TargetsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewTargetsController(db *gorm.DB, cfg *config.Config) *TargetsController {
	return &TargetsController{DB: db, Cfg: cfg}
}

type SetTargetRequest struct {
	ExamID           uint   `json:"exam_id" validate:"required"`
	TargetDate       string `json:"target_date" validate:"required"`
	DailyGoalMinutes int    `json:"daily_goal_minutes"`
}

// SetTarget godoc
// @Summary Set an exam target
// @Description Upserts the user's target date and daily study goal for an exam
// @Tags targets
// @Accept json
// @Produce json
// @Param input body SetTargetRequest true "Target data"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /exam-targets [put]
func (tc *TargetsController) SetTarget(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, tc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input SetTargetRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	targetDate, err := time.Parse("2006-01-02", input.TargetDate)
	if err != nil {
		return utils.ValidationError(c, map[string]string{"target_date": "Must be a date in YYYY-MM-DD format"})
	}

	// Missing or non-positive goal falls back to the default instead of
	// failing the request.
	goal := input.DailyGoalMinutes
	if goal <= 0 {
		goal = defaultDailyStudyGoal
	}

	var exam models.UpcomingExam
	if err := tc.DB.First(&exam, input.ExamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Exam not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	// Insert-if-absent-else-update against the (user_id, exam_id) unique
	// index. The duplicate-key branch keeps concurrent upserts from ever
	// leaving two rows behind.
	target := models.ExamTarget{
		UserID:         userID,
		ExamID:         exam.ID,
		TargetDate:     targetDate,
		DailyStudyGoal: goal,
	}
	created := true
	if err := tc.DB.Create(&target).Error; err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.InternalServerError(c, "Could not save target")
		}
		created = false
		if err := tc.DB.Where("user_id = ? AND exam_id = ?", userID, exam.ID).First(&target).Error; err != nil {
			return utils.InternalServerError(c, "Could not load target")
		}
		target.TargetDate = targetDate
		target.DailyStudyGoal = goal
		if err := tc.DB.Save(&target).Error; err != nil {
			return utils.InternalServerError(c, "Could not save target")
		}
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"created": created,
		"target": fiber.Map{
			"id":               target.ID,
			"exam_id":          target.ExamID,
			"target_date":      target.TargetDate.Format("2006-01-02"),
			"daily_study_goal": target.DailyStudyGoal,
		},
	})
}

// GetTargets godoc
// @Summary List exam targets
// @Description Returns the user's exam targets with exam titles
// @Tags targets
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /exam-targets [get]
func (tc *TargetsController) GetTargets(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, tc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var targets []models.ExamTarget
	if err := tc.DB.Where("user_id = ?", userID).Find(&targets).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]fiber.Map, 0, len(targets))
	for _, target := range targets {
		var exam models.UpcomingExam
		if err := tc.DB.First(&exam, target.ExamID).Error; err != nil {
			continue
		}

		result = append(result, fiber.Map{
			"id":               target.ID,
			"exam_id":          exam.ID,
			"exam_title":       exam.Title,
			"target_date":      target.TargetDate.Format("2006-01-02"),
			"daily_study_goal": target.DailyStudyGoal,
		})
	}

	return utils.Success(c, fiber.StatusOK, result)
}
