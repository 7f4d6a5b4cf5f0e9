package controllers

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"examportal/backend/config"
	"examportal/backend/models"
	"examportal/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// trailing window for the study-time aggregates on the dashboard
const studyWindowDays = 7

type SessionsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewSessionsController(db *gorm.DB, cfg *config.Config) *SessionsController {
	return &SessionsController{DB: db, Cfg: cfg}
}

// sessionDuration is the only place a duration comes from: whole minutes,
// floored. Callers must have rejected end < start already.
func sessionDuration(start, end time.Time) int {
	return int(end.Sub(start).Seconds()) / 60
}

// StartSession godoc
// @Summary Start a study session
// @Description Opens a new timed study session for a subject
// @Tags sessions
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /study-sessions [post]
func (sc *SessionsController) StartSession(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input struct {
		SubjectID uint `json:"subject_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var subject models.Subject
	if err := sc.DB.First(&subject, input.SubjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Subject not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	session := models.StudySession{
		UserID:    userID,
		SubjectID: subject.ID,
		StartTime: time.Now().UTC(),
	}
	if err := sc.DB.Create(&session).Error; err != nil {
		return utils.InternalServerError(c, "Could not create session")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"session_id": session.ID,
		"start_time": session.StartTime,
	})
}

// EndSession godoc
// @Summary End a study session
// @Description Closes an open session and derives its duration in whole minutes
// @Tags sessions
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /study-sessions/{id}/end [post]
func (sc *SessionsController) EndSession(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	sessionID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid session ID")
	}

	// Missing sessions and sessions owned by someone else get the same
	// answer so callers cannot probe other users' session ids.
	var session models.StudySession
	if err := sc.DB.Where("id = ? AND user_id = ?", sessionID, userID).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotAvailable(c)
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	// An ended session is no longer available for ending, same as a
	// missing one.
	if session.EndTime != nil {
		return utils.NotAvailable(c)
	}

	now := time.Now().UTC()
	if now.Before(session.StartTime) {
		// Clock skew or misuse; reject rather than clamp, nothing written.
		return utils.BadRequest(c, "Session end precedes start")
	}

	session.EndTime = &now
	session.DurationMinutes = sessionDuration(session.StartTime, now)
	if err := sc.DB.Save(&session).Error; err != nil {
		return utils.InternalServerError(c, "Could not save session")
	}

	var subject models.Subject
	if err := sc.DB.First(&subject, session.SubjectID).Error; err == nil {
		utils.LogActivity(sc.DB, userID, "study_session",
			fmt.Sprintf("Studied %s for %d minutes", subject.Name, session.DurationMinutes))
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"session_id":       session.ID,
		"duration_minutes": session.DurationMinutes,
	})
}

// GetSessions godoc
// @Summary List recent study sessions
// @Description Returns the user's sessions inside the trailing study window
// @Tags sessions
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /study-sessions [get]
func (sc *SessionsController) GetSessions(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	windowStart := time.Now().UTC().AddDate(0, 0, -studyWindowDays)

	var sessions []models.StudySession
	if err := sc.DB.Where("user_id = ? AND start_time >= ?", userID, windowStart).
		Order("start_time DESC").
		Find(&sessions).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	total, average := studyWindowStats(sessions)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"sessions":            sessions,
		"total_study_minutes": total,
		"average_daily_study": average,
	})
}

// studyWindowStats sums completed-session minutes and averages them over the
// window days, not over the session count. No sessions means 0 and 0.
func studyWindowStats(sessions []models.StudySession) (total int, averageDaily float64) {
	for _, session := range sessions {
		total += session.DurationMinutes
	}
	return total, float64(total) / float64(studyWindowDays)
}
