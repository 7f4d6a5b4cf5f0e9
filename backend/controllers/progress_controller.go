package controllers

import (
	"errors"
	"fmt"
	"strconv"

	"examportal/backend/config"
	"examportal/backend/models"
	"examportal/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProgressController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewProgressController(db *gorm.DB, cfg *config.Config) *ProgressController {
	return &ProgressController{DB: db, Cfg: cfg}
}

// completionPercentage returns floor(100*completed/total) clamped to
// [0, 100]. A zero total is defined as 0%, never an error. The clamp matters
// when completed notes were archived afterwards: they stay in the membership
// set but must not push the percentage past 100.
func completionPercentage(completedActive, total int64) int {
	if total <= 0 {
		return 0
	}
	pct := int(completedActive * 100 / total)
	if pct > 100 {
		pct = 100
	}
	return pct
}

// recomputeProgress refreshes the derived fields from the store. Both counts
// are queried fresh on every call because notes can be added or archived
// between completions; nothing is cached across requests.
func (pc *ProgressController) recomputeProgress(progress *models.SubjectProgress) error {
	var total int64
	if err := pc.DB.Model(&models.Note{}).
		Where("subject_id = ? AND is_active = ?", progress.SubjectID, true).
		Count(&total).Error; err != nil {
		return err
	}

	var completedActive int64
	if err := pc.DB.Model(&models.NoteCompletion{}).
		Joins("JOIN notes ON notes.id = note_completions.note_id").
		Where("note_completions.user_id = ? AND note_completions.subject_id = ? AND notes.is_active = ?",
			progress.UserID, progress.SubjectID, true).
		Count(&completedActive).Error; err != nil {
		return err
	}

	progress.TotalNotes = int(total)
	progress.ProgressPercentage = completionPercentage(completedActive, total)
	return pc.DB.Save(progress).Error
}

// getOrCreateProgress returns the single progress row for (user, subject).
// A concurrent insert loses against the composite unique index and refetches,
// so two simultaneous calls can never produce two rows.
func (pc *ProgressController) getOrCreateProgress(userID, subjectID uint) (*models.SubjectProgress, error) {
	var progress models.SubjectProgress
	err := pc.DB.Where("user_id = ? AND subject_id = ?", userID, subjectID).First(&progress).Error
	if err == nil {
		return &progress, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	progress = models.SubjectProgress{UserID: userID, SubjectID: subjectID}
	err = pc.DB.Create(&progress).Error
	if err == nil {
		return &progress, nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost the race; the other request created the row.
		err = pc.DB.Where("user_id = ? AND subject_id = ?", userID, subjectID).First(&progress).Error
		if err == nil {
			return &progress, nil
		}
	}
	return nil, err
}

// MarkNoteCompleted godoc
// @Summary Mark a note as completed
// @Description Adds the note to the user's completed set and recomputes subject progress
// @Tags progress
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress/notes/{id}/complete [post]
func (pc *ProgressController) MarkNoteCompleted(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	noteID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid note ID")
	}

	var note models.Note
	if err := pc.DB.First(&note, noteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Note not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	progress, err := pc.getOrCreateProgress(userID, note.SubjectID)
	if err != nil {
		return utils.InternalServerError(c, "Could not load progress record")
	}

	completion := models.NoteCompletion{
		UserID:    userID,
		NoteID:    note.ID,
		SubjectID: note.SubjectID,
	}
	newCompletion := true
	if err := pc.DB.Create(&completion).Error; err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.InternalServerError(c, "Could not save completion")
		}
		// Already completed; membership is a set so the second mark has no
		// duplicate effect. Still fall through to the recompute so the
		// response reflects notes archived since the last call.
		newCompletion = false
	}

	if err := pc.recomputeProgress(progress); err != nil {
		return utils.InternalServerError(c, "Could not update progress")
	}

	if newCompletion {
		utils.LogActivity(pc.DB, userID, "note_completed", fmt.Sprintf("Completed note: %s", note.Title))
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"progress_percentage": progress.ProgressPercentage,
		"total_notes":         progress.TotalNotes,
	})
}

// GetProgress godoc
// @Summary Get subject progress
// @Description Returns the user's progress rows across all subjects
// @Tags progress
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress [get]
func (pc *ProgressController) GetProgress(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var progresses []models.SubjectProgress
	if err := pc.DB.Where("user_id = ?", userID).Find(&progresses).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]fiber.Map, 0, len(progresses))
	for _, progress := range progresses {
		var subject models.Subject
		if err := pc.DB.First(&subject, progress.SubjectID).Error; err != nil {
			continue
		}

		result = append(result, fiber.Map{
			"subject_id":          subject.ID,
			"subject_name":        subject.Name,
			"total_notes":         progress.TotalNotes,
			"progress_percentage": progress.ProgressPercentage,
			"last_updated":        progress.UpdatedAt,
		})
	}

	return utils.Success(c, fiber.StatusOK, result)
}
