package tests

import (
	"fmt"
	"testing"

	"examportal/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func seedNotes(t *testing.T, subjectID uint, count int) []models.Note {
	t.Helper()

	notes := make([]models.Note, count)
	for i := range notes {
		notes[i] = models.Note{
			SubjectID: subjectID,
			Title:     fmt.Sprintf("Note %d for subject %d", i+1, subjectID),
			Content:   "content",
			IsActive:  true,
		}
		if err := db.Create(&notes[i]).Error; err != nil {
			t.Fatalf("seed note: %v", err)
		}
	}
	return notes
}

func markCompleted(t *testing.T, token string, noteID uint) (int, map[string]interface{}) {
	t.Helper()
	resp, result := doRequest(t, "POST", fmt.Sprintf("/api/progress/notes/%d/complete", noteID), nil, token)
	return resp.StatusCode, result
}

func TestMarkCompletedPercentage(t *testing.T) {
	_, token := newUserToken(t, "progressuser")

	subject := models.Subject{ExamCategoryID: seedCategory.ID, Name: "Reasoning"}
	db.Create(&subject)
	notes := seedNotes(t, subject.ID, 4)

	// 2 of 4 active notes completed -> 50%
	status, result := markCompleted(t, token, notes[0].ID)
	assert.Equal(t, fiber.StatusOK, status)

	status, result = markCompleted(t, token, notes[1].ID)
	assert.Equal(t, fiber.StatusOK, status)
	data := result["data"].(map[string]interface{})
	assert.Equal(t, float64(50), data["progress_percentage"])
	assert.Equal(t, float64(4), data["total_notes"])

	// archive one of the completed notes; the next call recomputes against
	// the shrunken denominator: total=3, completed-active=1 -> 33
	db.Model(&notes[0]).Update("is_active", false)

	status, result = markCompleted(t, token, notes[1].ID)
	assert.Equal(t, fiber.StatusOK, status)
	data = result["data"].(map[string]interface{})
	assert.Equal(t, float64(33), data["progress_percentage"])
	assert.Equal(t, float64(3), data["total_notes"])
}

func TestMarkCompletedIdempotent(t *testing.T) {
	_, token := newUserToken(t, "idempotentuser")

	subject := models.Subject{ExamCategoryID: seedCategory.ID, Name: "English"}
	db.Create(&subject)
	notes := seedNotes(t, subject.ID, 2)

	status, first := markCompleted(t, token, notes[0].ID)
	assert.Equal(t, fiber.StatusOK, status)

	status, second := markCompleted(t, token, notes[0].ID)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, first["data"], second["data"])

	// membership is a set: still exactly one completion row
	var completions int64
	db.Model(&models.NoteCompletion{}).Where("note_id = ?", notes[0].ID).Count(&completions)
	assert.Equal(t, int64(1), completions)

	// and exactly one progress row for the (user, subject) pair
	var progressRows int64
	db.Model(&models.SubjectProgress{}).Where("subject_id = ?", subject.ID).Count(&progressRows)
	assert.Equal(t, int64(1), progressRows)
}

func TestMarkCompletedUnknownNote(t *testing.T) {
	status, _ := markCompleted(t, jwtToken, 9999999)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestMarkCompletedLogsActivity(t *testing.T) {
	userID, token := newUserToken(t, "audituser")

	subject := models.Subject{ExamCategoryID: seedCategory.ID, Name: "General Awareness"}
	db.Create(&subject)
	notes := seedNotes(t, subject.ID, 1)

	markCompleted(t, token, notes[0].ID)
	markCompleted(t, token, notes[0].ID) // repeat must not log twice

	var events int64
	db.Model(&models.UserActivity{}).
		Where("user_id = ? AND activity_type = ?", userID, "note_completed").
		Count(&events)
	assert.Equal(t, int64(1), events)
}

func TestGetProgress(t *testing.T) {
	_, token := newUserToken(t, "listuser")

	subject := models.Subject{ExamCategoryID: seedCategory.ID, Name: "Computer Knowledge"}
	db.Create(&subject)
	notes := seedNotes(t, subject.ID, 2)
	markCompleted(t, token, notes[0].ID)

	resp, result := doRequest(t, "GET", "/api/progress", nil, token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	rows := result["data"].([]interface{})
	assert.Len(t, rows, 1)
	row := rows[0].(map[string]interface{})
	assert.Equal(t, "Computer Knowledge", row["subject_name"])
	assert.Equal(t, float64(50), row["progress_percentage"])
}
