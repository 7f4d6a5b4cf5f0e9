package controllers

import (
	"testing"
	"time"

	"examportal/backend/models"

	"github.com/stretchr/testify/assert"
)

func TestCompletionPercentage(t *testing.T) {
	cases := []struct {
		name      string
		completed int64
		total     int64
		want      int
	}{
		{"zero total", 0, 0, 0},
		{"zero total with completions", 3, 0, 0},
		{"half", 2, 4, 50},
		{"floors", 1, 3, 33},
		{"full", 4, 4, 100},
		{"capped when completions exceed active", 5, 4, 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, completionPercentage(tc.completed, tc.total))
		})
	}
}

func TestSessionDuration(t *testing.T) {
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, sessionDuration(start, start))
	assert.Equal(t, 0, sessionDuration(start, start.Add(59*time.Second)))
	assert.Equal(t, 2, sessionDuration(start, start.Add(125*time.Second)))
	assert.Equal(t, 60, sessionDuration(start, start.Add(time.Hour)))
}

func TestStudyWindowStats(t *testing.T) {
	total, average := studyWindowStats(nil)
	assert.Equal(t, 0, total)
	assert.Equal(t, 0.0, average)

	end := time.Now().UTC()
	sessions := []models.StudySession{
		{DurationMinutes: 30, EndTime: &end},
		{DurationMinutes: 40, EndTime: &end},
		{DurationMinutes: 0}, // still open, counts as zero
	}
	total, average = studyWindowStats(sessions)
	assert.Equal(t, 70, total)
	assert.Equal(t, 10.0, average) // divided by window days, not session count
}
