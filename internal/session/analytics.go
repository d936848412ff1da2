// Package session tracks focus-timer runs and derives analytics scores.
package session

import (
	"math"

	"github.com/focusflow/backend/internal/models"
)

// Scoring reference points: a full focus block and a full work day.
const (
	fullSessionMinutes = 45
	fullDayMinutes     = 480
	tasksPerHourTarget = 2.0
)

func clampScore(v float64) int {
	return int(math.Round(math.Min(100, math.Max(0, v))))
}

// FocusScore rates how sustained the user's sessions were, 0..100.
func FocusScore(stats models.SessionStats) int {
	if stats.TotalSessions == 0 {
		return 0
	}
	uninterrupted := 1 - float64(stats.InterruptedSessions)/float64(stats.TotalSessions)
	avgMinutes := float64(stats.TotalFocusMinutes) / float64(stats.TotalSessions)
	length := math.Min(avgMinutes/fullSessionMinutes, 1)
	return clampScore(100 * (0.6*uninterrupted + 0.4*length))
}

// EfficiencyScore rates task throughput against focus time, 0..100.
func EfficiencyScore(stats models.SessionStats) int {
	if stats.TotalSessions == 0 {
		return 0
	}
	completion := 1 - float64(stats.InterruptedSessions)/float64(stats.TotalSessions)
	task := 0.0
	if stats.TotalFocusMinutes > 0 {
		perHour := float64(stats.CompletedTasks) / (float64(stats.TotalFocusMinutes) / 60)
		task = math.Min(perHour/tasksPerHourTarget, 1)
	}
	return clampScore(100 * (0.5*task + 0.5*completion))
}

// ProductivityScore blends focus, efficiency and total volume, 0..100.
func ProductivityScore(stats models.SessionStats) int {
	if stats.TotalSessions == 0 {
		return 0
	}
	volume := math.Min(float64(stats.TotalFocusMinutes)/fullDayMinutes, 1) * 100
	return clampScore(0.4*float64(FocusScore(stats)) +
		0.4*float64(EfficiencyScore(stats)) +
		0.2*volume)
}

// aggregate folds a session list into the stats used by the scorers.
func aggregate(sessions []models.FocusSession) models.SessionStats {
	var stats models.SessionStats
	for _, s := range sessions {
		stats.TotalSessions++
		stats.TotalFocusMinutes += s.ActualMinutes
		if s.Completed {
			stats.CompletedTasks++
		}
		if s.Interrupted {
			stats.InterruptedSessions++
		}
	}
	return stats
}
