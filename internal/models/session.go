package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FocusSession is a single focus-timer run stored in MongoDB.
type FocusSession struct {
	ID             primitive.ObjectID `json:"id"             bson:"_id,omitempty"`
	UserID         string             `json:"userId"         bson:"user_id"`
	Mode           string             `json:"mode"           bson:"mode"`
	PlannedMinutes int                `json:"plannedMinutes" bson:"planned_minutes"`
	ActualMinutes  int                `json:"actualMinutes"  bson:"actual_minutes"`
	Completed      bool               `json:"completed"      bson:"completed"`
	Interrupted    bool               `json:"interrupted"    bson:"interrupted"`
	StartedAt      time.Time          `json:"startedAt"      bson:"started_at"`
	EndedAt        *time.Time         `json:"endedAt,omitempty" bson:"ended_at,omitempty"`
}

// StartSessionRequest is the JSON body for POST /sessions.
type StartSessionRequest struct {
	Mode           string `json:"mode"`
	PlannedMinutes int    `json:"plannedMinutes"`
}

// CompleteSessionRequest is the JSON body for PUT /sessions/{id}/complete.
type CompleteSessionRequest struct {
	ActualMinutes int  `json:"actualMinutes"`
	Interrupted   bool `json:"interrupted"`
}

// SessionStats aggregates a user's focus history for analytics scoring.
type SessionStats struct {
	TotalFocusMinutes   int `json:"totalFocusMinutes"`
	TotalSessions       int `json:"totalSessions"`
	CompletedTasks      int `json:"completedTasks"`
	InterruptedSessions int `json:"interruptedSessions"`
}
