package http

import (
	"time"
)

// Error is the uniform error body of the API.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewDocument is the request body for document creation. Id is optional;
// when omitted the server generates one.
type NewDocument struct {
	ID       string `json:"id,omitempty"`
	IssuedBy string `json:"issuedBy"`
}

// Document is the status record of a bill of lading.
type Document struct {
	ID            string    `json:"id"`
	State         string    `json:"state"`
	Version       int64     `json:"version"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// TransitionRequest is the request body for a status transition.
type TransitionRequest struct {
	TargetState string         `json:"targetState"`
	Actor       string         `json:"actor"`
	ActorRoles  []string       `json:"actorRoles"`
	Payload     map[string]any `json:"payload,omitempty"`
}

// TransitionResult is the synchronous answer to an accepted transition.
type TransitionResult struct {
	DocumentID  string    `json:"documentId"`
	NewVersion  int64     `json:"newVersion"`
	CommittedAt time.Time `json:"committedAt"`
	JobID       string    `json:"jobId"`
}

// AvailableTransitions lists the target states an actor may request.
type AvailableTransitions struct {
	DocumentID   string   `json:"documentId"`
	CurrentState string   `json:"currentState"`
	Transitions  []string `json:"transitions"`
}

// Job is the lifecycle view of a commitment job.
type Job struct {
	ID              string     `json:"id"`
	DocumentID      string     `json:"documentId"`
	DocumentVersion int64      `json:"documentVersion"`
	JobType         string     `json:"jobType"`
	Priority        string     `json:"priority"`
	Status          string     `json:"status"`
	RetryCount      int        `json:"retryCount"`
	LedgerRef       string     `json:"ledgerRef,omitempty"`
	LastError       string     `json:"lastError,omitempty"`
	EnqueuedAt      time.Time  `json:"enqueuedAt"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
}
