package queries

import (
	"errors"
	"time"

	"lading/internal/core/domain/model/commitment"
	"lading/internal/core/domain/model/kernel"
	"lading/internal/pkg/guard"
)

var ErrGetJobStatusQueryIsNotConstructed = errors.New(
	"GetJobStatusQuery must be created via NewGetJobStatusQuery constructor",
)

// GetJobStatusQuery retrieves the lifecycle state of a commitment job.
type GetJobStatusQuery struct {
	jobID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetJobStatusQuery creates a validated job status query.
func NewGetJobStatusQuery(jobID kernel.UUID) (GetJobStatusQuery, error) {
	if err := jobID.Validate(); err != nil {
		return GetJobStatusQuery{}, err
	}

	return GetJobStatusQuery{
		jobID: jobID,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetJobStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetJobStatusQueryIsNotConstructed)
}

// JobID returns the identifier of the job to read.
func (q GetJobStatusQuery) JobID() kernel.UUID {
	return q.jobID
}

// JobStatusResponse is the read model of a commitment job. Built from a
// snapshot, so it stays coherent even while the committer mutates the job.
type JobStatusResponse struct {
	ID              kernel.UUID
	DocumentID      kernel.UUID
	DocumentVersion int64
	JobType         commitment.JobType
	Priority        commitment.Priority
	Status          commitment.Status
	RetryCount      int
	LedgerRef       string
	LastError       string
	EnqueuedAt      time.Time
	CompletedAt     *time.Time
}

func jobStatusResponseFromJob(job *commitment.Job) JobStatusResponse {
	return JobStatusResponse{
		ID:              job.ID(),
		DocumentID:      job.DocumentID(),
		DocumentVersion: job.DocumentVersion(),
		JobType:         job.Type(),
		Priority:        job.Priority(),
		Status:          job.Status(),
		RetryCount:      job.RetryCount(),
		LedgerRef:       job.LedgerRef(),
		LastError:       job.LastError(),
		EnqueuedAt:      job.EnqueuedAt(),
		CompletedAt:     job.CompletedAt(),
	}
}
