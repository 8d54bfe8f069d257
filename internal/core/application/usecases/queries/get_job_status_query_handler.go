package queries

import (
	"context"

	"lading/internal/core/ports"
)

// GetJobStatusQueryHandler serves commitment job lookups.
type GetJobStatusQueryHandler struct {
	queue ports.CommitmentQueue
}

// NewGetJobStatusQueryHandler creates a handler for job status reads.
func NewGetJobStatusQueryHandler(queue ports.CommitmentQueue) GetJobStatusQueryHandler {
	return GetJobStatusQueryHandler{queue: queue}
}

// Handle executes the query.
func (h GetJobStatusQueryHandler) Handle(
	ctx context.Context,
	query GetJobStatusQuery,
) (JobStatusResponse, error) {
	if err := query.Validate(); err != nil {
		return JobStatusResponse{}, err
	}

	job, err := h.queue.Job(query.JobID())
	if err != nil {
		return JobStatusResponse{}, err
	}

	return jobStatusResponseFromJob(job), nil
}
