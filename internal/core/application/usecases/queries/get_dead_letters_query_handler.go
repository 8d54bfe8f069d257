package queries

import (
	"context"

	"lading/internal/core/ports"
)

// GetDeadLettersQueryHandler lists dead-lettered commitment jobs so operators
// can inspect them before deciding to requeue.
type GetDeadLettersQueryHandler struct {
	queue ports.CommitmentQueue
}

// NewGetDeadLettersQueryHandler creates a handler for dead letter listings.
func NewGetDeadLettersQueryHandler(queue ports.CommitmentQueue) GetDeadLettersQueryHandler {
	return GetDeadLettersQueryHandler{queue: queue}
}

// Handle executes the query.
func (h GetDeadLettersQueryHandler) Handle(
	ctx context.Context,
	query GetDeadLettersQuery,
) ([]JobStatusResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	jobs := h.queue.DeadLetters()

	responses := make([]JobStatusResponse, 0, len(jobs))
	for _, job := range jobs {
		responses = append(responses, jobStatusResponseFromJob(job))
	}
	return responses, nil
}
