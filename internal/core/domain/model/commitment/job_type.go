package commitment

import (
	"fmt"

	"lading/internal/pkg/errs"
)

// JobType classifies the ledger operation a commitment job represents.
// The batch committer groups jobs by type before submission so the ledger
// client can submit homogeneous batches.
type JobType string

const (
	// JobTypeStatusTransition records an ordinary lifecycle state change.
	JobTypeStatusTransition JobType = "status-transition"

	// JobTypeDeliveryConfirmation records custody transfer to the consignee.
	JobTypeDeliveryConfirmation JobType = "delivery-confirmation"

	// JobTypeSettlement records final settlement of the bill of lading.
	JobTypeSettlement JobType = "settlement"
)

// Validate checks if the JobType value is valid.
func (t JobType) Validate() error {
	switch t {
	case JobTypeStatusTransition, JobTypeDeliveryConfirmation, JobTypeSettlement:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("jobType", fmt.Errorf("%q is not a valid job type", string(t)))
	}
}

// String returns the wire name of the job type.
func (t JobType) String() string {
	return string(t)
}
