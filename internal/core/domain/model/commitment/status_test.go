package commitment_test

import (
	"testing"

	"lading/internal/core/domain/model/commitment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate valid statuses", func(t *testing.T) {
		validStatuses := []commitment.Status{
			commitment.StatusQueued,
			commitment.StatusSubmitting,
			commitment.StatusCommitted,
			commitment.StatusFailedPermanent,
		}

		for _, status := range validStatuses {
			require.NoError(t, status.Validate(), "status %s should be valid", status)
		}
	})

	t.Run("should reject Unknown and out of range values", func(t *testing.T) {
		invalid := []commitment.Status{
			commitment.StatusUnknown,
			commitment.Status(-1),
			commitment.Status(5),
		}

		for _, status := range invalid {
			require.Error(t, status.Validate(), "status value %d should be rejected", int(status))
		}
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	t.Run("should treat Committed and FailedPermanent as terminal", func(t *testing.T) {
		assert.True(t, commitment.StatusCommitted.IsTerminal())
		assert.True(t, commitment.StatusFailedPermanent.IsTerminal())
	})

	t.Run("should treat Queued and Submitting as non terminal", func(t *testing.T) {
		assert.False(t, commitment.StatusQueued.IsTerminal())
		assert.False(t, commitment.StatusSubmitting.IsTerminal())
	})
}

func TestStatus_Transitions(t *testing.T) {
	t.Run("should submit only from Queued", func(t *testing.T) {
		next, err := commitment.StatusQueued.Submit()
		require.NoError(t, err)
		assert.Equal(t, commitment.StatusSubmitting, next)

		for _, status := range []commitment.Status{
			commitment.StatusSubmitting,
			commitment.StatusCommitted,
			commitment.StatusFailedPermanent,
		} {
			_, err := status.Submit()
			require.Error(t, err, "submit from %s should fail", status)
		}
	})

	t.Run("should commit only from Submitting", func(t *testing.T) {
		next, err := commitment.StatusSubmitting.Commit()
		require.NoError(t, err)
		assert.Equal(t, commitment.StatusCommitted, next)

		_, err = commitment.StatusQueued.Commit()
		require.Error(t, err)
	})

	t.Run("should requeue only from Submitting", func(t *testing.T) {
		next, err := commitment.StatusSubmitting.Requeue()
		require.NoError(t, err)
		assert.Equal(t, commitment.StatusQueued, next)

		_, err = commitment.StatusCommitted.Requeue()
		require.Error(t, err)
	})

	t.Run("should fail only from Submitting", func(t *testing.T) {
		next, err := commitment.StatusSubmitting.Fail()
		require.NoError(t, err)
		assert.Equal(t, commitment.StatusFailedPermanent, next)

		_, err = commitment.StatusFailedPermanent.Fail()
		require.Error(t, err)
	})
}

func TestStatus_String(t *testing.T) {
	t.Run("should return correct string representations", func(t *testing.T) {
		assert.Equal(t, "Queued", commitment.StatusQueued.String())
		assert.Equal(t, "Submitting", commitment.StatusSubmitting.String())
		assert.Equal(t, "Committed", commitment.StatusCommitted.String())
		assert.Equal(t, "FailedPermanent", commitment.StatusFailedPermanent.String())
		assert.Equal(t, "Unknown", commitment.Status(42).String())
	})
}
