package document_test

import (
	"fmt"
	"testing"

	"lading/internal/core/domain/model/document"
	"lading/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_Constants(t *testing.T) {
	t.Run("should have correct enum values", func(t *testing.T) {
		assert.Equal(t, 0, int(document.Unknown))
		assert.Equal(t, 1, int(document.Pending))
		assert.Equal(t, 2, int(document.Approved))
		assert.Equal(t, 3, int(document.Shipped))
		assert.Equal(t, 4, int(document.InTransit))
		assert.Equal(t, 5, int(document.Delivered))
		assert.Equal(t, 6, int(document.Settled))
		assert.Equal(t, 7, int(document.Rejected))
	})
}

func TestState_Validate(t *testing.T) {
	t.Run("should validate valid states", func(t *testing.T) {
		for _, state := range document.AllStates() {
			t.Run(fmt.Sprintf("should validate %s state", state.String()), func(t *testing.T) {
				require.NoError(t, state.Validate())
			})
		}
	})

	t.Run("should reject Unknown state", func(t *testing.T) {
		err := document.Unknown.Validate()

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		assert.Contains(t, err.Error(), "value is invalid: state")
		assert.Contains(t, err.Error(), "0 is not a valid state")
	})

	t.Run("should reject out of range state values", func(t *testing.T) {
		invalidStates := []document.State{
			document.State(-1),
			document.State(8),
			document.State(100),
		}

		for _, state := range invalidStates {
			t.Run(fmt.Sprintf("should reject state value %d", int(state)), func(t *testing.T) {
				err := state.Validate()

				require.Error(t, err)
				assert.IsType(t, &errs.ValueIsInvalidError{}, err)
			})
		}
	})
}

func TestState_String(t *testing.T) {
	t.Run("should return correct string representations", func(t *testing.T) {
		expected := map[document.State]string{
			document.Unknown:   "Unknown",
			document.Pending:   "Pending",
			document.Approved:  "Approved",
			document.Shipped:   "Shipped",
			document.InTransit: "InTransit",
			document.Delivered: "Delivered",
			document.Settled:   "Settled",
			document.Rejected:  "Rejected",
		}

		for state, str := range expected {
			assert.Equal(t, str, state.String())
		}
	})

	t.Run("should return Unknown for out of range values", func(t *testing.T) {
		assert.Equal(t, "Unknown", document.State(42).String())
	})
}

func TestStateFromString(t *testing.T) {
	t.Run("should round trip every valid state", func(t *testing.T) {
		for _, state := range document.AllStates() {
			parsed, err := document.StateFromString(state.String())

			require.NoError(t, err)
			assert.Equal(t, state, parsed)
		}
	})

	t.Run("should reject Unknown by name", func(t *testing.T) {
		_, err := document.StateFromString("Unknown")

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
	})

	t.Run("should reject unrecognized names", func(t *testing.T) {
		for _, name := range []string{"", "pending", "APPROVED", "Lost"} {
			_, err := document.StateFromString(name)
			require.Error(t, err, "name %q should be rejected", name)
		}
	})
}

func TestAllStates(t *testing.T) {
	t.Run("should return all seven valid states", func(t *testing.T) {
		states := document.AllStates()

		assert.Len(t, states, 7)
		assert.NotContains(t, states, document.Unknown)
	})
}
