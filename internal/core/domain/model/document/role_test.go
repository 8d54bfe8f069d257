package document_test

import (
	"fmt"
	"testing"

	"lading/internal/core/domain/model/document"
	"lading/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_Validate(t *testing.T) {
	t.Run("should validate valid roles", func(t *testing.T) {
		for _, role := range document.AllRoles() {
			t.Run(fmt.Sprintf("should validate %s role", role.String()), func(t *testing.T) {
				require.NoError(t, role.Validate())
			})
		}
	})

	t.Run("should reject RoleUnknown", func(t *testing.T) {
		err := document.RoleUnknown.Validate()

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		assert.Contains(t, err.Error(), "value is invalid: role")
	})

	t.Run("should reject out of range role values", func(t *testing.T) {
		for _, role := range []document.Role{document.Role(-1), document.Role(5), document.Role(99)} {
			require.Error(t, role.Validate(), "role value %d should be rejected", int(role))
		}
	})
}

func TestRole_String(t *testing.T) {
	t.Run("should return correct string representations", func(t *testing.T) {
		expected := map[document.Role]string{
			document.RoleUnknown:   "Unknown",
			document.RoleShipper:   "Shipper",
			document.RoleCarrier:   "Carrier",
			document.RoleConsignee: "Consignee",
			document.RoleAdmin:     "Admin",
		}

		for role, str := range expected {
			assert.Equal(t, str, role.String())
		}
	})
}

func TestRoleFromString(t *testing.T) {
	t.Run("should round trip every valid role", func(t *testing.T) {
		for _, role := range document.AllRoles() {
			parsed, err := document.RoleFromString(role.String())

			require.NoError(t, err)
			assert.Equal(t, role, parsed)
		}
	})

	t.Run("should reject unrecognized names", func(t *testing.T) {
		for _, name := range []string{"", "shipper", "Unknown", "Captain"} {
			_, err := document.RoleFromString(name)
			require.Error(t, err, "name %q should be rejected", name)
		}
	})
}

func TestAllRoles(t *testing.T) {
	t.Run("should return all four valid roles", func(t *testing.T) {
		roles := document.AllRoles()

		assert.Len(t, roles, 4)
		assert.NotContains(t, roles, document.RoleUnknown)
	})
}
