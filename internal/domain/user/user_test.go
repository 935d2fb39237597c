package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Duplicate detection only works when lookups use the same form New
// stores, so the normalization has a single definition.
func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "admin@example.com", NormalizeEmail("  Admin@Example.COM "))

	u, err := New("Admin@Example.COM", "Administrator", RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, NormalizeEmail("Admin@Example.COM"), u.Email)
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New("not-an-email", "Administrator", RoleAdmin)
	assert.Error(t, err)

	_, err = New("admin@example.com", "  ", RoleAdmin)
	assert.Error(t, err)

	_, err = New("admin@example.com", "Administrator", Role("owner"))
	assert.Error(t, err)
}
