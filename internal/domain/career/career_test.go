package career

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ginsengcms/internal/core/apperr"
)

func TestApplicationTransitionTable(t *testing.T) {
	cases := []struct {
		from, to ApplicationStatus
		ok       bool
	}{
		{StatusPending, StatusReviewing, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusWithdrawn, true},
		{StatusPending, StatusAccepted, false},
		{StatusPending, StatusInterviewed, false},
		{StatusReviewing, StatusInterviewed, true},
		{StatusReviewing, StatusWithdrawn, true},
		{StatusReviewing, StatusAccepted, false},
		{StatusInterviewed, StatusAccepted, true},
		{StatusInterviewed, StatusRejected, true},
		{StatusInterviewed, StatusWithdrawn, true},
		{StatusAccepted, StatusRejected, false},
		{StatusRejected, StatusAccepted, false},
		{StatusWithdrawn, StatusPending, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.ok, c.from.CanTransitionTo(c.to), "%s -> %s", c.from, c.to)
	}
}

func TestTerminalStates(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusReviewing.Terminal())
	assert.False(t, StatusInterviewed.Terminal())
	assert.True(t, StatusAccepted.Terminal())
	assert.True(t, StatusRejected.Terminal())
	assert.True(t, StatusWithdrawn.Terminal())
}

func TestTransitionTo(t *testing.T) {
	app, err := NewApplication(uuid.New(), "Jane Doe", "jane@example.com", "", "", "")
	require.NoError(t, err)
	require.Equal(t, StatusPending, app.Status)

	// pending -> rejected reaches a terminal state
	require.NoError(t, app.TransitionTo(StatusRejected))
	assert.Equal(t, StatusRejected, app.Status)

	// a terminal state admits no further moves
	err = app.TransitionTo(StatusAccepted)
	require.Error(t, err)
	assert.True(t, apperr.IsTransition(err))
	assert.Equal(t, StatusRejected, app.Status, "status must be unchanged after a rejected transition")
}

func TestTransitionToUnknownStatus(t *testing.T) {
	app, err := NewApplication(uuid.New(), "Jane Doe", "jane@example.com", "", "", "")
	require.NoError(t, err)

	err = app.TransitionTo("archived")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestNewApplicationValidation(t *testing.T) {
	_, err := NewApplication(uuid.Nil, "Jane", "jane@example.com", "", "", "")
	assert.Error(t, err)

	_, err = NewApplication(uuid.New(), "", "jane@example.com", "", "", "")
	assert.Error(t, err)

	_, err = NewApplication(uuid.New(), "Jane", "not-an-email", "", "", "")
	assert.Error(t, err)

	app, err := NewApplication(uuid.New(), "Jane", "JANE@Example.COM", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", app.Email)
}
