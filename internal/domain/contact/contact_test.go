package contact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ginsengcms/internal/core/apperr"
)

func newTestMessage(t *testing.T) *Message {
	t.Helper()
	m, err := NewMessage("Jamie Park", "Jamie@Example.COM", "", "Wholesale inquiry", "Do you ship overseas?")
	require.NoError(t, err)
	return m
}

func TestNewMessageNormalizesEmail(t *testing.T) {
	m := newTestMessage(t)
	assert.Equal(t, "jamie@example.com", m.Email)
	assert.Equal(t, StatusNew, m.Status)
}

func TestNewMessageRejectsBlankBody(t *testing.T) {
	_, err := NewMessage("Jamie", "jamie@example.com", "", "subject", "   ")
	assert.Error(t, err)
}

func TestTriageFlow(t *testing.T) {
	m := newTestMessage(t)

	require.NoError(t, m.TransitionTo(StatusRead))
	require.NoError(t, m.TransitionTo(StatusReplied))
	require.NoError(t, m.TransitionTo(StatusArchived))
	assert.Equal(t, StatusArchived, m.Status)
}

func TestNoBackwardTransitions(t *testing.T) {
	m := newTestMessage(t)
	require.NoError(t, m.TransitionTo(StatusRead))

	err := m.TransitionTo(StatusNew)
	assert.True(t, apperr.IsTransition(err))
	assert.Equal(t, StatusRead, m.Status)
}

func TestArchivedIsTerminal(t *testing.T) {
	m := newTestMessage(t)
	require.NoError(t, m.TransitionTo(StatusArchived))

	for _, next := range []Status{StatusNew, StatusRead, StatusReplied} {
		err := m.TransitionTo(next)
		assert.True(t, apperr.IsTransition(err), "archived -> %s should be rejected", next)
	}
}

func TestUnknownStatusRejected(t *testing.T) {
	m := newTestMessage(t)
	err := m.TransitionTo(Status("escalated"))
	assert.True(t, apperr.IsValidation(err))
}
