package access

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildconnect/internal/core/domain/model/kernel"
)

func Test_NewLogEntry(t *testing.T) {
	// Arrange
	id := kernel.NewUUID()
	requestID := kernel.NewUUID()
	actorID := kernel.NewUUID()

	// Act
	entry, err := NewLogEntry(id, requestID, actorID, RoleBuilder, true, ReasonDisclosed, "verifying driver before gate entry")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, id, entry.ID())
	assert.Equal(t, requestID, entry.RequestID())
	assert.Equal(t, actorID, entry.ActorID())
	assert.Equal(t, RoleBuilder, entry.ActorRole())
	assert.True(t, entry.Allowed())
	assert.Equal(t, ReasonDisclosed, entry.Reason())
	assert.Equal(t, "verifying driver before gate entry", entry.Justification())
	assert.False(t, entry.OccurredAt().IsZero())
}

func Test_NewLogEntryDenied(t *testing.T) {
	entry, err := NewLogEntry(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		RoleSupplier, false, ReasonDeliveryInactive, "")

	require.NoError(t, err)
	assert.False(t, entry.Allowed())
	assert.Equal(t, ReasonDeliveryInactive, entry.Reason())
}

func Test_NewLogEntryValidatesInputs(t *testing.T) {
	tests := map[string]struct {
		actorID kernel.UUID
		role    Role
		reason  string
	}{
		"empty actor":  {actorID: kernel.UUID{}, role: RoleBuilder, reason: ReasonDisclosed},
		"unknown role": {actorID: kernel.NewUUID(), role: RoleUnknown, reason: ReasonDisclosed},
		"empty reason": {actorID: kernel.NewUUID(), role: RoleBuilder, reason: ""},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewLogEntry(kernel.NewUUID(), kernel.NewUUID(), tc.actorID,
				tc.role, false, tc.reason, "")
			assert.Error(t, err)
		})
	}
}

func Test_EmptyLogEntryIsInvalid(t *testing.T) {
	var entry LogEntry
	assert.ErrorIs(t, entry.Validate(), ErrLogEntryIsNotConstructed)
}

func Test_RestoreLogEntry(t *testing.T) {
	occurredAt := time.Date(2026, 5, 2, 16, 45, 0, 0, time.UTC)

	entry, err := RestoreLogEntry(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		RoleAdmin, true, ReasonDisclosed, "dispute investigation", occurredAt)

	require.NoError(t, err)
	assert.Equal(t, occurredAt, entry.OccurredAt())
	assert.Equal(t, RoleAdmin, entry.ActorRole())
}
