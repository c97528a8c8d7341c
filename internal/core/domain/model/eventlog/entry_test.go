package eventlog_test

import (
	"testing"
	"time"

	"herdshare/internal/core/domain/model/account"
	"herdshare/internal/core/domain/model/eventlog"
	"herdshare/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry(t *testing.T) {
	t.Run("should create actor-originated entry", func(t *testing.T) {
		actorID := kernel.NewUUID()
		allocationID := kernel.NewUUID()

		entry, err := eventlog.NewEntry(
			kernel.NewUUID(), &actorID, account.Buyer,
			"allocation", allocationID, "allocation_created",
			map[string]any{"plan": "QUARTER"}, &allocationID)

		require.NoError(t, err)
		require.NoError(t, entry.Validate())
		assert.Equal(t, account.Buyer, entry.ActorRole())
		assert.Equal(t, "allocation_created", entry.EventName())
		assert.Equal(t, "QUARTER", entry.Payload()["plan"])
		assert.False(t, entry.CreatedAt().IsZero())
	})

	t.Run("should create system-originated entry without actor", func(t *testing.T) {
		entry, err := eventlog.NewEntry(
			kernel.NewUUID(), nil, account.RoleUnknown,
			"allocation", kernel.NewUUID(), "payment_confirmed", nil, nil)

		require.NoError(t, err)
		assert.Nil(t, entry.ActorID())
	})

	t.Run("should require entity type and event name", func(t *testing.T) {
		_, err := eventlog.NewEntry(
			kernel.NewUUID(), nil, account.RoleUnknown,
			"", kernel.NewUUID(), "", nil, nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "entity type")
		assert.Contains(t, err.Error(), "event name")
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var entry eventlog.Entry
		require.ErrorIs(t, entry.Validate(), eventlog.ErrEntryIsNotConstructed)
	})
}

func TestRestoreEntry(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	entry, err := eventlog.RestoreEntry(
		kernel.NewUUID(), nil, account.RoleUnknown,
		"allocation", kernel.NewUUID(), "checkout_expired", nil, nil, createdAt)

	require.NoError(t, err)
	assert.Equal(t, createdAt, entry.CreatedAt())
}
