package ports

import (
	"context"

	"herdshare/internal/core/domain/model/eventlog"
)

// EventLogRepository defines the persistence contract for the append-only
// audit trail. Reads go through the query layer.
type EventLogRepository interface {
	// Add persists a new audit entry.
	Add(ctx context.Context, entry *eventlog.Entry) error
}
