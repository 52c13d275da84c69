package domain

// OutboxEvent is written in the same transaction as the state change that
// produced it. The dispatcher publishes unpublished rows in insertion order
// and marks them only after the broker acknowledges, so a committed change
// can never lose its event.
type OutboxEvent struct {
	ID          int64  `db:"id"`
	EventID     string `db:"event_id"`
	Topic       string `db:"topic"`
	Key         string `db:"key"`
	Payload     []byte `db:"payload"`
	CreatedAt   int64  `db:"created_at"`
	PublishedAt *int64 `db:"published_at"`
}

// OrphanedAccount records a remote account whose compensating delete failed.
// Rows feed the reconciliation sweep and are never silently dropped.
type OrphanedAccount struct {
	ID         int64   `db:"id"`
	AccountID  int64   `db:"account_id"`
	Username   string  `db:"username"`
	Reason     string  `db:"reason"`
	CreatedAt  int64   `db:"created_at"`
	ResolvedAt *int64  `db:"resolved_at"`
	LastError  *string `db:"last_error"`
}
