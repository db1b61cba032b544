package composition

import "github.com/google/uuid"

// IDGenerator mints entity ids. Implemented by UUIDGenerator in
// production and testutil.SequentialIDGenerator in tests, where
// deterministic ids keep golden snapshots stable.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator issues time-ordered UUIDv7 ids.
type UUIDGenerator struct{}

// NewID returns a fresh UUIDv7 string.
func (UUIDGenerator) NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}
