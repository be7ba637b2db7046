package domain

import "time"

// Clock supplies creation timestamps.
type Clock interface {
	Now() time.Time
}

// IDGenerator supplies fresh task ids.
type IDGenerator interface {
	NewID() string
}
