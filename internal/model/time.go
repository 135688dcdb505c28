package model

import "time"

// Now returns the current UTC instant truncated to millisecond precision.
// RFC 3339 with fixed millisecond precision keeps timestamps lexically
// sortable in the store alongside records written by other clients.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
