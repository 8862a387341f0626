// Package runid issues the correlation ID attached to every log line and
// metric of a single probe run.
package runid

import "github.com/google/uuid"

// New returns a fresh run ID.
func New() string {
	return uuid.NewString()
}
