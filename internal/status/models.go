// Package status stores client status checks, a small liveness log clients
// write to and read back through /api/status.
package status

import (
	"errors"
	"time"
)

// Errors returned by the status package.
var (
	ErrInvalidClientName = errors.New("client_name is required")
	ErrClientNameTooLong = errors.New("client_name is too long")
)

// MaxClientNameLength bounds the stored client name.
const MaxClientNameLength = 200

// Check is one recorded status check.
type Check struct {
	ID         string    `json:"id"`
	ClientName string    `json:"client_name"`
	Timestamp  time.Time `json:"timestamp"`
}

// CreateRequest is the body accepted by POST /api/status.
type CreateRequest struct {
	ClientName string `json:"client_name"`
}
