package shared

import "github.com/google/uuid"

// Minimal snapshot for command read operations
type RequestSnapshot struct {
	ID              uuid.UUID
	ReferenceNumber string
	Status          string
}
