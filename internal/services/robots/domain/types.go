// Package domain holds the robot entity, payload rules and service contracts
package domain

import (
	"time"

	perr "robots/internal/platform/errors"
)

// Robot is the single entity this service manages
type Robot struct {
	ID        int64     `json:"id"         example:"1"`
	Name      string    `json:"name"       example:"Yern"`
	Purpose   string    `json:"purpose"    example:"AI"`
	CreatedAt time.Time `json:"created_at" example:"2025-09-03T13:00:00Z"`
	UpdatedAt time.Time `json:"updated_at" example:"2025-09-03T13:00:00Z"`
}

// Filter is the allow-listed equality filter for listing robots
// nil fields do not constrain the result
type Filter struct {
	ID      *int64
	Name    *string
	Purpose *string
}

// Empty reports whether the filter matches every robot
func (f Filter) Empty() bool { return f.ID == nil && f.Name == nil && f.Purpose == nil }

// Changes is the whitelisted set of columns a write touches
type Changes struct {
	Name    *string
	Purpose *string
}

// Empty reports whether there is nothing to write
func (c Changes) Empty() bool { return c.Name == nil && c.Purpose == nil }

// UpdatedMessage is the body returned by update endpoints
const UpdatedMessage = "Robot updated successfully."

// Failures surfaced to clients; messages are part of the wire contract
var (
	// ErrInvalidParameters rejects payloads that break the required field contract
	ErrInvalidParameters = perr.New(perr.ErrorCodeInvalidParameters, "Invalid parameters")

	// ErrNotFound is returned when an id has no matching robot
	ErrNotFound = perr.New(perr.ErrorCodeNotFound, "Robot not found")

	// ErrUnprocessableCreate is returned when the store accepts an insert but returns no row
	ErrUnprocessableCreate = perr.New(perr.ErrorCodeUnprocessableCreate, "Failed to add new robot.")
)
