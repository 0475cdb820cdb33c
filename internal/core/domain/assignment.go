package domain

import (
	"errors"
	"time"
)

var ErrAssignmentNotFound = errors.New("assignment not found")
var ErrAssetAlreadyAssigned = errors.New("asset already has an active assignment")

// Assignment is a time-bounded association between one asset and, optionally,
// one directory user. A nil UserID models a shared ("Team/Room") assignment.
// ReturnedDate nil means the assignment is active; setting it is a one-way
// transition. After creation only ReturnedDate, Location and Notes are
// writable — the remaining fields are historical record.
type Assignment struct {
	ID           string     `json:"id" bson:"_id,omitempty"`
	AssetID      string     `json:"asset_id" bson:"asset_id"`
	UserID       *string    `json:"user_id,omitempty" bson:"user_id,omitempty"`
	AssignedDate time.Time  `json:"assigned_date" bson:"assigned_date"`
	ReturnedDate *time.Time `json:"returned_date,omitempty" bson:"returned_date,omitempty"`
	Location     string     `json:"location,omitempty" bson:"location,omitempty"`
	Reason       string     `json:"assignment_reason,omitempty" bson:"assignment_reason,omitempty"`
	Notes        string     `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" bson:"updated_at"`
}

// IsActive reports whether the assignment has not been returned yet.
func (a *Assignment) IsActive() bool {
	return a.ReturnedDate == nil
}
