package domain

import (
	"errors"
	"time"
)

// AssetStatus represents the lifecycle state of a physical asset.
type AssetStatus string

const (
	StatusOperational    AssetStatus = "operational"
	StatusMaintenance    AssetStatus = "maintenance"
	StatusDecommissioned AssetStatus = "decommissioned"
	StatusLostDamaged    AssetStatus = "lost_damaged"
	StatusPendingSetup   AssetStatus = "pending_setup"
	StatusReserved       AssetStatus = "reserved"
)

// AssetStatuses lists every recognised status, in display order.
var AssetStatuses = []AssetStatus{
	StatusOperational,
	StatusMaintenance,
	StatusDecommissioned,
	StatusLostDamaged,
	StatusPendingSetup,
	StatusReserved,
}

// Valid reports whether s is one of the recognised asset statuses.
func (s AssetStatus) Valid() bool {
	for _, known := range AssetStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Holder sentinels used by the current_user projection when no directory
// user is attached to the active assignment.
const (
	HolderAvailable = "Available"
	HolderShared    = "Team/Room"
)

var ErrAssetNotFound = errors.New("asset not found")
var ErrDuplicateSerialNumber = errors.New("serial number already in use")
var ErrInvalidAssetStatus = errors.New("invalid asset status")

// Asset is a tracked physical item (laptop, monitor, peripheral, ...).
// Status is mutated directly by operators and indirectly by the assignment
// lifecycle: closing an active assignment moves the asset to maintenance.
type Asset struct {
	ID           string      `json:"id" bson:"_id,omitempty"`
	Name         string      `json:"name" bson:"name"`
	Category     string      `json:"category,omitempty" bson:"category,omitempty"`
	Brand        string      `json:"brand,omitempty" bson:"brand,omitempty"`
	Model        string      `json:"model,omitempty" bson:"model,omitempty"`
	OSOptionID   *string     `json:"os_option_id,omitempty" bson:"os_option_id,omitempty"`
	SerialNumber string      `json:"serial_number" bson:"serial_number"`
	PurchaseDate *time.Time  `json:"purchase_date,omitempty" bson:"purchase_date,omitempty"`
	Status       AssetStatus `json:"status" bson:"status"`
	Location     string      `json:"location,omitempty" bson:"location,omitempty"`
	Notes        string      `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt    time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" bson:"updated_at"`
}
