package domain

import (
	"errors"
	"time"
)

var ErrDirectoryUserNotFound = errors.New("directory user not found")
var ErrDuplicatePrincipalName = errors.New("principal name already in use")
var ErrDirectoryUnavailable = errors.New("directory service unavailable")
var ErrSyncAlreadyRunning = errors.New("directory sync already running")

// DirectoryUser mirrors one user record from the external identity
// directory. Records are created and refreshed exclusively by the sync
// reconciler, never by user-facing flows. DirectoryID and PrincipalName are
// each unique across all records.
//
// DeletedAt marks users pruned by the reconciler (absent from the latest
// directory pull). A later pull containing the id again clears the marker.
type DirectoryUser struct {
	ID            string     `json:"id" bson:"_id,omitempty"`
	DirectoryID   string     `json:"directory_id" bson:"directory_id"`
	PrincipalName string     `json:"principal_name" bson:"principal_name"`
	DisplayName   string     `json:"display_name,omitempty" bson:"display_name,omitempty"`
	Department    string     `json:"department,omitempty" bson:"department,omitempty"`
	IsActive      bool       `json:"is_active" bson:"is_active"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty" bson:"deleted_at"`
	SyncedAt      time.Time  `json:"synced_at" bson:"synced_at"`
}
