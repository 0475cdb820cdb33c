package ports

import "context"

// DirectoryRecord is one user record as returned by the external identity
// directory. DisplayName and Department are pointers because the directory
// may omit them; the reconciler substitutes a placeholder for absent values.
type DirectoryRecord struct {
	ID            string
	PrincipalName string
	DisplayName   *string
	Department    *string
	Enabled       bool
}

// DirectoryClient wraps calls to the remote identity directory.
type DirectoryClient interface {
	// FetchAllUsers returns the complete user set, internally following
	// pagination links until exhausted. A transport or auth failure is
	// returned as an error, distinguishable from an empty directory.
	FetchAllUsers(ctx context.Context) ([]DirectoryRecord, error)
	// FetchUser returns one user by principal name. "Not found" surfaces as
	// domain.ErrDirectoryUserNotFound; transport failures wrap
	// domain.ErrDirectoryUnavailable.
	FetchUser(ctx context.Context, principalName string) (*DirectoryRecord, error)
}
