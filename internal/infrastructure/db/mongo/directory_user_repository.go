package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/assetdesk/inventory-system/internal/core/domain"
	"github.com/assetdesk/inventory-system/internal/core/ports"
)

const collectionDirectoryUsers = "directory_users"

var directoryUserSortFields = map[string]string{
	"display_name":   "display_name",
	"principal_name": "principal_name",
	"department":     "department",
	"synced_at":      "synced_at",
}

type DirectoryUserRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewDirectoryUserRepository(db *mongo.Database) *DirectoryUserRepository {
	return &DirectoryUserRepository{db: db, col: db.Collection(collectionDirectoryUsers)}
}

// Upsert writes the record keyed by directory id. A record that was pruned
// earlier has its deleted_at marker cleared by the same write.
func (r *DirectoryUserRepository) Upsert(ctx context.Context, u *domain.DirectoryUser) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"principal_name": u.PrincipalName,
			"display_name":   u.DisplayName,
			"department":     u.Department,
			"is_active":      u.IsActive,
			"synced_at":      u.SyncedAt,
			"deleted_at":     nil,
		},
		"$setOnInsert": bson.M{"_id": newID()},
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"directory_id": u.DirectoryID},
		update,
		options.Update().SetUpsert(true),
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, domain.ErrDuplicatePrincipalName
		}
		return false, fmt.Errorf("upsert directory user: %w", err)
	}
	return res.UpsertedCount > 0, nil
}

func (r *DirectoryUserRepository) FindByID(ctx context.Context, id string) (*domain.DirectoryUser, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var u domain.DirectoryUser
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDirectoryUserNotFound
		}
		return nil, fmt.Errorf("find directory user: %w", err)
	}
	return &u, nil
}

func (r *DirectoryUserRepository) FindByPrincipalName(ctx context.Context, principalName string) (*domain.DirectoryUser, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var u domain.DirectoryUser
	if err := r.col.FindOne(ctx, bson.M{"principal_name": principalName}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDirectoryUserNotFound
		}
		return nil, fmt.Errorf("find directory user: %w", err)
	}
	return &u, nil
}

func (r *DirectoryUserRepository) List(ctx context.Context, f ports.ListDirectoryUsersFilter) ([]*domain.DirectoryUser, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if !f.IncludeDeleted {
		filter["deleted_at"] = nil
	}
	addInFilter(filter, "department", f.Departments)
	if f.IsActive != nil {
		filter["is_active"] = *f.IsActive
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count directory users: %w", err)
	}

	sortField := sortOrFallback(f.SortBy, directoryUserSortFields, "display_name")
	cursor, err := r.col.Find(ctx, filter, pageOpts(sortField, f.SortDesc, f.Page, f.Limit))
	if err != nil {
		return nil, 0, fmt.Errorf("list directory users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []*domain.DirectoryUser
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, fmt.Errorf("decode directory users: %w", err)
	}
	return users, total, nil
}

// SoftDeleteNotIn marks every live record absent from directoryIDs as
// deleted at the given time. Records already carrying a marker keep their
// original prune time.
func (r *DirectoryUserRepository) SoftDeleteNotIn(ctx context.Context, directoryIDs []string, at time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateMany(ctx,
		bson.M{"directory_id": bson.M{"$nin": directoryIDs}, "deleted_at": nil},
		bson.M{"$set": bson.M{"deleted_at": at}},
	)
	if err != nil {
		return 0, fmt.Errorf("soft delete directory users: %w", err)
	}
	return res.ModifiedCount, nil
}

// Delete hard-deletes the record and clears the user reference on its
// assignments in one transaction. Assignment history survives the user.
func (r *DirectoryUserRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return inTransaction(ctx, r.db.Client(), func(sc mongo.SessionContext) error {
		res, err := r.col.DeleteOne(sc, bson.M{"_id": id})
		if err != nil {
			return fmt.Errorf("delete directory user: %w", err)
		}
		if res.DeletedCount == 0 {
			return domain.ErrDirectoryUserNotFound
		}
		_, err = r.db.Collection(collectionAssignments).UpdateMany(sc,
			bson.M{"user_id": id},
			bson.M{"$unset": bson.M{"user_id": ""}},
		)
		if err != nil {
			return fmt.Errorf("clear assignment user references: %w", err)
		}
		return nil
	})
}

// EnsureIndexes creates the indexes the directory_users collection relies
// on. Both identity keys are unique across all records.
func (r *DirectoryUserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "directory_id", Value: 1}}, Options: uniqueIndex()},
		{Keys: bson.D{{Key: "principal_name", Value: 1}}, Options: uniqueIndex()},
		{Keys: bson.D{{Key: "department", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
