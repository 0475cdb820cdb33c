package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/assetdesk/inventory-system/internal/core/domain"
	"github.com/assetdesk/inventory-system/internal/core/ports"
)

const collectionAssignments = "assignments"

var assignmentSortFields = map[string]string{
	"assigned_date": "assigned_date",
	"returned_date": "returned_date",
	"location":      "location",
	"created_at":    "created_at",
}

type AssignmentRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewAssignmentRepository(db *mongo.Database) *AssignmentRepository {
	return &AssignmentRepository{db: db, col: db.Collection(collectionAssignments)}
}

func (r *AssignmentRepository) Create(ctx context.Context, a *domain.Assignment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	a.ID = newID()
	if _, err := r.col.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("insert assignment: %w", err)
	}
	return nil
}

func (r *AssignmentRepository) FindByID(ctx context.Context, id string) (*domain.Assignment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a domain.Assignment
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("find assignment: %w", err)
	}
	return &a, nil
}

func (r *AssignmentRepository) Update(ctx context.Context, a *domain.Assignment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": a.ID}, a)
	if err != nil {
		return fmt.Errorf("update assignment: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAssignmentNotFound
	}
	return nil
}

// CloseWithAsset persists the returned assignment and moves its asset to
// the given status in one transaction, so a crash cannot leave the return
// recorded without the asset reflecting it.
func (r *AssignmentRepository) CloseWithAsset(ctx context.Context, a *domain.Assignment, status domain.AssetStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return inTransaction(ctx, r.db.Client(), func(sc mongo.SessionContext) error {
		res, err := r.col.ReplaceOne(sc, bson.M{"_id": a.ID}, a)
		if err != nil {
			return fmt.Errorf("close assignment: %w", err)
		}
		if res.MatchedCount == 0 {
			return domain.ErrAssignmentNotFound
		}

		_, err = r.db.Collection(collectionAssets).UpdateOne(sc,
			bson.M{"_id": a.AssetID},
			bson.M{"$set": bson.M{"status": string(status), "updated_at": time.Now().UTC()}},
		)
		if err != nil {
			return fmt.Errorf("set asset status: %w", err)
		}
		return nil
	})
}

// FindActiveByAsset returns the asset's open assignment. A nil filter value
// matches both a null and an absent returned_date.
func (r *AssignmentRepository) FindActiveByAsset(ctx context.Context, assetID string) (*domain.Assignment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a domain.Assignment
	err := r.col.FindOne(ctx, bson.M{"asset_id": assetID, "returned_date": nil}).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("find active assignment: %w", err)
	}
	return &a, nil
}

func (r *AssignmentRepository) List(ctx context.Context, f ports.ListAssignmentsFilter) ([]*domain.Assignment, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	switch f.Status {
	case ports.AssignmentStatusActive:
		filter["returned_date"] = nil
	case ports.AssignmentStatusReturned:
		filter["returned_date"] = bson.M{"$ne": nil}
	}
	addInFilter(filter, "location", f.Locations)
	addDateRange(filter, "assigned_date", f.AssignedFrom, f.AssignedTo)
	if !f.ReturnedFrom.IsZero() || !f.ReturnedTo.IsZero() {
		addDateRange(filter, "returned_date", f.ReturnedFrom, f.ReturnedTo)
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count assignments: %w", err)
	}

	sortField := sortOrFallback(f.SortBy, assignmentSortFields, "assigned_date")
	cursor, err := r.col.Find(ctx, filter, pageOpts(sortField, f.SortDesc, f.Page, f.Limit))
	if err != nil {
		return nil, 0, fmt.Errorf("list assignments: %w", err)
	}
	defer cursor.Close(ctx)

	var assignments []*domain.Assignment
	if err := cursor.All(ctx, &assignments); err != nil {
		return nil, 0, fmt.Errorf("decode assignments: %w", err)
	}
	return assignments, total, nil
}

// EnsureIndexes creates the indexes the assignments collection relies on.
func (r *AssignmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "asset_id", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "assigned_date", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
