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

const collectionAssets = "assets"

// assetSortFields maps accepted sort parameters to document fields.
var assetSortFields = map[string]string{
	"name":          "name",
	"category":      "category",
	"brand":         "brand",
	"status":        "status",
	"serial_number": "serial_number",
	"purchase_date": "purchase_date",
	"location":      "location",
	"created_at":    "created_at",
}

type AssetRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewAssetRepository(db *mongo.Database) *AssetRepository {
	return &AssetRepository{db: db, col: db.Collection(collectionAssets)}
}

// Create inserts a new asset document. A serial number collision surfaces
// as domain.ErrDuplicateSerialNumber via the unique index.
func (r *AssetRepository) Create(ctx context.Context, a *domain.Asset) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	a.ID = newID()
	if _, err := r.col.InsertOne(ctx, a); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateSerialNumber
		}
		return fmt.Errorf("insert asset: %w", err)
	}
	return nil
}

func (r *AssetRepository) FindByID(ctx context.Context, id string) (*domain.Asset, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a domain.Asset
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, fmt.Errorf("find asset: %w", err)
	}
	return &a, nil
}

func (r *AssetRepository) Update(ctx context.Context, a *domain.Asset) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": a.ID}, a)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateSerialNumber
		}
		return fmt.Errorf("update asset: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAssetNotFound
	}
	return nil
}

// Delete removes the asset and every assignment referencing it in one
// transaction, so no orphaned history survives.
func (r *AssetRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return inTransaction(ctx, r.db.Client(), func(sc mongo.SessionContext) error {
		res, err := r.col.DeleteOne(sc, bson.M{"_id": id})
		if err != nil {
			return fmt.Errorf("delete asset: %w", err)
		}
		if res.DeletedCount == 0 {
			return domain.ErrAssetNotFound
		}
		if _, err := r.db.Collection(collectionAssignments).DeleteMany(sc, bson.M{"asset_id": id}); err != nil {
			return fmt.Errorf("delete asset assignments: %w", err)
		}
		return nil
	})
}

func (r *AssetRepository) List(ctx context.Context, f ports.ListAssetsFilter) ([]*domain.Asset, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	addInFilter(filter, "status", f.Statuses)
	addInFilter(filter, "category", f.Categories)
	addInFilter(filter, "brand", f.Brands)
	addInFilter(filter, "location", f.Locations)
	addDateRange(filter, "purchase_date", f.PurchasedFrom, f.PurchasedTo)

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count assets: %w", err)
	}

	sortField := sortOrFallback(f.SortBy, assetSortFields, "name")
	cursor, err := r.col.Find(ctx, filter, pageOpts(sortField, f.SortDesc, f.Page, f.Limit))
	if err != nil {
		return nil, 0, fmt.Errorf("list assets: %w", err)
	}
	defer cursor.Close(ctx)

	var assets []*domain.Asset
	if err := cursor.All(ctx, &assets); err != nil {
		return nil, 0, fmt.Errorf("decode assets: %w", err)
	}
	return assets, total, nil
}

// ClearOSOption removes the reference from every asset carrying the option.
func (r *AssetRepository) ClearOSOption(ctx context.Context, osOptionID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateMany(ctx,
		bson.M{"os_option_id": osOptionID},
		bson.M{"$unset": bson.M{"os_option_id": ""}},
	)
	if err != nil {
		return fmt.Errorf("clear os option: %w", err)
	}
	return nil
}

// EnsureIndexes creates the indexes the assets collection relies on. The
// unique serial number index backs the duplicate check on Create/Update.
func (r *AssetRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "serial_number", Value: 1}}, Options: uniqueIndex()},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func addInFilter(filter bson.M, field string, values []string) {
	if len(values) > 0 {
		filter[field] = bson.M{"$in": values}
	}
}

func addDateRange(filter bson.M, field string, from, to time.Time) {
	bounds := bson.M{}
	if !from.IsZero() {
		bounds["$gte"] = from
	}
	if !to.IsZero() {
		bounds["$lte"] = to
	}
	if len(bounds) > 0 {
		filter[field] = bounds
	}
}
