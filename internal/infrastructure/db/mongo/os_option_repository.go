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
)

const collectionOSOptions = "os_options"

type OSOptionRepository struct {
	col *mongo.Collection
}

func NewOSOptionRepository(db *mongo.Database) *OSOptionRepository {
	return &OSOptionRepository{col: db.Collection(collectionOSOptions)}
}

func (r *OSOptionRepository) Create(ctx context.Context, o *domain.OSOption) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	o.ID = newID()
	if _, err := r.col.InsertOne(ctx, o); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateOSOption
		}
		return fmt.Errorf("insert os option: %w", err)
	}
	return nil
}

func (r *OSOptionRepository) FindByID(ctx context.Context, id string) (*domain.OSOption, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var o domain.OSOption
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&o); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOSOptionNotFound
		}
		return nil, fmt.Errorf("find os option: %w", err)
	}
	return &o, nil
}

func (r *OSOptionRepository) List(ctx context.Context) ([]*domain.OSOption, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list os options: %w", err)
	}
	defer cursor.Close(ctx)

	var opts []*domain.OSOption
	if err := cursor.All(ctx, &opts); err != nil {
		return nil, fmt.Errorf("decode os options: %w", err)
	}
	return opts, nil
}

func (r *OSOptionRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete os option: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrOSOptionNotFound
	}
	return nil
}

// EnsureIndexes enforces name uniqueness.
func (r *OSOptionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: uniqueIndex(),
	})
	return err
}
