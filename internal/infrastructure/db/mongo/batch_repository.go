package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fincount/counting-api/internal/core/domain"
)

const batchesCollection = "batches"

type BatchRepository struct {
	coll *mongo.Collection
}

func NewBatchRepository(db *mongo.Database) *BatchRepository {
	return &BatchRepository{coll: db.Collection(batchesCollection)}
}

func (r *BatchRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Batch, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	batches := []*domain.Batch{}
	for cur.Next(ctx) {
		var b domain.Batch
		if err := cur.Decode(&b); err != nil {
			return nil, err
		}
		batches = append(batches, &b)
	}
	return batches, cur.Err()
}

func (r *BatchRepository) FindByID(ctx context.Context, id string) (*domain.Batch, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *BatchRepository) FindByIDForUser(ctx context.Context, id, userID string) (*domain.Batch, error) {
	return r.findOne(ctx, bson.M{"_id": id, "user_id": userID})
}

func (r *BatchRepository) findOne(ctx context.Context, filter bson.M) (*domain.Batch, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var b domain.Batch
	if err := r.coll.FindOne(ctx, filter).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBatchNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *BatchRepository) Create(ctx context.Context, batch *domain.Batch) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, batch)
	return err
}

func (r *BatchRepository) Update(ctx context.Context, batch *domain.Batch) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": batch.ID}, batch)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrBatchNotFound
	}
	return nil
}

func (r *BatchRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrBatchNotFound
	}
	return nil
}

// EnsureIndexes creates the owner lookup index on the batches collection.
func (r *BatchRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	})
	return err
}
