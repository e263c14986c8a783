package testimonials

import (
	"context"

	"agency-backend/internal/db"
	"agency-backend/internal/query"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Create(ctx context.Context, item Testimonial) error
	Replace(ctx context.Context, item Testimonial) error
	Delete(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string) (Testimonial, error)
	List(ctx context.Context, filter ListFilter) ([]Testimonial, error)
	Count(ctx context.Context, filter ListFilter) (int64, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, item Testimonial) error {
	_, err := r.col.InsertOne(ctx, item)
	return err
}

func (r *MongoRepository) Replace(ctx context.Context, item Testimonial) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": item.ID}, item)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (Testimonial, error) {
	var item Testimonial
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		return Testimonial{}, err
	}
	return item, nil
}

func (r *MongoRepository) List(ctx context.Context, filter ListFilter) ([]Testimonial, error) {
	opts := filter.Page.Apply(options.Find().SetSort(query.SortBSON(filter.Sort)))
	cursor, err := r.col.Find(ctx, filter.BSON(), opts)
	if err != nil {
		return nil, err
	}
	return db.DecodeAll[Testimonial](ctx, cursor)
}

func (r *MongoRepository) Count(ctx context.Context, filter ListFilter) (int64, error) {
	return r.col.CountDocuments(ctx, filter.BSON())
}
