package casestudies

import (
	"context"

	"agency-backend/internal/db"
	"agency-backend/internal/query"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Create(ctx context.Context, item CaseStudy) error
	Replace(ctx context.Context, item CaseStudy) error
	Delete(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string) (CaseStudy, error)
	GetBySlug(ctx context.Context, slug string) (CaseStudy, error)
	List(ctx context.Context, filter ListFilter) ([]CaseStudy, error)
	Count(ctx context.Context, filter ListFilter) (int64, error)
	IncrementViews(ctx context.Context, id string) error
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, item CaseStudy) error {
	_, err := r.col.InsertOne(ctx, item)
	return err
}

func (r *MongoRepository) Replace(ctx context.Context, item CaseStudy) error {
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

func (r *MongoRepository) GetByID(ctx context.Context, id string) (CaseStudy, error) {
	var item CaseStudy
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		return CaseStudy{}, err
	}
	return item, nil
}

func (r *MongoRepository) GetBySlug(ctx context.Context, slug string) (CaseStudy, error) {
	var item CaseStudy
	if err := r.col.FindOne(ctx, bson.M{"seo.slug": slug}).Decode(&item); err != nil {
		return CaseStudy{}, err
	}
	return item, nil
}

func (r *MongoRepository) List(ctx context.Context, filter ListFilter) ([]CaseStudy, error) {
	opts := filter.Page.Apply(options.Find().SetSort(query.SortBSON(filter.Sort)))
	cursor, err := r.col.Find(ctx, filter.BSON(), opts)
	if err != nil {
		return nil, err
	}
	return db.DecodeAll[CaseStudy](ctx, cursor)
}

func (r *MongoRepository) Count(ctx context.Context, filter ListFilter) (int64, error) {
	return r.col.CountDocuments(ctx, filter.BSON())
}

func (r *MongoRepository) IncrementViews(ctx context.Context, id string) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"viewCount": 1}})
	return err
}
