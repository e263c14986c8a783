package blogs

import (
	"context"
	"time"

	"agency-backend/internal/db"
	"agency-backend/internal/query"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Create(ctx context.Context, item Blog) error
	Replace(ctx context.Context, item Blog) error
	Delete(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string) (Blog, error)
	GetBySlug(ctx context.Context, slug string) (Blog, error)
	List(ctx context.Context, filter ListFilter) ([]Blog, error)
	Count(ctx context.Context, filter ListFilter) (int64, error)
	IncrementViews(ctx context.Context, id string) error
	IncrementLikes(ctx context.Context, id string) (int64, error)
	AddComment(ctx context.Context, id string, c Comment) error
	ApproveComment(ctx context.Context, id, commentID string, now time.Time) (Blog, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, item Blog) error {
	_, err := r.col.InsertOne(ctx, item)
	return err
}

func (r *MongoRepository) Replace(ctx context.Context, item Blog) error {
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

func (r *MongoRepository) GetByID(ctx context.Context, id string) (Blog, error) {
	var item Blog
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		return Blog{}, err
	}
	return item, nil
}

func (r *MongoRepository) GetBySlug(ctx context.Context, slug string) (Blog, error) {
	var item Blog
	if err := r.col.FindOne(ctx, bson.M{"slug": slug}).Decode(&item); err != nil {
		return Blog{}, err
	}
	return item, nil
}

func (r *MongoRepository) List(ctx context.Context, filter ListFilter) ([]Blog, error) {
	opts := filter.Page.Apply(options.Find().SetSort(query.SortBSON(filter.Sort)))
	cursor, err := r.col.Find(ctx, filter.BSON(), opts)
	if err != nil {
		return nil, err
	}
	return db.DecodeAll[Blog](ctx, cursor)
}

func (r *MongoRepository) Count(ctx context.Context, filter ListFilter) (int64, error) {
	return r.col.CountDocuments(ctx, filter.BSON())
}

func (r *MongoRepository) IncrementViews(ctx context.Context, id string) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}})
	return err
}

func (r *MongoRepository) IncrementLikes(ctx context.Context, id string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"likes": 1})

	var out struct {
		Likes int64 `bson:"likes"`
	}
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"likes": 1}}, opts).Decode(&out)
	if err != nil {
		return 0, err
	}
	return out.Likes, nil
}

func (r *MongoRepository) AddComment(ctx context.Context, id string, c Comment) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$push": bson.M{"comments": c}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoRepository) ApproveComment(ctx context.Context, id, commentID string, now time.Time) (Blog, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{
		"comments.$.isApproved": true,
		"updatedAt":             now,
	}}

	var updated Blog
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id, "comments._id": commentID}, update, opts).Decode(&updated)
	if err != nil {
		return Blog{}, err
	}
	return updated, nil
}
