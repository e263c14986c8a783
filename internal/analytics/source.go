package analytics

import (
	"context"
	"fmt"
	"time"

	"agency-backend/internal/db"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Source runs the primitive aggregations the reports are assembled from.
type Source interface {
	Count(ctx context.Context, c Collection, filter bson.M) (int64, error)
	// GroupCount counts documents per distinct value of field. With unwind,
	// array fields contribute one group entry per element.
	GroupCount(ctx context.Context, c Collection, filter bson.M, field string, unwind bool) ([]Bucket, error)
	GroupSum(ctx context.Context, c Collection, filter bson.M, field, sumField string) ([]Bucket, error)
	Sum(ctx context.Context, c Collection, filter bson.M, field string) (int64, error)
	Average(ctx context.Context, c Collection, filter bson.M, field string) (float64, error)
	Timeline(ctx context.Context, c Collection, since time.Time, daily bool, loc *time.Location) ([]TimeBucket, error)
	Top(ctx context.Context, c Collection, filter bson.M, field string, limit int) ([]Ranked, error)
	Recent(ctx context.Context, c Collection, limit int) ([]Event, error)
}

type MongoSource struct {
	cols *db.Collections
}

func NewMongoSource(cols *db.Collections) *MongoSource {
	return &MongoSource{cols: cols}
}

func (m *MongoSource) collection(c Collection) (*mongo.Collection, error) {
	switch c {
	case Blogs:
		return m.cols.Blogs, nil
	case CaseStudies:
		return m.cols.CaseStudies, nil
	case Contacts:
		return m.cols.Contacts, nil
	case Services:
		return m.cols.Services, nil
	case Testimonials:
		return m.cols.Testimonials, nil
	case Users:
		return m.cols.Users, nil
	}
	return nil, fmt.Errorf("analytics: unknown collection %q", c)
}

func aggregate[T any](ctx context.Context, m *MongoSource, c Collection, pipeline mongo.Pipeline) ([]T, error) {
	col, err := m.collection(c)
	if err != nil {
		return nil, err
	}
	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	return db.DecodeAll[T](ctx, cursor)
}

func (m *MongoSource) Count(ctx context.Context, c Collection, filter bson.M) (int64, error) {
	col, err := m.collection(c)
	if err != nil {
		return 0, err
	}
	return col.CountDocuments(ctx, filter)
}

func (m *MongoSource) GroupCount(ctx context.Context, c Collection, filter bson.M, field string, unwind bool) ([]Bucket, error) {
	pipeline := mongo.Pipeline{{{Key: "$match", Value: filter}}}
	if unwind {
		pipeline = append(pipeline, bson.D{{Key: "$unwind", Value: "$" + field}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$toString": "$" + field},
			"count": bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	)
	return aggregate[Bucket](ctx, m, c, pipeline)
}

func (m *MongoSource) GroupSum(ctx context.Context, c Collection, filter bson.M, field, sumField string) ([]Bucket, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$toString": "$" + field},
			"count": bson.M{"$sum": "$" + sumField},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}
	return aggregate[Bucket](ctx, m, c, pipeline)
}

type reduced struct {
	Value float64 `bson:"value"`
}

func (m *MongoSource) reduce(ctx context.Context, c Collection, filter bson.M, op, field string) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"value": bson.M{op: "$" + field},
		}}},
	}
	rows, err := aggregate[reduced](ctx, m, c, pipeline)
	if err != nil || len(rows) == 0 {
		return 0, err
	}
	return rows[0].Value, nil
}

func (m *MongoSource) Sum(ctx context.Context, c Collection, filter bson.M, field string) (int64, error) {
	v, err := m.reduce(ctx, c, filter, "$sum", field)
	return int64(v), err
}

func (m *MongoSource) Average(ctx context.Context, c Collection, filter bson.M, field string) (float64, error) {
	return m.reduce(ctx, c, filter, "$avg", field)
}

func (m *MongoSource) Timeline(ctx context.Context, c Collection, since time.Time, daily bool, loc *time.Location) ([]TimeBucket, error) {
	part := func(op string) bson.M {
		return bson.M{op: bson.M{"date": "$createdAt", "timezone": loc.String()}}
	}
	id := bson.M{"year": part("$year"), "month": part("$month")}
	if daily {
		id["day"] = part("$dayOfMonth")
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"createdAt": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{"_id": id, "count": bson.M{"$sum": 1}}}},
		{{Key: "$project", Value: bson.M{
			"_id":   0,
			"year":  "$_id.year",
			"month": "$_id.month",
			"day":   "$_id.day",
			"count": 1,
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "year", Value: 1}, {Key: "month", Value: 1}, {Key: "day", Value: 1}}}},
	}
	return aggregate[TimeBucket](ctx, m, c, pipeline)
}

func (m *MongoSource) Top(ctx context.Context, c Collection, filter bson.M, field string, limit int) ([]Ranked, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$sort", Value: bson.D{{Key: field, Value: -1}}}},
		{{Key: "$limit", Value: int64(limit)}},
		{{Key: "$project", Value: bson.M{
			"title":    1,
			"category": 1,
			"slug":     bson.M{"$ifNull": bson.A{"$slug", "$seo.slug"}},
			"value":    bson.M{"$ifNull": bson.A{"$" + field, 0}},
		}}},
	}
	return aggregate[Ranked](ctx, m, c, pipeline)
}

func (m *MongoSource) Recent(ctx context.Context, c Collection, limit int) ([]Event, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$limit", Value: int64(limit)}},
		{{Key: "$project", Value: bson.M{
			"title":     bson.M{"$ifNull": bson.A{"$title", "$name", "$client.name"}},
			"status":    1,
			"createdAt": 1,
		}}},
	}
	return aggregate[Event](ctx, m, c, pipeline)
}
