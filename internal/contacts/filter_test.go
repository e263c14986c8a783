package contacts

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestListFilterBSON(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC)

	cases := []struct {
		name string
		raw  string
		want bson.M
	}{
		{name: "no filters", raw: "", want: bson.M{}},
		{
			name: "facets and sentinels",
			raw:  "status=new&priority=all&source=website&industry=all&serviceInterest=seo,,ppc",
			want: bson.M{
				"status":          "new",
				"source":          "website",
				"serviceInterest": bson.M{"$in": []string{"seo", "ppc"}},
			},
		},
		{name: "spam true", raw: "spam=true", want: bson.M{"isSpam": true}},
		{name: "spam false", raw: "spam=false", want: bson.M{"isSpam": false}},
		{name: "spam all", raw: "spam=all", want: bson.M{}},
		{
			name: "date range",
			raw:  "from=2026-01-01&to=2026-01-31T23:59:59Z",
			want: bson.M{"createdAt": bson.M{"$gte": from, "$lte": to}},
		},
		{name: "open range", raw: "from=2026-01-01", want: bson.M{"createdAt": bson.M{"$gte": from}}},
		{name: "malformed dates ignored", raw: "from=yesterday&to=31/01/2026", want: bson.M{}},
		{
			name: "search",
			raw:  "search=acme",
			want: bson.M{"$or": bson.A{
				bson.M{"name": primitive.Regex{Pattern: "acme", Options: "i"}},
				bson.M{"email": primitive.Regex{Pattern: "acme", Options: "i"}},
				bson.M{"company": primitive.Regex{Pattern: "acme", Options: "i"}},
				bson.M{"message": primitive.Regex{Pattern: "acme", Options: "i"}},
			}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			values, err := url.ParseQuery(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ParseListFilter(values).BSON())
		})
	}
}
