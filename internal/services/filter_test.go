package services

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestListFilterBSON(t *testing.T) {
	active := bson.M{"isActive": true}

	cases := []struct {
		name       string
		raw        string
		privileged bool
		want       bson.M
	}{
		{name: "public default", raw: "", want: active},
		{name: "admin omitted flag stays active", raw: "", privileged: true, want: active},
		{name: "admin all", raw: "active=all", privileged: true, want: bson.M{}},
		{
			name: "public cannot lift gate",
			raw:  "active=false&category=Web&featured=true",
			want: bson.M{"isActive": true, "isFeatured": true, "category": "Web"},
		},
		{name: "category sentinel", raw: "category=all", want: active},
		{
			name:       "search",
			raw:        "active=false&search=seo",
			privileged: true,
			want: bson.M{"$or": bson.A{
				bson.M{"title": primitive.Regex{Pattern: "seo", Options: "i"}},
				bson.M{"description": primitive.Regex{Pattern: "seo", Options: "i"}},
			}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			values, err := url.ParseQuery(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ParseListFilter(values, tc.privileged).BSON())
		})
	}
}
