package testimonials

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestListFilterBSON(t *testing.T) {
	published := bson.M{"isPublished": true}

	cases := []struct {
		name       string
		raw        string
		privileged bool
		want       bson.M
	}{
		{name: "public default", raw: "", want: published},
		{name: "admin omitted flag stays published", raw: "", privileged: true, want: published},
		{name: "admin all", raw: "published=all", privileged: true, want: bson.M{}},
		{
			name: "rating verified service",
			raw:  "minRating=4&verified=true&service=all",
			want: bson.M{
				"isPublished":        true,
				"rating":             bson.M{"$gte": 4},
				"verificationStatus": VerificationVerified,
			},
		},
		{name: "rating out of range ignored", raw: "minRating=9", want: published},
		{name: "rating zero ignored", raw: "minRating=0&service=SEO", want: bson.M{"isPublished": true, "service": "SEO"}},
		{
			name:       "search",
			raw:        "published=false&search=jo",
			privileged: true,
			want: bson.M{"$or": bson.A{
				bson.M{"client.name": primitive.Regex{Pattern: "jo", Options: "i"}},
				bson.M{"quote": primitive.Regex{Pattern: "jo", Options: "i"}},
				bson.M{"client.company": primitive.Regex{Pattern: "jo", Options: "i"}},
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
