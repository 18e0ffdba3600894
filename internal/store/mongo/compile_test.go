package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"countries-inquiry-service/internal/query"
)

func TestCompile(t *testing.T) {
	lower, upper := 50000000.0, 100000000.0

	tests := []struct {
		name string
		p    query.Predicate
		want bson.M
	}{
		{
			name: "match all",
			p:    query.All(),
			want: bson.M{},
		},
		{
			name: "empty or matches nothing",
			p:    query.Or{},
			want: bson.M{"$expr": false},
		},
		{
			name: "equals",
			p:    query.RegionFilter("Europe"),
			want: bson.M{"region": "Europe"},
		},
		{
			name: "single child conjunction unwraps",
			p:    query.And{query.LandlockedFilter()},
			want: bson.M{"landlocked": true},
		},
		{
			name: "population range in region",
			p:    query.RangeFilter(query.FieldPopulation, &lower, &upper, "Europe"),
			want: bson.M{"$and": bson.A{
				bson.M{"population": bson.M{"$gte": lower, "$lte": upper}},
				bson.M{"region": "Europe"},
			}},
		},
		{
			name: "exclusive lower bound",
			p:    query.PositiveArea(),
			want: bson.M{"areaKm2": bson.M{"$gt": 0.0}},
		},
		{
			name: "unbounded range requires a number",
			p:    query.Range{Path: "areaKm2"},
			want: bson.M{"areaKm2": bson.M{"$type": "number"}},
		},
		{
			name: "one of",
			p:    query.CompareFilter([]string{"deu", "fra"}),
			want: bson.M{"alpha3Code": bson.M{"$in": bson.A{"DEU", "FRA"}}},
		},
		{
			name: "contains escapes the needle",
			p:    query.CapitalFilter("St. John's"),
			want: bson.M{"capital": primitive.Regex{Pattern: `St\. John's`, Options: "i"}},
		},
		{
			name: "exists",
			p:    query.TranslationFilter("fr"),
			want: bson.M{"translations.fr": bson.M{"$exists": true}},
		},
		{
			name: "plain string id",
			p:    query.IDEquals{ID: "deu"},
			want: bson.M{"_id": "deu"},
		},
		{
			name: "code lookup",
			p:    query.CodeLookup("de"),
			want: bson.M{"$or": bson.A{
				bson.M{"alpha2Code": "DE"},
				bson.M{"alpha3Code": "DE"},
				bson.M{"numericCode": "de"},
				bson.M{"cioc": "DE"},
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compile(tt.p))
		})
	}
}

func TestCompileObjectID(t *testing.T) {
	oid := primitive.NewObjectID()
	got := Compile(query.IDEquals{ID: oid.Hex()})
	assert.Equal(t, bson.M{"_id": bson.M{"$in": bson.A{oid, oid.Hex()}}}, got)
}

func TestProjectionAndSort(t *testing.T) {
	assert.Nil(t, Projection(query.Projection{}))
	assert.Equal(t, bson.M{"name": 1, "region": 1}, Projection(query.ParseFields("name.common,name,region")))

	assert.Equal(t, bson.D{{Key: "population", Value: -1}}, Sort(query.SortField{Path: "population", Descending: true}))
	assert.Equal(t, bson.D{{Key: "alpha3Code", Value: 1}}, Sort(query.SortField{Path: "alpha3Code"}))
}

func TestNativeID(t *testing.T) {
	s := &Store{}
	oid := primitive.NewObjectID()

	got, ok := s.NativeID(oid)
	assert.True(t, ok)
	assert.Equal(t, oid.Hex(), got)

	_, ok = s.NativeID(oid.Hex())
	assert.False(t, ok)
}

func TestPlain(t *testing.T) {
	oid := primitive.NewObjectID()
	raw := bson.M{
		"_id":        oid,
		"name":       bson.M{"common": "Germany"},
		"currencies": bson.A{bson.D{{Key: "code", Value: "EUR"}}},
	}

	got := plain(raw)
	assert.Equal(t, map[string]any{
		"_id":        oid,
		"name":       map[string]any{"common": "Germany"},
		"currencies": []any{map[string]any{"code": "EUR"}},
	}, got)

	normalized := query.Normalize(got.(map[string]any), (&Store{}).NativeID)
	assert.Equal(t, oid.Hex(), normalized["_id"])
}
