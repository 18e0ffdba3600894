package mongo

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"countries-inquiry-service/internal/query"
)

// Compile translates a predicate into a MongoDB filter document.
func Compile(p query.Predicate) bson.M {
	switch p := p.(type) {
	case nil:
		return bson.M{}
	case query.And:
		switch len(p) {
		case 0:
			return bson.M{}
		case 1:
			return Compile(p[0])
		}
		clauses := make(bson.A, 0, len(p))
		for _, child := range p {
			clauses = append(clauses, Compile(child))
		}
		return bson.M{"$and": clauses}
	case query.Or:
		if len(p) == 0 {
			return bson.M{"$expr": false}
		}
		clauses := make(bson.A, 0, len(p))
		for _, child := range p {
			clauses = append(clauses, Compile(child))
		}
		return bson.M{"$or": clauses}
	case query.Equals:
		return bson.M{p.Path: p.Value}
	case query.OneOf:
		return bson.M{p.Path: bson.M{"$in": bson.A(p.Values)}}
	case query.Range:
		cond := bson.M{}
		if p.Lower != nil {
			op := "$gte"
			if p.Lower.Exclusive {
				op = "$gt"
			}
			cond[op] = p.Lower.Value
		}
		if p.Upper != nil {
			op := "$lte"
			if p.Upper.Exclusive {
				op = "$lt"
			}
			cond[op] = p.Upper.Value
		}
		if len(cond) == 0 {
			cond["$type"] = "number"
		}
		return bson.M{p.Path: cond}
	case query.Contains:
		return bson.M{p.Path: primitive.Regex{Pattern: regexp.QuoteMeta(p.Substring), Options: "i"}}
	case query.Exists:
		return bson.M{p.Path: bson.M{"$exists": true}}
	case query.IDEquals:
		if oid, err := primitive.ObjectIDFromHex(p.ID); err == nil {
			return bson.M{query.FieldID: bson.M{"$in": bson.A{oid, p.ID}}}
		}
		return bson.M{query.FieldID: p.ID}
	default:
		return bson.M{"$expr": false}
	}
}

// Projection translates an inclusion mask. Nil means no projection.
func Projection(p query.Projection) bson.M {
	if p.IsAll() {
		return nil
	}
	out := bson.M{}
	for _, f := range p.Paths() {
		out[f] = 1
	}
	return out
}

// Sort translates a native sort field.
func Sort(f query.SortField) bson.D {
	dir := 1
	if f.Descending {
		dir = -1
	}
	return bson.D{{Key: f.Path, Value: dir}}
}
