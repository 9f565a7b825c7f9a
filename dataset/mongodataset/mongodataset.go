/*
Package mongodataset loads dataset tables from MongoDB collections and
writes them back, a document per row with a field per feature. Missing
values are absent fields.
*/
package mongodataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/noiseOnTheNet/post010-binary-decision-tree/dataset"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/feature"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

// DefaultCollection is the collection used when none is given
const DefaultCollection = "samples"

/*
Load takes a context, a MongoDB session, the name of a collection in the
default database of the session and a slice of features and returns a
dataset.Table with a column for every feature built from the documents in
the collection, or an error.
*/
func Load(ctx context.Context, session *mgo.Session, collection string, features []feature.Feature) (dataset.Table, error) {
	if err := validateFeatureNames(features); err != nil {
		return nil, err
	}
	projection := bson.M{"_id": 0}
	for _, f := range features {
		projection[f.Name()] = 1
	}
	tb := feature.NewTableBuilder(features)
	iter := samplesCollection(session, collection).Find(nil).Select(projection).Iter()
	var doc bson.M
	for iter.Next(&doc) {
		if err := ctx.Err(); err != nil {
			iter.Close()
			return nil, err
		}
		if err := tb.AddRow(doc); err != nil {
			iter.Close()
			return nil, fmt.Errorf("parsing document %d of %s: %w", tb.Count(), collection, err)
		}
		doc = nil
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", collection, err)
	}
	return tb.Table()
}

/*
Write takes a context, a MongoDB session, the name of a collection, a table
and a slice of features and inserts a document for every row of the table
with the values of the given features, categorical values decoded. It returns
the number of documents inserted.
*/
func Write(ctx context.Context, session *mgo.Session, collection string, t dataset.Table, features []feature.Feature) (int, error) {
	if err := validateFeatureNames(features); err != nil {
		return 0, err
	}
	columns := make([]dataset.Column, len(features))
	for i, f := range features {
		c, err := t.Column(f.Name())
		if err != nil {
			return 0, err
		}
		columns[i] = c
	}
	docs := make([]interface{}, 0, t.Count())
	for r := 0; r < t.Count(); r++ {
		doc := make(bson.M)
		for i, f := range features {
			switch c := columns[i].(type) {
			case *dataset.ContinuousColumn:
				if v, ok := c.Value(r); ok {
					doc[f.Name()] = v
				}
			case *dataset.CategoricalColumn:
				code, ok := c.Code(r)
				if !ok {
					continue
				}
				cf, isCategorical := f.(*feature.CategoricalFeature)
				if !isCategorical {
					return 0, fmt.Errorf("feature %s is not categorical", f.Name())
				}
				v, err := cf.Decode(code)
				if err != nil {
					return 0, err
				}
				doc[f.Name()] = v
			}
		}
		docs = append(docs, doc)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(docs) == 0 {
		return 0, nil
	}
	err := samplesCollection(session, collection).Insert(docs...)
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}

/*
Count takes a MongoDB session and the name of a collection and returns
the number of documents in the collection.
*/
func Count(ctx context.Context, session *mgo.Session, collection string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return samplesCollection(session, collection).Count()
}

func validateFeatureNames(features []feature.Feature) error {
	for _, f := range features {
		fName := f.Name()
		if fName == "_id" {
			return fmt.Errorf("invalid feature name %q: reserved collection field", "_id")
		}
		if strings.ContainsAny(fName, ".$") {
			return fmt.Errorf("invalid feature name %q: contains reserved characters %q or %q", fName, ".", "$")
		}
	}
	return nil
}

func samplesCollection(session *mgo.Session, collection string) *mgo.Collection {
	if collection == "" {
		collection = DefaultCollection
	}
	return session.DB("").C(collection)
}
