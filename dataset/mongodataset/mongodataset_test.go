package mongodataset

import (
	"context"
	"math"
	"os"
	"testing"

	"github.com/noiseOnTheNet/post010-binary-decision-tree/dataset"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mgo "gopkg.in/mgo.v2"
)

func TestValidateFeatureNames(t *testing.T) {
	assert.NoError(t, validateFeatureNames([]feature.Feature{feature.NewContinuousFeature("width")}))
	assert.Error(t, validateFeatureNames([]feature.Feature{feature.NewContinuousFeature("_id")}))
	assert.Error(t, validateFeatureNames([]feature.Feature{feature.NewContinuousFeature("a.b")}))
	assert.Error(t, validateFeatureNames([]feature.Feature{feature.NewContinuousFeature("$a")}))
}

// testSession dials the MongoDB server at DECISION_TEST_MONGODB_URL,
// skipping the test when it is not set.
func testSession(t *testing.T) *mgo.Session {
	url := os.Getenv("DECISION_TEST_MONGODB_URL")
	if url == "" {
		t.Skip("DECISION_TEST_MONGODB_URL not set")
	}
	session, err := mgo.Dial(url)
	if err != nil {
		t.Skipf("mongodb at %s not reachable: %v", url, err)
	}
	return session
}

func TestWriteLoadAndCount(t *testing.T) {
	session := testSession(t)
	defer session.Close()
	const collection = "decision_test_samples"
	session.DB("").C(collection).DropCollection()
	defer session.DB("").C(collection).DropCollection()

	features := []feature.Feature{
		feature.NewContinuousFeature("length"),
		feature.NewCategoricalFeature("species", []string{"setosa", "virginica"}),
	}
	tbl, err := dataset.New(
		dataset.NewContinuousColumn("length", []float64{1.5, math.NaN(), 4.5}),
		dataset.CategoricalOf("species", 0, 1, -1),
	)
	require.NoError(t, err)

	ctx := context.Background()
	n, err := Write(ctx, session, collection, tbl, features)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	loaded, err := Load(ctx, session, collection, features)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Count())
	c, err := loaded.Column("species")
	require.NoError(t, err)
	assert.Equal(t, map[dataset.Code]int{0: 1, 1: 1}, c.(*dataset.CategoricalColumn).ValueCounts())

	count, err := Count(ctx, session, collection)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = Count(cancelled, session, collection)
	assert.Equal(t, context.Canceled, err)
}
