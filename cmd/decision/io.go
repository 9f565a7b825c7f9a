package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/noiseOnTheNet/post010-binary-decision-tree/dataset"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/dataset/csv"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/dataset/mongodataset"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/dataset/sqldataset"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/dataset/sqldataset/pgadapter"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/dataset/sqldataset/sqlite3adapter"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/feature"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/tree"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/tree/json"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/tree/redisstore"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/redis.v5"
)

const storeRefPrefix = "store:"

func isPostgreSQL(location string) bool {
	return strings.HasPrefix(location, "postgresql://") || strings.HasPrefix(location, "postgres://")
}

func isMongoDB(location string) bool {
	return strings.HasPrefix(location, "mongodb://")
}

func isSqlite3(location string) bool {
	return strings.HasSuffix(location, ".db")
}

func (rc *rootCmdConfig) sqlAdapter(location string) (sqldataset.Adapter, error) {
	if isPostgreSQL(location) {
		rc.Logf("Creating PostgreSQL adapter for url %s...", location)
		return pgadapter.New(location)
	}
	rc.Logf("Creating SQLite3 adapter for file %s...", location)
	return sqlite3adapter.New(location, rc.maxDBConns)
}

/*
readTable reads a table with the given features from a CSV file
(STDIN when input is empty), an SQLite3 file, a PostgreSQL
database or a MongoDB database.
*/
func (rc *rootCmdConfig) readTable(ctx context.Context, input string, features []feature.Feature) (dataset.Table, error) {
	switch {
	case input == "":
		rc.Logf("Reading set from STDIN...")
		return csv.ReadTable(ctx, os.Stdin, features)
	case isMongoDB(input):
		rc.Logf("Connecting to MongoDB at %s...", input)
		session, err := mgo.Dial(input)
		if err != nil {
			return nil, fmt.Errorf("connecting to %s: %w", input, err)
		}
		defer session.Close()
		return mongodataset.Load(ctx, session, rc.relation, features)
	case isPostgreSQL(input), isSqlite3(input):
		adapter, err := rc.sqlAdapter(input)
		if err != nil {
			return nil, err
		}
		defer adapter.Close()
		return sqldataset.Load(ctx, adapter, rc.relation, features)
	}
	rc.Logf("Opening %s to read set...", input)
	return csv.ReadTableFromFilePath(ctx, input, features)
}

/*
writeTable writes the columns of the table for the given features
to a CSV file (STDOUT when output is empty), an SQLite3 file, a
PostgreSQL database or a MongoDB database.
*/
func (rc *rootCmdConfig) writeTable(ctx context.Context, output string, t dataset.Table, features []feature.Feature) error {
	switch {
	case output == "":
		rc.Logf("Using STDOUT to dump output set...")
		return csv.WriteTable(ctx, os.Stdout, t, features)
	case isMongoDB(output):
		rc.Logf("Connecting to MongoDB at %s...", output)
		session, err := mgo.Dial(output)
		if err != nil {
			return fmt.Errorf("connecting to %s: %w", output, err)
		}
		defer session.Close()
		n, err := mongodataset.Write(ctx, session, rc.relation, t, features)
		if err != nil {
			return err
		}
		total, err := mongodataset.Count(ctx, session, rc.relation)
		if err != nil {
			return fmt.Errorf("counting samples in %s: %w", rc.relation, err)
		}
		rc.Logf("%d samples written, %s holds %d samples", n, rc.relation, total)
		return nil
	case isPostgreSQL(output), isSqlite3(output):
		adapter, err := rc.sqlAdapter(output)
		if err != nil {
			return err
		}
		defer adapter.Close()
		n, err := sqldataset.Write(ctx, adapter, rc.relation, t, features)
		if err != nil {
			return err
		}
		total, err := sqldataset.Count(ctx, adapter, rc.relation)
		if err != nil {
			return fmt.Errorf("counting samples in %s: %w", rc.relation, err)
		}
		rc.Logf("%d samples written, %s holds %d samples", n, rc.relation, total)
		return nil
	}
	rc.Logf("Creating %s to dump output set...", output)
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()
	return csv.WriteTable(ctx, f, t, features)
}

func (rc *rootCmdConfig) treeStore() (tree.Store, error) {
	if rc.settings.Store.RedisAddr == "" {
		return nil, fmt.Errorf("no redis address configured to reach the tree store")
	}
	client := redis.NewClient(&redis.Options{
		Addr: rc.settings.Store.RedisAddr,
		DB:   rc.settings.Store.RedisDB,
	})
	return redisstore.New(client, rc.settings.Store.Prefix, json.NewNodeEncodeDecoder()), nil
}

/*
loadTree reads a tree in JSON from a file or, for store:ID references,
retrieves it from the tree store.
*/
func (rc *rootCmdConfig) loadTree(ctx context.Context, ref string) (*tree.Tree, error) {
	if strings.HasPrefix(ref, storeRefPrefix) {
		id := strings.TrimPrefix(ref, storeRefPrefix)
		store, err := rc.treeStore()
		if err != nil {
			return nil, err
		}
		defer store.Close(ctx)
		t, err := store.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, fmt.Errorf("tree %s: %w", id, tree.ErrTreeNotFound)
		}
		return t, nil
	}
	f, err := os.Open(ref)
	if err != nil {
		return nil, fmt.Errorf("reading tree in JSON from %s: %w", ref, err)
	}
	defer f.Close()
	t, err := json.ReadJSONTree(ctx, json.NewNodeEncodeDecoder(), f)
	if err != nil {
		err = fmt.Errorf("parsing tree in JSON from %s: %w", ref, err)
	}
	return t, err
}

/*
outputTree writes the tree in JSON to a file (STDOUT when ref is empty)
or, for store: references, saves it in the tree store: as a new tree
whose ID is printed when no ID follows the prefix, replacing the tree
with the given ID otherwise.
*/
func (rc *rootCmdConfig) outputTree(ctx context.Context, ref string, t *tree.Tree) error {
	if strings.HasPrefix(ref, storeRefPrefix) {
		id := strings.TrimPrefix(ref, storeRefPrefix)
		store, err := rc.treeStore()
		if err != nil {
			return err
		}
		defer store.Close(ctx)
		if id != "" {
			return store.Store(ctx, id, t)
		}
		id, err = store.Create(ctx, t)
		if err != nil {
			return err
		}
		fmt.Printf("%s%s\n", storeRefPrefix, id)
		return nil
	}
	var f *os.File
	var err error
	if ref == "" {
		f = os.Stdout
	} else {
		f, err = os.Create(ref)
		if err != nil {
			return err
		}
		defer f.Close()
	}
	return json.WriteJSONTree(ctx, t, json.NewNodeEncodeDecoder(), f)
}
