package sqlite3adapter

import (
	"database/sql"
	"fmt"
	"strings"

	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/dataset/sqldataset"
)

type adapter struct {
	db *sql.DB
}

/*
New takes a path to an SQLite3 database file and a limit of open
connections (0 meaning unlimited) and returns an Adapter that works
on the file's database or an error if it fails to open as an sqlite3
database.
*/
func New(path string, maxConns int) (sqldataset.Adapter, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(maxConns)
	return &adapter{db}, nil
}

func (a *adapter) DB() *sql.DB {
	return a.db
}

func (a *adapter) ColumnName(featureName string) (string, error) {
	if featureName == "" {
		return "", fmt.Errorf("empty names cannot be used")
	}
	if strings.ContainsAny(featureName, `"`) {
		return "", fmt.Errorf(`feature name '%s' contains invalid character '"'`, featureName)
	}
	return featureName, nil
}

func (a *adapter) Placeholder(int) string {
	return "?"
}

func (a *adapter) ContinuousType() string {
	return "REAL"
}

func (a *adapter) CategoricalType() string {
	return "TEXT"
}

func (a *adapter) Close() error {
	return a.db.Close()
}
