package pgadapter

import (
	"database/sql"
	"fmt"
	"strings"

	// Import of postgresql driver
	_ "github.com/lib/pq"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/dataset/sqldataset"
)

type adapter struct {
	db *sql.DB
}

/*
New takes a PostgreSQL connection URL and returns an Adapter that works
on its database or an error if the URL cannot be used.
*/
func New(url string) (sqldataset.Adapter, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}
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
	if len(featureName) > 63 {
		return "", fmt.Errorf(`feature name '%s' exceeds 63 characters`, featureName)
	}
	return featureName, nil
}

func (a *adapter) Placeholder(i int) string {
	return fmt.Sprintf("$%d", i)
}

func (a *adapter) ContinuousType() string {
	return "DOUBLE PRECISION"
}

func (a *adapter) CategoricalType() string {
	return "TEXT"
}

func (a *adapter) Close() error {
	return a.db.Close()
}
