package sqldataset

import (
	"database/sql"
)

/*
Adapter is an interface providing the methods
needed to read and write tables with a database backend.
*/
type Adapter interface {
	// DB returns the database handle to run statements on
	DB() *sql.DB
	// ColumnName takes a feature name and returns the name to use
	// for its column in the database or an error if the name cannot
	// be used.
	ColumnName(string) (string, error)
	// Placeholder takes the 1-based position of a statement argument
	// and returns the placeholder to use for it.
	Placeholder(int) string
	// ContinuousType and CategoricalType return the database types of
	// continuous and categorical feature columns.
	ContinuousType() string
	CategoricalType() string
	// Close releases the database handle
	Close() error
}

/*
MaxSampleInsertionsPerStatement is the maximum number
of rows that are added with a single insert command by
Write. Writing more will result in making more insertion
commands.
*/
const MaxSampleInsertionsPerStatement = 10
