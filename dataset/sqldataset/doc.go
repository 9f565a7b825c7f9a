/*
Package sqldataset loads dataset tables from SQL databases and writes
them back.

A table is stored in a database relation with a nullable column for every
feature: categorical features as text holding the feature value and
continuous features as real numbers. NULL stands for a missing value.

The SQL dialect of each database is provided by an Adapter, such as the
ones in packages sqlite3adapter and pgadapter.
*/
package sqldataset
