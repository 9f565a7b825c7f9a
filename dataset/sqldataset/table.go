package sqldataset

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/noiseOnTheNet/post010-binary-decision-tree/dataset"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/feature"
)

/*
Load takes a context, an adapter, the name of a database relation and a
slice of features and returns a dataset.Table with a column for every
feature built from the rows of the relation, or an error.
*/
func Load(ctx context.Context, a Adapter, relation string, features []feature.Feature) (dataset.Table, error) {
	rel, columns, err := names(a, relation, features)
	if err != nil {
		return nil, err
	}
	var queryBuffer bytes.Buffer
	queryBuffer.WriteString("SELECT ")
	writeColumnList(&queryBuffer, columns)
	queryBuffer.WriteString(fmt.Sprintf(` FROM "%s"`, rel))
	rows, err := a.DB().QueryContext(ctx, queryBuffer.String())
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", relation, err)
	}
	defer rows.Close()
	tb := feature.NewTableBuilder(features)
	for j := 0; rows.Next(); j++ {
		categoricalValues := make([]sql.NullString, len(features))
		continuousValues := make([]sql.NullFloat64, len(features))
		values := make([]interface{}, len(features))
		for i, f := range features {
			if f.Kind() == dataset.Continuous {
				values[i] = &continuousValues[i]
			} else {
				values[i] = &categoricalValues[i]
			}
		}
		if err = rows.Scan(values...); err != nil {
			return nil, fmt.Errorf("scanning row %d of %s: %w", j, relation, err)
		}
		rawSample := make(map[string]interface{}, len(features))
		for i, f := range features {
			if continuousValues[i].Valid {
				rawSample[f.Name()] = continuousValues[i].Float64
			}
			if categoricalValues[i].Valid {
				rawSample[f.Name()] = categoricalValues[i].String
			}
		}
		if err = tb.AddRow(rawSample); err != nil {
			return nil, fmt.Errorf("parsing row %d of %s: %w", j, relation, err)
		}
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return tb.Table()
}

/*
Write takes a context, an adapter, the name of a database relation, a table
and a slice of features, creates the relation if it does not exist and
inserts the rows of the table for the given features in it. It returns the
number of rows inserted and an error if not all could be.
*/
func Write(ctx context.Context, a Adapter, relation string, t dataset.Table, features []feature.Feature) (int, error) {
	rel, columns, err := names(a, relation, features)
	if err != nil {
		return 0, err
	}
	if len(columns) == 0 {
		return 0, fmt.Errorf("no features to store")
	}
	tableColumns := make([]dataset.Column, len(features))
	for i, f := range features {
		tableColumns[i], err = t.Column(f.Name())
		if err != nil {
			return 0, err
		}
	}
	if err = createRelation(ctx, a, rel, columns, features); err != nil {
		return 0, err
	}
	tx, err := a.DB().BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	var written int
	for written < t.Count() {
		end := written + MaxSampleInsertionsPerStatement
		if end > t.Count() {
			end = t.Count()
		}
		stmt, args, err := insertStatement(a, rel, columns, tableColumns, features, written, end)
		if err == nil {
			_, err = tx.ExecContext(ctx, stmt, args...)
		}
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("inserting rows %d to %d: %w", written, end, err)
		}
		written = end
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return written, nil
}

/*
Count takes a context, an adapter and the name of a database relation
and returns the number of rows in the relation.
*/
func Count(ctx context.Context, a Adapter, relation string) (int, error) {
	rel, err := a.ColumnName(relation)
	if err != nil {
		return 0, err
	}
	var count int
	err = a.DB().QueryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM "%s"`, rel)).Scan(&count)
	return count, err
}

func names(a Adapter, relation string, features []feature.Feature) (string, []string, error) {
	rel, err := a.ColumnName(relation)
	if err != nil {
		return "", nil, fmt.Errorf("relation name: %w", err)
	}
	columns := make([]string, len(features))
	for i, f := range features {
		columns[i], err = a.ColumnName(f.Name())
		if err != nil {
			return "", nil, err
		}
	}
	return rel, columns, nil
}

func writeColumnList(buf *bytes.Buffer, columns []string) {
	for i, c := range columns {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(fmt.Sprintf(`"%s"`, c))
	}
}

func createRelation(ctx context.Context, a Adapter, rel string, columns []string, features []feature.Feature) error {
	var createStmtBuf bytes.Buffer
	createStmtBuf.WriteString(fmt.Sprintf(`CREATE TABLE IF NOT EXISTS "%s"(`, rel))
	for i, c := range columns {
		if i > 0 {
			createStmtBuf.WriteString(", ")
		}
		columnType := a.CategoricalType()
		if features[i].Kind() == dataset.Continuous {
			columnType = a.ContinuousType()
		}
		createStmtBuf.WriteString(fmt.Sprintf(`"%s" %s NULL`, c, columnType))
	}
	createStmtBuf.WriteString(")")
	_, err := a.DB().ExecContext(ctx, createStmtBuf.String())
	if err != nil {
		return fmt.Errorf("ensuring %s table exists: %w", rel, err)
	}
	return nil
}

func insertStatement(a Adapter, rel string, columns []string, tableColumns []dataset.Column, features []feature.Feature, start, end int) (string, []interface{}, error) {
	var insertStmtBuffer bytes.Buffer
	insertStmtBuffer.WriteString(fmt.Sprintf(`INSERT INTO "%s" (`, rel))
	writeColumnList(&insertStmtBuffer, columns)
	insertStmtBuffer.WriteString(") VALUES ")
	args := make([]interface{}, 0, (end-start)*len(columns))
	for r := start; r < end; r++ {
		if r > start {
			insertStmtBuffer.WriteString(", ")
		}
		insertStmtBuffer.WriteString("(")
		for i, c := range tableColumns {
			if i > 0 {
				insertStmtBuffer.WriteString(", ")
			}
			insertStmtBuffer.WriteString(a.Placeholder(len(args) + 1))
			v, err := rawValue(features[i], c, r)
			if err != nil {
				return "", nil, err
			}
			args = append(args, v)
		}
		insertStmtBuffer.WriteString(")")
	}
	return insertStmtBuffer.String(), args, nil
}

func rawValue(f feature.Feature, c dataset.Column, row int) (interface{}, error) {
	if c.Missing(row) {
		return nil, nil
	}
	switch c := c.(type) {
	case *dataset.ContinuousColumn:
		v, _ := c.Value(row)
		if math.IsInf(v, 0) {
			return nil, fmt.Errorf("cannot store infinite value for %s", f.Name())
		}
		return v, nil
	case *dataset.CategoricalColumn:
		code, _ := c.Code(row)
		cf, ok := f.(*feature.CategoricalFeature)
		if !ok {
			return nil, fmt.Errorf("feature %s is not categorical", f.Name())
		}
		return cf.Decode(code)
	}
	return nil, fmt.Errorf("unknown column type %T", c)
}
