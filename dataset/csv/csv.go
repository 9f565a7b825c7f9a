/*
Package csv reads and writes dataset tables as CSV documents whose
header names the features of each column and where '?' stands for a
missing value.
*/
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/noiseOnTheNet/post010-binary-decision-tree/dataset"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/feature"
)

/*
ReadTable takes a context, an io.Reader for a CSV stream and a slice of
features and returns a dataset.Table with a column for every feature in
the CSV header or an error.

The header or first row of the CSV content is expected to consist of the names
of features in the given slice; the last column may name an unknown feature,
in which case it is ignored. The rest of the rows should consist of valid
values for the all features and/or the '?' string to indicate an undefined value.
*/
func ReadTable(ctx context.Context, reader io.Reader, features []feature.Feature) (dataset.Table, error) {
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	columns, err := parseFeaturesFromCSVHeader(header, features)
	if err != nil {
		return nil, err
	}
	headerFeatures := make([]feature.Feature, 0, len(columns))
	for _, f := range columns {
		if f != nil {
			headerFeatures = append(headerFeatures, f)
		}
	}
	tb := feature.NewTableBuilder(headerFeatures)
	for l := 2; ; l++ {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading body: %w", err)
		}
		values := make(map[string]interface{}, len(columns))
		for i, f := range columns {
			if f != nil && i < len(row) {
				values[f.Name()] = row[i]
			}
		}
		if err = tb.AddRow(values); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", l, err)
		}
	}
	return tb.Table()
}

/*
ReadTableFromFilePath takes a context, a filepath string and a slice of
features, opens the file to which the filepath points to and uses ReadTable
to return a dataset.Table or an error read from it. If the filepath is ""
os.Stdin is read instead. It will return an error if the given filepath
cannot be opened for reading.
*/
func ReadTableFromFilePath(ctx context.Context, filepath string, features []feature.Feature) (dataset.Table, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, fmt.Errorf("reading table: %w", err)
		}
		defer f.Close()
	}
	t, err := ReadTable(ctx, f, features)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %w", filepath, err)
	}
	return t, err
}

/*
WriteTable takes a context, an io.Writer, a table and a slice of features
and writes the columns of the table for the given features as CSV, decoding
categorical codes into their values and writing '?' for missing values.
*/
func WriteTable(ctx context.Context, writer io.Writer, t dataset.Table, features []feature.Feature) error {
	w := csv.NewWriter(writer)
	columns := make([]dataset.Column, len(features))
	header := make([]string, len(features))
	for i, f := range features {
		c, err := t.Column(f.Name())
		if err != nil {
			return err
		}
		columns[i] = c
		header[i] = f.Name()
	}
	if err := w.Write(header); err != nil {
		return err
	}
	row := make([]string, len(features))
	for r := 0; r < t.Count(); r++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for i, c := range columns {
			v, err := formatValue(features[i], c, r)
			if err != nil {
				return fmt.Errorf("writing row %d: %w", r, err)
			}
			row[i] = v
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatValue(f feature.Feature, c dataset.Column, row int) (string, error) {
	if c.Missing(row) {
		return feature.UndefinedValue, nil
	}
	switch c := c.(type) {
	case *dataset.ContinuousColumn:
		v, _ := c.Value(row)
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case *dataset.CategoricalColumn:
		code, _ := c.Code(row)
		if cf, ok := f.(*feature.CategoricalFeature); ok {
			return cf.Decode(code)
		}
		return strconv.FormatUint(uint64(code), 10), nil
	}
	return "", fmt.Errorf("unknown column type %T", c)
}

func parseFeaturesFromCSVHeader(header []string, features []feature.Feature) ([]feature.Feature, error) {
	columns := make([]feature.Feature, len(header))
	for i, name := range header {
		f := feature.Find(features, name)
		if f == nil && i != len(header)-1 {
			return nil, fmt.Errorf("parsing header: reference to unknown feature %s", name)
		}
		columns[i] = f
	}
	return columns, nil
}
