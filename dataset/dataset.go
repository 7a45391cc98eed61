// Package dataset loads and saves numeric datasets in CSV form.
//
// On disk a dataset stores one point per line. In memory a dataset is a
// column-major gonum matrix: rows are dimensions and columns are points, so
// loading transposes the file layout. Label files hold one integer class
// label per point, as a single column or a single row.
package dataset

import (
	"encoding/csv"
	"math"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mlkit/pkg/errors"
)

// LoadMatrix reads a CSV file of points into a dims×points matrix.
// Every line must have the same number of fields.
func LoadMatrix(path string) (*mat.Dense, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset: cannot open %q", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "dataset: cannot parse %q", path)
	}
	if len(records) == 0 {
		return nil, errors.Wrapf(errors.ErrEmptyData, "dataset: %q", path)
	}

	points := len(records)
	dims := len(records[0])

	X := mat.NewDense(dims, points, nil)
	for j, record := range records {
		for i, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "dataset: %q line %d field %d", path, j+1, i+1)
			}
			X.Set(i, j, v)
		}
	}
	return X, nil
}

// SaveMatrix writes a dims×points matrix as CSV, one point per line,
// overwriting any existing file. A nil or empty matrix produces an empty
// file.
func SaveMatrix(path string, X *mat.Dense) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "dataset: cannot create %q", path)
	}
	defer file.Close()

	if X == nil {
		return nil
	}
	dims, points := X.Dims()
	if dims == 0 || points == 0 {
		return nil
	}

	writer := csv.NewWriter(file)
	record := make([]string, dims)
	for j := 0; j < points; j++ {
		for i := 0; i < dims; i++ {
			record[i] = strconv.FormatFloat(X.At(i, j), 'g', -1, 64)
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrapf(err, "dataset: cannot write %q", path)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.Wrapf(err, "dataset: cannot write %q", path)
	}
	return nil
}

// LoadLabels reads a label file: either one label per line or a single line
// of comma-separated labels. Labels must be non-negative integers.
func LoadLabels(path string) ([]int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset: cannot open %q", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "dataset: cannot parse %q", path)
	}
	if len(records) == 0 {
		return nil, errors.Wrapf(errors.ErrEmptyData, "dataset: %q", path)
	}

	// A single line is treated as a row vector of labels.
	var fields []string
	if len(records) == 1 {
		fields = records[0]
	} else {
		fields = make([]string, 0, len(records))
		for j, record := range records {
			if len(record) != 1 {
				return nil, errors.Newf("dataset: %q line %d: label files must be a single row or a single column", path, j+1)
			}
			fields = append(fields, record[0])
		}
	}

	labels := make([]int, len(fields))
	for i, field := range fields {
		label, err := parseLabel(field)
		if err != nil {
			return nil, errors.Wrapf(err, "dataset: %q label %d", path, i+1)
		}
		labels[i] = label
	}
	return labels, nil
}

// SaveLabels writes labels one per line, overwriting any existing file.
func SaveLabels(path string, labels []int) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "dataset: cannot create %q", path)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	for _, label := range labels {
		if err := writer.Write([]string{strconv.Itoa(label)}); err != nil {
			return errors.Wrapf(err, "dataset: cannot write %q", path)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.Wrapf(err, "dataset: cannot write %q", path)
	}
	return nil
}

// SplitLastRowLabels interprets the last row of X as the label vector, the
// way a combined dataset stores labels in its final dimension. It returns
// the remaining rows as a new matrix together with the extracted labels;
// X itself is not modified.
func SplitLastRowLabels(X *mat.Dense) (*mat.Dense, []int, error) {
	if X == nil {
		return nil, nil, errors.NewValueError("dataset.SplitLastRowLabels", "dataset must not be nil")
	}
	dims, points := X.Dims()
	if dims < 2 {
		return nil, nil, errors.NewValueError("dataset.SplitLastRowLabels", "need at least two rows to separate labels from data")
	}

	labels := make([]int, points)
	for j := 0; j < points; j++ {
		v := X.At(dims-1, j)
		if v != math.Trunc(v) || v < 0 {
			return nil, nil, errors.Newf("dataset: last-row label %v at point %d is not a non-negative integer", v, j)
		}
		labels[j] = int(v)
	}

	data := mat.NewDense(dims-1, points, nil)
	for i := 0; i < dims-1; i++ {
		for j := 0; j < points; j++ {
			data.Set(i, j, X.At(i, j))
		}
	}
	return data, labels, nil
}

// parseLabel accepts both "3" and "3.0"; fractional or negative values are
// rejected.
func parseLabel(field string) (int, error) {
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, errors.Wrap(err, "not a number")
	}
	if v != math.Trunc(v) {
		return 0, errors.Newf("label %v is not an integer", v)
	}
	if v < 0 {
		return 0, errors.Newf("label %v is negative", v)
	}
	return int(v), nil
}
