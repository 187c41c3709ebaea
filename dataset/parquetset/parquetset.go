/*
Package parquetset writes and reads predictions as Parquet files.
*/
package parquetset

import (
	"fmt"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// PredictionRow is a row of a predictions file.
type PredictionRow struct {
	ID    string `parquet:"id"`
	Class string `parquet:"class"`
}

/*
WritePredictions takes a filepath string, a slice of sample identifiers and
a slice with the label predicted for each, and writes them as a zstd
compressed Parquet file of PredictionRow rows. It returns an error if the
slices differ in length or the file cannot be written.
*/
func WritePredictions(path string, ids, labels []string) error {
	if len(ids) != len(labels) {
		return fmt.Errorf("writing predictions: %d identifiers for %d labels", len(ids), len(labels))
	}
	rows := make([]PredictionRow, len(ids))
	for i := range ids {
		rows[i] = PredictionRow{ID: ids[i], Class: labels[i]}
	}
	err := parquet.WriteFile(path, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "predictions_v1"),
	)
	if err != nil {
		return fmt.Errorf("writing predictions to %s: %v", path, err)
	}
	return nil
}

// ReadPredictions takes a filepath string and returns the rows of the
// predictions file at it.
func ReadPredictions(path string) ([]PredictionRow, error) {
	rows, err := parquet.ReadFile[PredictionRow](path)
	if err != nil {
		return nil, fmt.Errorf("reading predictions from %s: %v", path, err)
	}
	return rows, nil
}
