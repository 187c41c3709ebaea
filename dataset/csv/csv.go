/*
Package csv provides a dataset.Source that reads samples from delimited
text (CSV or TSV) and a writer for predictions in the same format.
*/
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pbanos/shrub/dataset"
)

/*
Source is a dataset.Source reading delimited text from the file at Path or
from Reader when Path is empty. Comma is the field delimiter; when it is
zero a tab is used for files with a .tsv extension and a comma otherwise.
*/
type Source struct {
	Path   string
	Reader io.Reader
	Comma  rune
}

/*
New takes a filepath string and returns a Source for it. An empty filepath
reads from STDIN.
*/
func New(path string) *Source {
	if path == "" {
		return &Source{Reader: os.Stdin}
	}
	return &Source{Path: path}
}

/*
Read opens the source and uses ReadSet to return the set parsed from it.
*/
func (s *Source) Read(ctx context.Context, md *dataset.Metadata, labeled bool) (*dataset.Set, error) {
	r := s.Reader
	if s.Path != "" {
		f, err := os.Open(s.Path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %v", s.Path, err)
		}
		defer f.Close()
		r = f
	}
	set, err := ReadSet(ctx, r, s.comma(), md, labeled)
	if err != nil && s.Path != "" {
		err = fmt.Errorf("parsing %s: %v", s.Path, err)
	}
	return set, err
}

func (s *Source) comma() rune {
	if s.Comma != 0 {
		return s.Comma
	}
	if strings.EqualFold(filepath.Ext(s.Path), ".tsv") {
		return '\t'
	}
	return ','
}

/*
ReadSet takes a context, an io.Reader for a delimited stream, the delimiter,
the metadata and whether labels must be read, and returns the set parsed from
the reader or an error.

The header or first row is expected to name the columns. Every feature in the
metadata must have a column, whose values must parse as float64 numbers. The
identifier column is optional. The class column is required when labeled is
true and ignored otherwise. Other columns are ignored.
*/
func ReadSet(ctx context.Context, reader io.Reader, comma rune, md *dataset.Metadata, labeled bool) (*dataset.Set, error) {
	r := csv.NewReader(reader)
	r.Comma = comma
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %v", err)
	}
	columns, err := parseHeader(header, md, labeled)
	if err != nil {
		return nil, err
	}
	set := &dataset.Set{Features: md.Features}
	for l := 2; ; l++ {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading body: %v", err)
		}
		values, err := columns.parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("parsing line %d: %v", l, err)
		}
		var label string
		if columns.class >= 0 {
			label = row[columns.class]
			if label == "" {
				return nil, fmt.Errorf("parsing line %d: empty value for class column %s", l, md.Class)
			}
		}
		if columns.id >= 0 {
			set.AppendWithID(row[columns.id], values, label)
		} else {
			set.Append(values, label)
		}
	}
	return set, nil
}

type columnIndexes struct {
	features []int
	id       int
	class    int
}

func parseHeader(header []string, md *dataset.Metadata, labeled bool) (*columnIndexes, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		positions[strings.TrimSpace(name)] = i
	}
	result := &columnIndexes{id: -1, class: -1}
	for _, f := range md.Features {
		i, ok := positions[f]
		if !ok {
			return nil, fmt.Errorf("parsing header: no column for feature %s", f)
		}
		result.features = append(result.features, i)
	}
	if i, ok := positions[md.ID]; ok {
		result.id = i
	}
	if labeled {
		i, ok := positions[md.Class]
		if !ok {
			return nil, fmt.Errorf("parsing header: no column for class %s", md.Class)
		}
		result.class = i
	}
	return result, nil
}

func (ci *columnIndexes) parseRow(row []string) ([]float64, error) {
	values := make([]float64, len(ci.features))
	for j, i := range ci.features {
		v := strings.TrimSpace(row[i])
		value, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("converting %q to float64: %v", v, err)
		}
		values[j] = value
	}
	return values, nil
}

/*
WritePredictions takes an io.Writer, a slice of sample identifiers and a
slice with the label predicted for each, and writes one "id,label" line per
sample. It returns an error if the slices differ in length or writing fails.
*/
func WritePredictions(w io.Writer, ids, labels []string) error {
	if len(ids) != len(labels) {
		return fmt.Errorf("writing predictions: %d identifiers for %d labels", len(ids), len(labels))
	}
	cw := csv.NewWriter(w)
	for i := range ids {
		if err := cw.Write([]string{ids[i], labels[i]}); err != nil {
			return fmt.Errorf("writing prediction for %s: %v", ids[i], err)
		}
	}
	cw.Flush()
	return cw.Error()
}
