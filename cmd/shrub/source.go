package main

import (
	"fmt"
	"strings"

	"github.com/pbanos/shrub/dataset"
	"github.com/pbanos/shrub/dataset/csv"
	"github.com/pbanos/shrub/dataset/mongodataset"
	"github.com/pbanos/shrub/dataset/sqlset"
	"github.com/pbanos/shrub/dataset/sqlset/pgadapter"
	"github.com/pbanos/shrub/dataset/sqlset/sqlite3adapter"
)

const inputFlagUsage = "path to an input CSV (.csv), TSV (.tsv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL"

/*
openSource takes an input string and returns the dataset.Source to read it
with and a function to release it:
  - a postgres:// or postgresql:// URL is read with the PostgreSQL adapter
  - a mongodb:// URL is read from MongoDB
  - a path ending in .db, .sqlite or .sqlite3 is read with the SQLite3 adapter
  - anything else is read as delimited text, an empty input meaning STDIN
*/
func (rcc *rootCmdConfig) openSource(input string) (dataset.Source, func(), error) {
	logger := rcc.logger()
	switch {
	case strings.HasPrefix(input, "postgres://"), strings.HasPrefix(input, "postgresql://"):
		logger.Debugf("Creating PostgreSQL adapter for url %s...", input)
		a, err := pgadapter.New(input, rcc.MaxDBConns)
		if err != nil {
			return nil, nil, fmt.Errorf("creating PostgreSQL adapter: %v", err)
		}
		return sqlset.New(a), func() { a.Close() }, nil
	case strings.HasPrefix(input, "mongodb://"):
		logger.Debugf("Connecting to MongoDB at %s...", input)
		s, err := mongodataset.Open(input)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case hasAnySuffix(input, ".db", ".sqlite", ".sqlite3"):
		logger.Debugf("Creating SQLite3 adapter for file %s...", input)
		a, err := sqlite3adapter.New(input, rcc.MaxDBConns)
		if err != nil {
			return nil, nil, fmt.Errorf("creating SQLite3 adapter: %v", err)
		}
		return sqlset.New(a), func() { a.Close() }, nil
	}
	if input == "" {
		logger.Debugf("Reading set from STDIN...")
	} else {
		logger.Debugf("Opening %s to read set...", input)
	}
	return csv.New(input), func() {}, nil
}

/*
readSet opens the given input with openSource and reads a set from it
according to the metadata.
*/
func (rcc *rootCmdConfig) readSet(input string, md *dataset.Metadata, labeled bool) (*dataset.Set, error) {
	source, closeSource, err := rcc.openSource(input)
	if err != nil {
		return nil, err
	}
	defer closeSource()
	s, err := source.Read(rcc.Context(), md, labeled)
	if err != nil {
		return nil, fmt.Errorf("reading set: %v", err)
	}
	rcc.logger().Debugw("set read", "input", input, "samples", s.Count())
	return s, nil
}

func hasAnySuffix(s string, suffixes ...string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(strings.ToLower(s), suffix) {
			return true
		}
	}
	return false
}
