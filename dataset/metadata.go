package dataset

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

const (
	// DefaultClassColumn is the name of the class column when the
	// metadata does not set one.
	DefaultClassColumn = "class"
	// DefaultIDColumn is the name of the identifier column when the
	// metadata does not set one.
	DefaultIDColumn = "id"
	// DefaultTable is the SQL table and MongoDB collection samples are
	// read from when the metadata does not set one.
	DefaultTable = "samples"
)

/*
Metadata describes how to assemble a Set from a tabular source: which
columns hold the feature values, which one holds the class label and which
one identifies each sample.
*/
type Metadata struct {
	Features   []string `yaml:"features"`
	Class      string   `yaml:"class"`
	ID         string   `yaml:"id"`
	Table      string   `yaml:"table"`
	Collection string   `yaml:"collection"`
}

/*
ReadMetadata takes a slice of bytes with a metadata specification in YML and
returns the metadata parsed from it or an error.
The YML is expected to be an object with a features property listing the
names of the feature columns in order. The optional class, id, table and
collection properties name the class column, the identifier column, the SQL
table and the MongoDB collection respectively.
*/
func ReadMetadata(md []byte) (*Metadata, error) {
	metadata := &Metadata{}
	err := yaml.Unmarshal(md, metadata)
	if err != nil {
		return nil, fmt.Errorf("parsing yml metadata: %v", err)
	}
	if len(metadata.Features) == 0 {
		return nil, fmt.Errorf("metadata has no feature information")
	}
	seen := make(map[string]bool)
	for _, f := range metadata.Features {
		if f == "" {
			return nil, fmt.Errorf("metadata has a feature with no name")
		}
		if seen[f] {
			return nil, fmt.Errorf("metadata declares feature %s more than once", f)
		}
		seen[f] = true
	}
	if metadata.Class == "" {
		metadata.Class = DefaultClassColumn
	}
	if metadata.ID == "" {
		metadata.ID = DefaultIDColumn
	}
	if metadata.Table == "" {
		metadata.Table = DefaultTable
	}
	if metadata.Collection == "" {
		metadata.Collection = metadata.Table
	}
	if seen[metadata.Class] {
		return nil, fmt.Errorf("class column %s cannot also be a feature", metadata.Class)
	}
	if seen[metadata.ID] {
		return nil, fmt.Errorf("id column %s cannot also be a feature", metadata.ID)
	}
	if metadata.ID == metadata.Class {
		return nil, fmt.Errorf("id column %s cannot also be the class column", metadata.ID)
	}
	return metadata, nil
}

/*
ReadMetadataFromFile takes a filepath string, reads its contents and uses
ReadMetadata to parse it and return the parsed metadata or an error.
If the file indicated by the filepath cannot be opened for reading an error
will be returned.
*/
func ReadMetadataFromFile(filepath string) (*Metadata, error) {
	md, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading metadata yml file %s: %v", filepath, err)
	}
	metadata, err := ReadMetadata(md)
	if err != nil {
		err = fmt.Errorf("parsing metadata yml file %s: %v", filepath, err)
	}
	return metadata, err
}
