/*
Package dataset provides the in-memory representation of the sample sets
trees are grown from and make predictions for, along with the metadata that
describes how to assemble them from tabular sources.
*/
package dataset

import (
	"context"
	"fmt"
	"math"
)

/*
Set is a collection of samples: a matrix of numeric feature values with one
row per sample and one column per feature, and optionally the identifier and
the class label of every sample.
*/
type Set struct {
	// Features holds the names of the columns of Rows.
	Features []string
	// IDs holds an identifier per sample, aligned with Rows. It is empty
	// when the source has no identifier column, and an empty identifier
	// stands for the sample's position.
	IDs []string
	// Rows holds the feature values of each sample.
	Rows [][]float64
	// Labels holds the class label of each sample. It is empty for
	// unlabeled sets.
	Labels []string
}

/*
Source is an interface wrapping the Read method, which takes a context, the
metadata describing which columns make up the samples and whether labels must
be read, and returns the set of samples read or an error.
*/
type Source interface {
	Read(ctx context.Context, md *Metadata, labeled bool) (*Set, error)
}

// Count returns the number of samples in the set.
func (s *Set) Count() int {
	return len(s.Rows)
}

// Labeled returns whether every sample in the set has a label.
func (s *Set) Labeled() bool {
	return len(s.Rows) > 0 && len(s.Labels) == len(s.Rows)
}

/*
ID returns the identifier of the i-th sample, or its 1-based position as a
string if the set has no identifiers or the sample's identifier is empty.
*/
func (s *Set) ID(i int) string {
	if i < len(s.IDs) && s.IDs[i] != "" {
		return s.IDs[i]
	}
	return fmt.Sprintf("%d", i+1)
}

/*
Validate checks that the set has samples, that every row has a value for
each feature and none of them is NaN, that identifiers (if any) match the
samples, and, when labeled is true, that every sample has a label.
*/
func (s *Set) Validate(labeled bool) error {
	if len(s.Rows) == 0 {
		return fmt.Errorf("set has no samples")
	}
	if len(s.Features) == 0 {
		return fmt.Errorf("set has no features")
	}
	for i, row := range s.Rows {
		if len(row) != len(s.Features) {
			return fmt.Errorf("sample %d has %d values for %d features", i, len(row), len(s.Features))
		}
		for j, v := range row {
			if math.IsNaN(v) {
				return fmt.Errorf("sample %d has an undefined value for feature %s", i, s.Features[j])
			}
		}
	}
	if len(s.IDs) > 0 && len(s.IDs) != len(s.Rows) {
		return fmt.Errorf("set has %d identifiers for %d samples", len(s.IDs), len(s.Rows))
	}
	if labeled && len(s.Labels) != len(s.Rows) {
		return fmt.Errorf("set has %d labels for %d samples", len(s.Labels), len(s.Rows))
	}
	return nil
}

// Append adds a sample with no identifier to the set. The label is ignored
// when empty.
func (s *Set) Append(row []float64, label string) {
	s.Rows = append(s.Rows, row)
	if label != "" {
		s.Labels = append(s.Labels, label)
	}
}

/*
AppendWithID adds a sample and its identifier to the set. The identifier is
kept even when empty so identifiers stay aligned with rows. Sets built with
it should not be mixed with Append.
*/
func (s *Set) AppendWithID(id string, row []float64, label string) {
	s.IDs = append(s.IDs, id)
	s.Append(row, label)
}
