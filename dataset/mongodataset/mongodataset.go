/*
Package mongodataset provides an implementation of dataset.Source
that uses a MongoDB database as backend.

Every sample is a document of the metadata's collection on the
session's default database. Feature values are read from the
fields named after the features, labels from the class field
and identifiers from the id field when documents have one.
*/
package mongodataset

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"

	"github.com/pbanos/shrub/dataset"
)

// Source is a dataset.Source backed by a MongoDB session.
type Source struct {
	session *mgo.Session
}

/*
Open takes a MongoDB connection URL and returns a Source that works on the
default database for it or an error if it fails to connect to it.
*/
func Open(url string) (*Source, error) {
	session, err := mgo.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %v", url, err)
	}
	return New(session), nil
}

// New takes a MongoDB database session and returns a Source using it.
func New(session *mgo.Session) *Source {
	return &Source{session}
}

// Close closes the source's session.
func (s *Source) Close() {
	s.session.Close()
}

/*
Read takes a context, the metadata and whether labels must be read and
returns the set with every document of the metadata's collection or an
error. Documents missing a feature value or, when labeled, a label are
rejected.
*/
func (s *Source) Read(ctx context.Context, md *dataset.Metadata, labeled bool) (*dataset.Set, error) {
	if err := validateFields(md); err != nil {
		return nil, err
	}
	selection := bson.M{md.ID: 1}
	for _, f := range md.Features {
		selection[f] = 1
	}
	if labeled {
		selection[md.Class] = 1
	}
	iter := s.session.DB("").C(md.Collection).Find(nil).Select(selection).Iter()
	defer iter.Close()
	set := &dataset.Set{Features: md.Features}
	var doc bson.M
	for n := 1; iter.Next(&doc); n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		id, row, label, err := DocumentSample(doc, md, labeled)
		if err != nil {
			return nil, fmt.Errorf("reading document %d: %v", n, err)
		}
		set.AppendWithID(id, row, label)
		doc = nil
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("iterating on collection %s: %v", md.Collection, err)
	}
	return set, nil
}

/*
DocumentSample takes a document, the metadata and whether a label must be
read and returns the document's identifier (empty if it has none), feature
values in metadata order and label, or an error if a feature value is
missing or not numeric or a required label is missing.
*/
func DocumentSample(doc bson.M, md *dataset.Metadata, labeled bool) (string, []float64, string, error) {
	row := make([]float64, len(md.Features))
	for i, f := range md.Features {
		v, ok := doc[f]
		if !ok || v == nil {
			return "", nil, "", fmt.Errorf("no value for feature %s", f)
		}
		fv, err := toFloat(v)
		if err != nil {
			return "", nil, "", fmt.Errorf("feature %s: %v", f, err)
		}
		row[i] = fv
	}
	var label string
	if labeled {
		v, ok := doc[md.Class]
		if !ok || v == nil {
			return "", nil, "", fmt.Errorf("no value for class %s", md.Class)
		}
		label = toString(v)
		if label == "" {
			return "", nil, "", fmt.Errorf("empty value for class %s", md.Class)
		}
	}
	var id string
	if v, ok := doc[md.ID]; ok && v != nil {
		id = toString(v)
	}
	return id, row, label, nil
}

func toFloat(v interface{}) (float64, error) {
	switch v := v.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("converting %q to float64: %v", v, err)
		}
		return f, nil
	}
	return 0, fmt.Errorf("expected a number, got %T value", v)
}

func toString(v interface{}) string {
	if oid, ok := v.(bson.ObjectId); ok {
		return oid.Hex()
	}
	return fmt.Sprintf("%v", v)
}

func validateFields(md *dataset.Metadata) error {
	for _, f := range md.Features {
		if f == "_id" {
			return fmt.Errorf("invalid feature name %q: reserved collection field", "_id")
		}
		if strings.ContainsAny(f, ".$") {
			return fmt.Errorf("invalid feature name %q: contains reserved characters %q or %q", f, ".", "$")
		}
	}
	if md.Collection == "" {
		return fmt.Errorf("no collection to read samples from")
	}
	return nil
}
