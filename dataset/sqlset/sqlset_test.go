package sqlset

import (
	"database/sql"
	"testing"

	"github.com/pbanos/shrub/dataset"
)

type quotingAdapter struct{}

func (quotingAdapter) DB() *sql.DB { return nil }
func (quotingAdapter) ColumnName(n string) (string, error) { return QuoteIdentifier(n) }
func (quotingAdapter) Close() error { return nil }

func TestSelectStatement(t *testing.T) {
	t.Parallel()
	md := &dataset.Metadata{Features: []string{"a", "b c"}, Class: "class", ID: "id", Table: "samples"}
	tests := []struct {
		name     string
		md       *dataset.Metadata
		withID   bool
		labeled  bool
		expected string
		wantErr  bool
	}{
		{name: "features only", md: md, expected: `SELECT "a", "b c" FROM "samples"`},
		{name: "with id", md: md, withID: true, expected: `SELECT "a", "b c", "id" FROM "samples"`},
		{name: "labeled", md: md, labeled: true, expected: `SELECT "a", "b c", "class" FROM "samples"`},
		{
			name:     "with id and labeled",
			md:       md,
			withID:   true,
			labeled:  true,
			expected: `SELECT "a", "b c", "id", "class" FROM "samples"`,
		},
		{
			name:    "invalid column",
			md:      &dataset.Metadata{Features: []string{`a"`}, Table: "samples"},
			wantErr: true,
		},
		{
			name:    "invalid table",
			md:      &dataset.Metadata{Features: []string{"a"}, Table: ""},
			wantErr: true,
		},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			got, err := SelectStatement(quotingAdapter{}, test.md, test.withID, test.labeled)
			if (err != nil) != test.wantErr {
				t.Fatalf("error got: %v, expected error: %v", err, test.wantErr)
			}
			if got != test.expected {
				t.Errorf("statement got: %s, expected: %s", got, test.expected)
			}
		})
	}
}
