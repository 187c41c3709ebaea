/*
Package sqlset provides an implementation of dataset.Source
that reads samples from a table of a SQL database.

Every sample is a row of the table. Feature values are read
from the columns named after the features in the metadata,
labels from the class column and identifiers from the id
column when the table has one. Adapters in the subpackages
provide the connection to each supported database.
*/
package sqlset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pbanos/shrub/dataset"
)

/*
Adapter is an interface providing the methods
needed to read a set from a database backend.
*/
type Adapter interface {
	// DB returns the database the adapter works on.
	DB() *sql.DB
	// ColumnName takes the name of a table or column and returns
	// it quoted for use in statements, or an error if it cannot
	// be used as such.
	ColumnName(string) (string, error)
	// Close releases the adapter's database.
	Close() error
}

// Source is a dataset.Source backed by an Adapter.
type Source struct {
	Adapter Adapter
}

// New takes an Adapter and returns a Source reading through it.
func New(a Adapter) *Source {
	return &Source{a}
}

/*
Read takes a context, the metadata and whether labels must be read and
returns the set with every row of the metadata's table or an error.
NULL feature values and NULL labels are rejected.
*/
func (s *Source) Read(ctx context.Context, md *dataset.Metadata, labeled bool) (*dataset.Set, error) {
	columns, err := s.tableColumns(ctx, md.Table)
	if err != nil {
		return nil, err
	}
	withID := columns[md.ID]
	stmt, err := SelectStatement(s.Adapter, md, withID, labeled)
	if err != nil {
		return nil, err
	}
	rows, err := s.Adapter.DB().QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("querying samples: %v", err)
	}
	defer rows.Close()
	set := &dataset.Set{Features: md.Features}
	for n := 1; rows.Next(); n++ {
		values := make([]sql.NullFloat64, len(md.Features))
		var id, label sql.NullString
		dest := make([]interface{}, 0, len(values)+2)
		for i := range values {
			dest = append(dest, &values[i])
		}
		if withID {
			dest = append(dest, &id)
		}
		if labeled {
			dest = append(dest, &label)
		}
		if err = rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning sample %d: %v", n, err)
		}
		row := make([]float64, len(values))
		for i, v := range values {
			if !v.Valid {
				return nil, fmt.Errorf("sample %d has no value for feature %s", n, md.Features[i])
			}
			row[i] = v.Float64
		}
		if labeled && (!label.Valid || label.String == "") {
			return nil, fmt.Errorf("sample %d has no value for class %s", n, md.Class)
		}
		if withID {
			set.AppendWithID(id.String, row, label.String)
		} else {
			set.Append(row, label.String)
		}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating on samples: %v", err)
	}
	return set, nil
}

func (s *Source) tableColumns(ctx context.Context, table string) (map[string]bool, error) {
	tableName, err := s.Adapter.ColumnName(table)
	if err != nil {
		return nil, err
	}
	rows, err := s.Adapter.DB().QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s WHERE 1=0", tableName))
	if err != nil {
		return nil, fmt.Errorf("querying columns of table %s: %v", table, err)
	}
	defer rows.Close()
	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("listing columns of table %s: %v", table, err)
	}
	result := make(map[string]bool, len(names))
	for _, n := range names {
		result[n] = true
	}
	return result, nil
}

/*
SelectStatement takes an adapter, the metadata, and whether identifiers and
labels must be selected, and returns a statement selecting the feature
columns in metadata order followed by the id and class columns as requested.
*/
func SelectStatement(a Adapter, md *dataset.Metadata, withID, labeled bool) (string, error) {
	names := append([]string{}, md.Features...)
	if withID {
		names = append(names, md.ID)
	}
	if labeled {
		names = append(names, md.Class)
	}
	columns := make([]string, 0, len(names))
	for _, n := range names {
		c, err := a.ColumnName(n)
		if err != nil {
			return "", err
		}
		columns = append(columns, c)
	}
	table, err := a.ColumnName(md.Table)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(columns, ", "), table), nil
}

/*
QuoteIdentifier takes a table or column name and returns it between double
quotes, the way both SQLite3 and PostgreSQL expect identifiers, or an error
if the name is empty or contains a double quote.
*/
func QuoteIdentifier(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty name cannot be used as identifier")
	}
	if strings.ContainsAny(name, `"`) {
		return "", fmt.Errorf(`name '%s' contains invalid character '"'`, name)
	}
	return `"` + name + `"`, nil
}
