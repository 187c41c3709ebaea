/*
Package pgadapter provides an implementation of the
Adapter interface in the sqlset package that works
over a PostgreSQL database.
*/
package pgadapter

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/pbanos/shrub/dataset/sqlset"

	// Import of PostgreSQL driver
	_ "github.com/lib/pq"
)

// maxIdentifierLength is PostgreSQL's NAMEDATALEN minus one.
const maxIdentifierLength = 63

type adapter struct {
	db *sql.DB
}

/*
New takes a PostgreSQL database connection URL and a maximum number of open
connections (0 meaning no limit) and returns an Adapter that works on the
database or an error if it fails to connect to it.
*/
func New(url string, maxConns int) (sqlset.Adapter, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}
	if maxConns > 0 {
		db.SetMaxOpenConns(maxConns)
	}
	return &adapter{db}, nil
}

func (a *adapter) DB() *sql.DB {
	return a.db
}

func (a *adapter) ColumnName(name string) (string, error) {
	if len(name) > maxIdentifierLength {
		return "", fmt.Errorf("name '%s' is longer than %d characters", name, maxIdentifierLength)
	}
	if strings.ContainsRune(name, 0) {
		return "", fmt.Errorf("name '%s' contains a NUL character", name)
	}
	return sqlset.QuoteIdentifier(name)
}

func (a *adapter) Close() error {
	return a.db.Close()
}
