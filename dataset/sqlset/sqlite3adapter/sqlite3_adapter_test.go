package sqlite3adapter

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/pbanos/shrub/dataset"
	"github.com/pbanos/shrub/dataset/sqlset"
)

func seed(t *testing.T, path string, stmts ...string) {
	t.Helper()
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("opening %s: %v", path, err)
	}
	defer db.Close()
	if err = db.Ping(); err != nil {
		t.Skipf("sqlite3 driver unavailable: %v", err)
	}
	for _, stmt := range stmts {
		if _, err = db.Exec(stmt); err != nil {
			t.Fatalf("running %q: %v", stmt, err)
		}
	}
}

func TestSource_Read(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "iris.db")
	seed(t, path,
		`CREATE TABLE iris (id INTEGER PRIMARY KEY, "petal length" REAL, "petal width" REAL, species TEXT)`,
		`INSERT INTO iris VALUES (1, 1.4, 0.2, 'setosa'), (2, 4.7, 1.4, 'versicolor'), (3, 6, 2, 'virginica')`,
	)
	a, err := New(path, 1)
	if err != nil {
		t.Fatalf("creating adapter: %v", err)
	}
	defer a.Close()
	md := &dataset.Metadata{
		Features: []string{"petal width", "petal length"},
		Class:    "species",
		ID:       "id",
		Table:    "iris",
	}
	set, err := sqlset.New(a).Read(context.Background(), md, true)
	if err != nil {
		t.Fatalf("reading set: %v", err)
	}
	if err = set.Validate(true); err != nil {
		t.Fatalf("read set is not valid: %v", err)
	}
	expectedRows := [][]float64{{0.2, 1.4}, {1.4, 4.7}, {2, 6}}
	expectedLabels := []string{"setosa", "versicolor", "virginica"}
	expectedIDs := []string{"1", "2", "3"}
	if set.Count() != 3 {
		t.Fatalf("count got: %d, expected: 3", set.Count())
	}
	for i := range expectedRows {
		if set.Rows[i][0] != expectedRows[i][0] || set.Rows[i][1] != expectedRows[i][1] {
			t.Errorf("row %d got: %v, expected: %v", i, set.Rows[i], expectedRows[i])
		}
		if set.Labels[i] != expectedLabels[i] {
			t.Errorf("label %d got: %s, expected: %s", i, set.Labels[i], expectedLabels[i])
		}
		if set.ID(i) != expectedIDs[i] {
			t.Errorf("id %d got: %s, expected: %s", i, set.ID(i), expectedIDs[i])
		}
	}
}

func TestSource_ReadNullID(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "ids.db")
	seed(t, path,
		`CREATE TABLE samples (id TEXT, x REAL)`,
		`INSERT INTO samples VALUES (NULL, 1.0), ('v', 2.0), ('w', 3.0)`,
	)
	a, err := New(path, 0)
	if err != nil {
		t.Fatalf("creating adapter: %v", err)
	}
	defer a.Close()
	md := &dataset.Metadata{Features: []string{"x"}, Class: "class", ID: "id", Table: "samples"}
	set, err := sqlset.New(a).Read(context.Background(), md, false)
	if err != nil {
		t.Fatalf("reading set: %v", err)
	}
	if err = set.Validate(false); err != nil {
		t.Fatalf("read set is not valid: %v", err)
	}
	expectedIDs := []string{"1", "v", "w"}
	for i := range expectedIDs {
		if set.ID(i) != expectedIDs[i] {
			t.Errorf("id %d got: %s, expected: %s", i, set.ID(i), expectedIDs[i])
		}
	}
}

func TestSource_ReadRejectsNull(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nulls.db")
	seed(t, path,
		`CREATE TABLE samples (x REAL, class TEXT)`,
		`INSERT INTO samples VALUES (1.0, 'a'), (NULL, 'b')`,
	)
	a, err := New(path, 0)
	if err != nil {
		t.Fatalf("creating adapter: %v", err)
	}
	defer a.Close()
	md := &dataset.Metadata{Features: []string{"x"}, Class: "class", ID: "id", Table: "samples"}
	if _, err = sqlset.New(a).Read(context.Background(), md, true); err == nil {
		t.Errorf("expected an error reading a NULL feature value")
	}
	set, err := sqlset.New(a).Read(context.Background(), &dataset.Metadata{Features: []string{"class"}, Class: "x", ID: "id", Table: "samples"}, false)
	if err == nil {
		t.Errorf("expected an error reading a non numeric feature, got %+v", set)
	}
}

func TestAdapter_ColumnName(t *testing.T) {
	t.Parallel()
	a := &adapter{}
	tests := []struct {
		name     string
		column   string
		expected string
		wantErr  bool
	}{
		{name: "plain", column: "sepal length", expected: `"sepal length"`},
		{name: "quote", column: `se"pal`, wantErr: true},
		{name: "empty", column: "", wantErr: true},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			got, err := a.ColumnName(test.column)
			if (err != nil) != test.wantErr {
				t.Fatalf("error got: %v, expected error: %v", err, test.wantErr)
			}
			if got != test.expected {
				t.Errorf("column name got: %s, expected: %s", got, test.expected)
			}
		})
	}
}
