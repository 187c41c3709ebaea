package csv

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pbanos/shrub/dataset"
)

var irisMetadata = &dataset.Metadata{
	Features: []string{"sepal length in cm", "petal width in cm"},
	Class:    "class",
	ID:       "id",
}

const irisTSV = "id\tsepal length in cm\tsepal width in cm\tpetal width in cm\tclass\n" +
	"1\t5.1\t3.5\t0.2\tIris-setosa\n" +
	"2\t7.0\t3.2\t1.4\tIris-versicolor\n" +
	"3\t6.3\t3.3\t2.5\tIris-virginica\n"

func TestSource_ReadTSV(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "train.tsv")
	if err := os.WriteFile(path, []byte(irisTSV), 0o600); err != nil {
		t.Fatalf("writing training file: %v", err)
	}
	set, err := New(path).Read(context.Background(), irisMetadata, true)
	if err != nil {
		t.Fatalf("reading set: %v", err)
	}
	if err := set.Validate(true); err != nil {
		t.Fatalf("read set is not valid: %v", err)
	}
	expectedRows := [][]float64{{5.1, 0.2}, {7.0, 1.4}, {6.3, 2.5}}
	expectedLabels := []string{"Iris-setosa", "Iris-versicolor", "Iris-virginica"}
	expectedIDs := []string{"1", "2", "3"}
	if set.Count() != len(expectedRows) {
		t.Fatalf("count got: %d, expected: %d", set.Count(), len(expectedRows))
	}
	for i := range expectedRows {
		for j := range expectedRows[i] {
			if set.Rows[i][j] != expectedRows[i][j] {
				t.Errorf("row %d got: %v, expected: %v", i, set.Rows[i], expectedRows[i])
			}
		}
		if set.Labels[i] != expectedLabels[i] {
			t.Errorf("label %d got: %s, expected: %s", i, set.Labels[i], expectedLabels[i])
		}
		if set.ID(i) != expectedIDs[i] {
			t.Errorf("id %d got: %s, expected: %s", i, set.ID(i), expectedIDs[i])
		}
	}
}

func TestReadSet(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		comma   rune
		labeled bool
		count   int
		wantErr bool
	}{
		{
			name:    "csv labeled",
			input:   "sepal length in cm,petal width in cm,class\n1,2,a\n3,4,b\n",
			comma:   ',',
			labeled: true,
			count:   2,
		},
		{
			name:  "csv unlabeled without class column",
			input: "id,petal width in cm,sepal length in cm\n10,1,2\n",
			comma: ',',
			count: 1,
		},
		{
			name:    "missing feature column",
			input:   "sepal length in cm,class\n1,a\n",
			comma:   ',',
			labeled: true,
			wantErr: true,
		},
		{
			name:    "missing class column",
			input:   "sepal length in cm,petal width in cm\n1,2\n",
			comma:   ',',
			labeled: true,
			wantErr: true,
		},
		{
			name:    "non numeric feature",
			input:   "sepal length in cm,petal width in cm,class\n1,wide,a\n",
			comma:   ',',
			labeled: true,
			wantErr: true,
		},
		{
			name:    "empty class",
			input:   "sepal length in cm,petal width in cm,class\n1,2,\n",
			comma:   ',',
			labeled: true,
			wantErr: true,
		},
		{name: "empty input", input: "", comma: ',', wantErr: true},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			set, err := ReadSet(context.Background(), strings.NewReader(test.input), test.comma, irisMetadata, test.labeled)
			if test.wantErr {
				if err == nil {
					t.Errorf("expected an error, got set %+v", set)
				}
				return
			}
			if err != nil {
				t.Fatalf("reading set: %v", err)
			}
			if set.Count() != test.count {
				t.Errorf("count got: %d, expected: %d", set.Count(), test.count)
			}
			if set.Labeled() != test.labeled {
				t.Errorf("labeled got: %v, expected: %v", set.Labeled(), test.labeled)
			}
		})
	}
}

func TestReadSet_ColumnOrder(t *testing.T) {
	t.Parallel()
	input := "petal width in cm,id,sepal length in cm\n0.5,a1,4.5\n"
	set, err := ReadSet(context.Background(), strings.NewReader(input), ',', irisMetadata, false)
	if err != nil {
		t.Fatalf("reading set: %v", err)
	}
	if set.Rows[0][0] != 4.5 || set.Rows[0][1] != 0.5 {
		t.Errorf("row got: %v, expected features in metadata order [4.5 0.5]", set.Rows[0])
	}
	if set.ID(0) != "a1" {
		t.Errorf("id got: %s, expected: a1", set.ID(0))
	}
}

func TestReadSet_BlankID(t *testing.T) {
	t.Parallel()
	md := &dataset.Metadata{Features: []string{"x"}, Class: "class", ID: "id"}
	set, err := ReadSet(context.Background(), strings.NewReader("id,x\n,1\nv,2\nw,3\n"), ',', md, false)
	if err != nil {
		t.Fatalf("reading set: %v", err)
	}
	if err := set.Validate(false); err != nil {
		t.Fatalf("read set is not valid: %v", err)
	}
	expected := []string{"1", "v", "w"}
	for i := range expected {
		if set.ID(i) != expected[i] {
			t.Errorf("id %d got: %s, expected: %s", i, set.ID(i), expected[i])
		}
	}
}

func TestWritePredictions(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := WritePredictions(&buf, []string{"1", "2"}, []string{"Iris-setosa", "Iris-virginica"})
	if err != nil {
		t.Fatalf("writing predictions: %v", err)
	}
	expected := "1,Iris-setosa\n2,Iris-virginica\n"
	if buf.String() != expected {
		t.Errorf("output got: %q, expected: %q", buf.String(), expected)
	}
	if err := WritePredictions(&buf, []string{"1"}, nil); err == nil {
		t.Errorf("expected an error for mismatched slices")
	}
}
