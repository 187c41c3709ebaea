package tree

import (
	"math"
	"testing"
)

func TestGini(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		labels   []string
		expected float64
	}{
		{name: "empty", labels: nil, expected: 0.0},
		{name: "single sample", labels: []string{"a"}, expected: 0.0},
		{name: "single class", labels: []string{"a", "a", "a"}, expected: 0.0},
		{name: "two classes evenly", labels: []string{"a", "b", "b", "a"}, expected: 0.5},
		{name: "three classes evenly", labels: []string{"a", "b", "c"}, expected: 1.0 - 3.0/9.0},
		{name: "uneven", labels: []string{"a", "a", "a", "b"}, expected: 1.0 - 0.75*0.75 - 0.25*0.25},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			got := Gini(test.labels)
			if math.Abs(got-test.expected) > 1e-12 {
				t.Errorf("the gini impurity is incorrect got: %v, expected: %v", got, test.expected)
			}
		})
	}
}

func TestGini_Exact(t *testing.T) {
	t.Parallel()
	if got := Gini([]int{7, 7, 7, 7}); got != 0.0 {
		t.Errorf("pure partition got: %v, expected exactly 0", got)
	}
	if got := Gini([]int{1, 0, 1, 0}); got != 0.5 {
		t.Errorf("balanced two-class partition got: %v, expected exactly 0.5", got)
	}
}

func TestGini_OrderIndependent(t *testing.T) {
	t.Parallel()
	a := Gini([]int{3, 1, 2, 1, 3, 3, 2})
	b := Gini([]int{1, 1, 2, 2, 3, 3, 3})
	if a != b {
		t.Errorf("gini depends on label order: %v != %v", a, b)
	}
}
