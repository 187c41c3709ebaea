package tree

import (
	"context"
	"fmt"
	"math"
)

// Error represents an error caused by a caller passing the tree something
// it cannot work with.
type Error string

/*
ErrInvalidInput is the error returned when fitting or predicting with data
that has no rows, ragged or NaN-valued rows, a label count different from the
row count, or rows whose width differs from the width the tree was fit with.
*/
const ErrInvalidInput = Error("invalid input")

/*
ErrNotFitted is the error returned when trying to predict with a tree that
has not been successfully fit yet.
*/
const ErrNotFitted = Error("tree has not been fit")

func (e Error) Error() string {
	return string(e)
}

/*
Predict takes a context and a matrix of feature vectors and returns the
predicted label for each row, in the same order. It returns ErrNotFitted if
the tree has not been fit and ErrInvalidInput if the matrix is empty or any
of its rows cannot be classified by the tree.
*/
func (t *Tree[L]) Predict(ctx context.Context, data [][]float64) ([]L, error) {
	if t == nil || t.root == nil {
		return nil, ErrNotFitted
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no samples to predict", ErrInvalidInput)
	}
	result := make([]L, 0, len(data))
	for i, row := range data {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := t.validateSample(row); err != nil {
			return nil, fmt.Errorf("predicting sample %d: %w", i, err)
		}
		result = append(result, t.root.Predict(row))
	}
	return result, nil
}

// PredictOne takes a single feature vector and returns its predicted label.
func (t *Tree[L]) PredictOne(sample []float64) (L, error) {
	var zero L
	if t == nil || t.root == nil {
		return zero, ErrNotFitted
	}
	if err := t.validateSample(sample); err != nil {
		return zero, err
	}
	return t.root.Predict(sample), nil
}

func (t *Tree[L]) validateSample(sample []float64) error {
	if len(sample) != t.features {
		return fmt.Errorf("%w: got %d features, tree was fit with %d", ErrInvalidInput, len(sample), t.features)
	}
	return checkValues(sample)
}

func checkValues(row []float64) error {
	for j, v := range row {
		if math.IsNaN(v) {
			return fmt.Errorf("%w: feature %d is NaN", ErrInvalidInput, j)
		}
	}
	return nil
}
