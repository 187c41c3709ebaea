/*
Package shrub grows Gini classification trees from sets of labeled samples
and tests them against other sets.
*/
package shrub

import (
	"context"
	"fmt"
	"time"

	"github.com/pbanos/shrub/dataset"
	"github.com/pbanos/shrub/internal/logging"
	"github.com/pbanos/shrub/tree"
)

/*
Grow takes a context, a labeled set, a pruning criterion and tree options,
and returns a tree fit on the set's samples and pruned with the criterion.
It returns an error if the set is not a valid labeled set or fitting fails.
*/
func Grow(ctx context.Context, s *dataset.Set, criterion float64, opts ...tree.Option) (*tree.Tree[string], error) {
	logger := logging.FromContext(ctx)
	if err := s.Validate(true); err != nil {
		return nil, fmt.Errorf("validating training set: %w", err)
	}
	logger.Debugw("growing tree", "samples", s.Count(), "features", len(s.Features), "criterion", criterion)
	start := time.Now()
	t := tree.New[string](criterion, opts...)
	if err := t.Fit(ctx, s.Rows, s.Labels); err != nil {
		return nil, err
	}
	logger.Infow("tree grown",
		"samples", s.Count(),
		"depth", t.Depth(),
		"leaves", t.Leaves(),
		"elapsed", time.Since(start))
	return t, nil
}

/*
Predict takes a context, a fitted tree and a set and returns the label the
tree predicts for each of the set's samples, in order.
*/
func Predict(ctx context.Context, t *tree.Tree[string], s *dataset.Set) ([]string, error) {
	if err := s.Validate(false); err != nil {
		return nil, fmt.Errorf("validating set: %w", err)
	}
	labels, err := t.Predict(ctx, s.Rows)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Debugw("samples predicted", "samples", len(labels))
	return labels, nil
}

/*
Test takes a context, a fitted tree and a labeled set and returns the
fraction of the set's samples whose label the tree predicts correctly.
*/
func Test(ctx context.Context, t *tree.Tree[string], s *dataset.Set) (float64, error) {
	if err := s.Validate(true); err != nil {
		return 0.0, fmt.Errorf("validating testing set: %w", err)
	}
	predictions, err := t.Predict(ctx, s.Rows)
	if err != nil {
		return 0.0, err
	}
	var hits int
	for i, p := range predictions {
		if p == s.Labels[i] {
			hits++
		}
	}
	result := float64(hits) / float64(len(predictions))
	logging.FromContext(ctx).Debugw("tree tested", "samples", len(predictions), "hits", hits)
	return result, nil
}
