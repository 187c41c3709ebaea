package tree

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"strings"

	"golang.org/x/sync/errgroup"
)

// DefaultCriterion is the pruning criterion used when none is given.
const DefaultCriterion = 0.1

/*
Tree represents a binary classification tree over numeric feature vectors
predicting labels of type L. It owns its root node and the criterion used to
prune it after growing.
*/
type Tree[L cmp.Ordered] struct {
	// Criterion is the minimum contribution a bottom split must have to
	// survive pruning.
	Criterion float64
	maxDepth  int
	workers   int
	root      *Node[L]
	features  int
}

// Option configures a Tree.
type Option func(*options)

type options struct {
	maxDepth int
	workers  int
}

/*
WithMaxDepth returns an Option that stops nodes at the given depth (the root
being at depth 0) from being split. A value of 0 or less means no limit.
*/
func WithMaxDepth(d int) Option {
	return func(o *options) {
		o.maxDepth = d
	}
}

/*
WithWorkers returns an Option that lets Fit grow sibling subtrees on up to n
goroutines at a time. The grown tree is the same for any value of n.
*/
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// New takes a pruning criterion and options and returns an unfitted tree.
func New[L cmp.Ordered](criterion float64, opts ...Option) *Tree[L] {
	o := &options{workers: 1}
	for _, opt := range opts {
		opt(o)
	}
	return &Tree[L]{Criterion: criterion, maxDepth: o.maxDepth, workers: o.workers}
}

/*
Fit takes a context, a matrix of feature vectors and their labels and grows
the tree from them, then prunes it once with the tree's criterion. Any
previously fit model is discarded on success and kept on failure.
It returns an error wrapping ErrInvalidInput if the matrix is empty, ragged,
has NaN or infinite values or does not have one label per row, and the context error if
the context is cancelled while growing.
*/
func (t *Tree[L]) Fit(ctx context.Context, data [][]float64, labels []L) error {
	if err := validateTrainingSet(data, labels); err != nil {
		return err
	}
	var g *errgroup.Group
	bctx := ctx
	if t.workers > 1 {
		g, bctx = errgroup.WithContext(ctx)
		g.SetLimit(t.workers - 1)
	}
	b := newBuilder(bctx, data, labels, t.maxDepth)
	b.group = g
	rows := make([]int, len(data))
	for i := range rows {
		rows[i] = i
	}
	root := &Node[L]{}
	err := b.build(root, rows, 0)
	if g != nil {
		if werr := g.Wait(); err == nil {
			err = werr
		}
	}
	if err != nil {
		return fmt.Errorf("growing tree: %w", err)
	}
	root.prune(t.Criterion, root.SampleCount)
	t.root = root
	t.features = len(data[0])
	return nil
}

func validateTrainingSet[L any](data [][]float64, labels []L) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: no samples to fit", ErrInvalidInput)
	}
	if len(labels) != len(data) {
		return fmt.Errorf("%w: got %d labels for %d samples", ErrInvalidInput, len(labels), len(data))
	}
	width := len(data[0])
	if width == 0 {
		return fmt.Errorf("%w: samples have no features", ErrInvalidInput)
	}
	for i, row := range data {
		if len(row) != width {
			return fmt.Errorf("%w: sample %d has %d features, expected %d", ErrInvalidInput, i, len(row), width)
		}
		if err := checkValues(row); err != nil {
			return fmt.Errorf("sample %d: %w", i, err)
		}
		for j, v := range row {
			if math.IsInf(v, 0) {
				return fmt.Errorf("%w: sample %d: feature %d is infinite", ErrInvalidInput, i, j)
			}
		}
	}
	return nil
}

// Root returns the root node of the tree, or nil if it has not been fit.
func (t *Tree[L]) Root() *Node[L] {
	return t.root
}

// Features returns the number of features the tree was fit with.
func (t *Tree[L]) Features() int {
	return t.features
}

/*
Depth returns the number of splits on the longest path from the root to a
leaf, 0 for a single-leaf tree or -1 for an unfitted one.
*/
func (t *Tree[L]) Depth() int {
	if t.root == nil {
		return -1
	}
	var depth int
	t.Walk(func(_ *Node[L], d int, _ string) error {
		if d > depth {
			depth = d
		}
		return nil
	})
	return depth
}

// Leaves returns the number of leaves of the tree.
func (t *Tree[L]) Leaves() int {
	var leaves int
	t.Walk(func(n *Node[L], _ int, _ string) error {
		if n.IsLeaf() {
			leaves++
		}
		return nil
	})
	return leaves
}

// Traverse takes a context, bottomup boolean and an
// error-returning function that takes a context and a node
// as parameters, and goes through the tree running the
// function with the context and every traversed node.
// Traverse will call the function with a parent node before
// calling it for its children if bottomup is false, and
// call it after its children if bottomup is true.
// If the given context times out or is cancelled, the context
// error is returned. If the call to the function returns an
// error, the traversing is aborted and the error is returned.
// Traversing an unfitted tree returns ErrNotFitted.
func (t *Tree[L]) Traverse(ctx context.Context, bottomup bool, f func(context.Context, *Node[L]) error) error {
	if t.root == nil {
		return ErrNotFitted
	}
	return traverse(ctx, t.root, bottomup, f)
}

func traverse[L cmp.Ordered](ctx context.Context, n *Node[L], bottomup bool, f func(context.Context, *Node[L]) error) error {
	err := ctx.Err()
	if err != nil {
		return err
	}
	if !bottomup {
		if err = f(ctx, n); err != nil {
			return err
		}
	}
	if !n.IsLeaf() {
		if err = traverse(ctx, n.Left, bottomup, f); err != nil {
			return err
		}
		if err = traverse(ctx, n.Right, bottomup, f); err != nil {
			return err
		}
	}
	if bottomup {
		return f(ctx, n)
	}
	return nil
}

/*
Walk visits the nodes of the tree in preorder calling f with each node, its
depth and the branch that led to it: "T" for the left branch (the split
question answered true), "F" for the right one and "" for the root.
Walking stops at the first error returned by f, which Walk returns.
*/
func (t *Tree[L]) Walk(f func(n *Node[L], depth int, branch string) error) error {
	if t.root == nil {
		return nil
	}
	return walk(t.root, 0, "", f)
}

func walk[L cmp.Ordered](n *Node[L], depth int, branch string, f func(*Node[L], int, string) error) error {
	if err := f(n, depth, branch); err != nil {
		return err
	}
	if n.IsLeaf() {
		return nil
	}
	if err := walk(n.Left, depth+1, "T", f); err != nil {
		return err
	}
	return walk(n.Right, depth+1, "F", f)
}

/*
String renders the tree one node per line, indented with a tab per level.
Internal nodes show their split question and leaves their label and
training sample count, e.g.

	 ->0 < 2.5?
		T ->{0 : 2}
		F ->{1 : 2}
*/
func (t *Tree[L]) String() string {
	if t.root == nil {
		return "<unfitted tree>\n"
	}
	var sb strings.Builder
	t.Walk(func(n *Node[L], depth int, branch string) error {
		sb.WriteString(NodeHeader(depth, branch))
		sb.WriteString(NodeText(n))
		sb.WriteString("\n")
		return nil
	})
	return sb.String()
}

// NodeHeader returns the indentation and branch marker prefixing a node line.
func NodeHeader(depth int, branch string) string {
	return strings.Repeat("\t", depth) + branch + " ->"
}

// NodeText returns the split question of an internal node or the
// label and sample count of a leaf.
func NodeText[L cmp.Ordered](n *Node[L]) string {
	if n.IsLeaf() {
		return fmt.Sprintf("{%v : %d}", n.Label, n.SampleCount)
	}
	return fmt.Sprintf("%d < %v?", n.Feature, n.Threshold)
}
