package tree

import (
	"cmp"
	"context"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"
)

/*
Node is a node of the tree. Internal nodes split the samples that reach them
on a single feature: samples whose value for Feature is strictly less than
Threshold go to Left, the rest go to Right. Leaves have no children.
*/
type Node[L cmp.Ordered] struct {
	// The index of the feature the node splits on. Meaningless on leaves.
	Feature int
	// The split point for Feature. Meaningless on leaves.
	Threshold float64
	// The majority label among the training samples that reached the node.
	// It is set on every node, internal or leaf.
	Label L
	// The number of training samples that reached the node.
	SampleCount int
	// The Gini impurity reduction achieved by the node's split. Zero on leaves.
	ImpurityGain float64
	// The subtrees for samples below and at-or-above the threshold.
	Left, Right *Node[L]
}

// IsLeaf returns whether the node has no children.
func (n *Node[L]) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

/*
Predict takes a feature vector and returns the label of the leaf it reaches
starting from this node. The sample is expected to have at least as many
values as the highest feature index used by the subtree.
*/
func (n *Node[L]) Predict(sample []float64) L {
	for !n.IsLeaf() {
		if sample[n.Feature] < n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Label
}

/*
prune collapses, children first, every internal node whose children are both
leaves and whose split contribution (its impurity gain weighted by the share of
the total training samples that reached it) is below the criterion.
*/
func (n *Node[L]) prune(criterion float64, rootSampleCount int) {
	if n.IsLeaf() {
		return
	}
	n.Left.prune(criterion, rootSampleCount)
	n.Right.prune(criterion, rootSampleCount)
	if !n.Left.IsLeaf() || !n.Right.IsLeaf() {
		return
	}
	contribution := n.ImpurityGain * float64(n.SampleCount) / float64(rootSampleCount)
	if contribution < criterion {
		n.collapse()
	}
}

func (n *Node[L]) collapse() {
	n.Feature = 0
	n.Threshold = 0
	n.ImpurityGain = 0
	n.Left = nil
	n.Right = nil
}

/*
builder holds the training data shared by every node while a tree is grown.
Labels are replaced by the index of their class in the ascending list of
distinct labels so counting and tie-breaking need no maps.
*/
type builder[L cmp.Ordered] struct {
	ctx      context.Context
	data     [][]float64
	classes  []L
	y        []int
	features int
	maxDepth int
	group    *errgroup.Group
}

func newBuilder[L cmp.Ordered](ctx context.Context, data [][]float64, labels []L, maxDepth int) *builder[L] {
	classes := distinct(labels)
	index := make(map[L]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}
	y := make([]int, len(labels))
	for i, l := range labels {
		y[i] = index[l]
	}
	return &builder[L]{
		ctx:      ctx,
		data:     data,
		classes:  classes,
		y:        y,
		features: len(data[0]),
		maxDepth: maxDepth,
	}
}

/*
build populates n from the training rows with the given indexes and grows its
subtree. When the builder has a group, left subtrees are handed to it while
there is spare capacity and built inline otherwise.
*/
func (b *builder[L]) build(n *Node[L], rows []int, depth int) error {
	if err := b.ctx.Err(); err != nil {
		return err
	}
	n.SampleCount = len(rows)
	counts := b.count(rows)
	var majority, present int
	for c, k := range counts {
		if k > 0 {
			present++
		}
		if k > counts[majority] {
			majority = c
		}
	}
	n.Label = b.classes[majority]
	if present == 1 {
		return nil
	}
	if b.maxDepth > 0 && depth >= b.maxDepth {
		return nil
	}
	feature, threshold, gain := b.bestSplit(rows, counts)
	if gain <= 0.0 {
		return nil
	}
	n.Feature = feature
	n.Threshold = threshold
	n.ImpurityGain = gain
	left, right := b.partition(rows, feature, threshold)
	n.Left = &Node[L]{}
	n.Right = &Node[L]{}
	buildLeft := func() error {
		return b.build(n.Left, left, depth+1)
	}
	if b.group == nil || !b.group.TryGo(buildLeft) {
		if err := buildLeft(); err != nil {
			return err
		}
	}
	return b.build(n.Right, right, depth+1)
}

/*
bestSplit returns the feature, threshold and impurity reduction of the best
split for the given rows, or a zero gain if no split reduces impurity.
Features are tried in index order and thresholds in ascending order; a
candidate only replaces the current best when its gain is strictly greater.
*/
func (b *builder[L]) bestSplit(rows []int, counts []int) (int, float64, float64) {
	total := len(rows)
	impurity := giniFromCounts(counts, total)
	var bestFeature int
	var bestThreshold, bestGain float64
	sorted := make([]int, total)
	left := make([]int, len(b.classes))
	right := make([]int, len(b.classes))
	for f := 0; f < b.features; f++ {
		copy(sorted, rows)
		sort.SliceStable(sorted, func(i, j int) bool {
			return b.data[sorted[i]][f] < b.data[sorted[j]][f]
		})
		for c := range left {
			left[c] = 0
		}
		copy(right, counts)
		nLeft := 0
		for i := 0; i < total-1; i++ {
			a, z := b.data[sorted[i]][f], b.data[sorted[i+1]][f]
			if a == z {
				continue
			}
			threshold := (a + z) / 2.0
			if math.IsInf(threshold, 0) {
				threshold = a/2.0 + z/2.0
			}
			for nLeft < total && b.data[sorted[nLeft]][f] < threshold {
				c := b.y[sorted[nLeft]]
				left[c]++
				right[c]--
				nLeft++
			}
			if nLeft == 0 || nLeft == total {
				continue
			}
			pl := float64(nLeft) / float64(total)
			pr := float64(total-nLeft) / float64(total)
			gain := impurity - (pl*giniFromCounts(left, nLeft) + pr*giniFromCounts(right, total-nLeft))
			if gain > bestGain {
				bestFeature = f
				bestThreshold = threshold
				bestGain = gain
			}
		}
	}
	return bestFeature, bestThreshold, bestGain
}

func (b *builder[L]) partition(rows []int, feature int, threshold float64) ([]int, []int) {
	var left, right []int
	for _, r := range rows {
		if b.data[r][feature] < threshold {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}
	return left, right
}

func (b *builder[L]) count(rows []int) []int {
	counts := make([]int, len(b.classes))
	for _, r := range rows {
		counts[b.y[r]]++
	}
	return counts
}
