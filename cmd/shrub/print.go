package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/pbanos/shrub/tree"
)

// treePrinter writes trees in the same layout as tree.Tree.String,
// colouring split questions and leaves.
type treePrinter struct {
	question *color.Color
	leaf     *color.Color
}

func newTreePrinter(noColor bool) *treePrinter {
	tp := &treePrinter{
		question: color.New(color.FgCyan),
		leaf:     color.New(color.FgGreen, color.Bold),
	}
	if noColor {
		tp.question.DisableColor()
		tp.leaf.DisableColor()
	}
	return tp
}

/*
Print writes the given tree to w followed by a legend with the name of
each feature index the tree's questions refer to.
*/
func (tp *treePrinter) Print(w io.Writer, t *tree.Tree[string], features []string) error {
	if t.Root() == nil {
		_, err := fmt.Fprint(w, t)
		return err
	}
	err := t.Walk(func(n *tree.Node[string], depth int, branch string) error {
		if _, err := fmt.Fprint(w, tree.NodeHeader(depth, branch)); err != nil {
			return err
		}
		c := tp.question
		if n.IsLeaf() {
			c = tp.leaf
		}
		_, err := c.Fprintln(w, tree.NodeText(n))
		return err
	})
	if err != nil {
		return err
	}
	for i, f := range features {
		if _, err := fmt.Fprintf(w, "# %d: %s\n", i, f); err != nil {
			return err
		}
	}
	return nil
}
