package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pbanos/shrub"
	"github.com/pbanos/shrub/dataset"
	"github.com/pbanos/shrub/tree"
)

// growCmdConfig holds the flags of every command that grows a tree first.
type growCmdConfig struct {
	*rootCmdConfig
	dataInput     string
	metadataInput string
	criterion     float64
	maxDepth      int
	workers       int
	metadata      *dataset.Metadata
}

func newGrowCmdConfig(cmd *cobra.Command, rootConfig *rootCmdConfig) *growCmdConfig {
	config := &growCmdConfig{rootCmdConfig: rootConfig}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", inputFlagUsage+" with data to grow the tree (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the features and class of the input data (required)")
	cmd.PersistentFlags().Float64VarP(&(config.criterion), "prune", "p", rootConfig.Criterion, "pruning criterion: splits whose gain weighted by the fraction of samples reaching them is below it are collapsed")
	cmd.PersistentFlags().IntVar(&(config.maxDepth), "max-depth", rootConfig.MaxDepth, "maximum depth of the grown tree (0: no limit)")
	cmd.PersistentFlags().IntVar(&(config.workers), "workers", rootConfig.Workers, "number of goroutines growing subtrees concurrently")
	cmd.PersistentFlags().IntVar(&(config.MaxDBConns), "max-db-conns", rootConfig.MaxDBConns, "limit to DB connections opened at a time (0: no limit)")
	return config
}

func (gcc *growCmdConfig) Validate() error {
	if gcc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if gcc.maxDepth < 0 {
		return fmt.Errorf("max-depth cannot be negative")
	}
	if gcc.workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}
	return nil
}

/*
growTree validates the flags, reads the metadata and the training set and
grows a tree from it. Failures are returned wrapped with the exit code of
the stage they happened in.
*/
func (gcc *growCmdConfig) growTree() (*tree.Tree[string], error) {
	if err := gcc.Validate(); err != nil {
		return nil, fail(1, err)
	}
	md, err := dataset.ReadMetadataFromFile(gcc.metadataInput)
	if err != nil {
		return nil, fail(2, err)
	}
	gcc.metadata = md
	trainingSet, err := gcc.readSet(gcc.dataInput, md, true)
	if err != nil {
		return nil, fail(3, err)
	}
	gcc.logger().Infof("Growing tree from a set with %d samples and %d features to predict %s ...", trainingSet.Count(), len(md.Features), md.Class)
	t, err := shrub.Grow(gcc.Context(), trainingSet, gcc.criterion, tree.WithMaxDepth(gcc.maxDepth), tree.WithWorkers(gcc.workers))
	if err != nil {
		return nil, fail(4, err)
	}
	return t, nil
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a set of data",
		Long:  `Grow a classification tree from a set of labeled data and print it.`,
	}
	config := newGrowCmdConfig(cmd, rootConfig)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		t, err := config.growTree()
		if err != nil {
			return err
		}
		if err := newTreePrinter(config.noColor).Print(cmd.OutOrStdout(), t, config.metadata.Features); err != nil {
			return fail(5, fmt.Errorf("printing tree: %v", err))
		}
		return nil
	}
	return cmd
}
