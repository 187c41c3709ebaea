package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pbanos/shrub"
)

type testCmdConfig struct {
	*growCmdConfig
	testDataInput string
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the accuracy of a tree",
		Long:  `Grow a tree from a training set and test its accuracy against a labeled testing set.`,
	}
	config := &testCmdConfig{growCmdConfig: newGrowCmdConfig(cmd, rootConfig)}
	cmd.PersistentFlags().StringVarP(&(config.testDataInput), "data", "d", "", inputFlagUsage+" with labeled data to test the tree against (required)")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if config.testDataInput == "" {
			return fail(1, fmt.Errorf("required data flag was not set"))
		}
		t, err := config.growTree()
		if err != nil {
			return err
		}
		testingSet, err := config.readSet(config.testDataInput, config.metadata, true)
		if err != nil {
			return fail(5, err)
		}
		config.logger().Infof("Testing tree against set with %d samples...", testingSet.Count())
		accuracy, err := shrub.Test(config.Context(), t, testingSet)
		if err != nil {
			return fail(6, fmt.Errorf("testing tree: %v", err))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%f\n", accuracy)
		return nil
	}
	return cmd
}
