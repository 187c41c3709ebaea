package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pbanos/shrub"
	"github.com/pbanos/shrub/dataset/csv"
	"github.com/pbanos/shrub/dataset/parquetset"
)

type predictCmdConfig struct {
	*growCmdConfig
	predictDataInput string
	output           string
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the class of a set of samples",
		Long:  `Grow a tree from a training set and use it to predict the class of every sample in another set.`,
	}
	config := &predictCmdConfig{growCmdConfig: newGrowCmdConfig(cmd, rootConfig)}
	cmd.PersistentFlags().StringVarP(&(config.predictDataInput), "data", "d", "", inputFlagUsage+" with the samples to predict (required)")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a CSV (.csv) or Parquet (.parquet) file to write the predictions to (defaults to STDOUT, as CSV)")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if config.predictDataInput == "" {
			return fail(1, fmt.Errorf("required data flag was not set"))
		}
		t, err := config.growTree()
		if err != nil {
			return err
		}
		s, err := config.readSet(config.predictDataInput, config.metadata, false)
		if err != nil {
			return fail(5, err)
		}
		labels, err := shrub.Predict(config.Context(), t, s)
		if err != nil {
			return fail(6, fmt.Errorf("predicting: %v", err))
		}
		ids := make([]string, len(labels))
		for i := range ids {
			ids[i] = s.ID(i)
		}
		if err := config.writePredictions(cmd, ids, labels); err != nil {
			return fail(7, fmt.Errorf("writing predictions: %v", err))
		}
		config.logger().Infof("Predicted the class of %d samples", len(labels))
		return nil
	}
	return cmd
}

func (pcc *predictCmdConfig) writePredictions(cmd *cobra.Command, ids, labels []string) error {
	if pcc.output == "" {
		return csv.WritePredictions(cmd.OutOrStdout(), ids, labels)
	}
	if strings.HasSuffix(strings.ToLower(pcc.output), ".parquet") {
		return parquetset.WritePredictions(pcc.output, ids, labels)
	}
	f, err := os.Create(pcc.output)
	if err != nil {
		return err
	}
	if err := csv.WritePredictions(f, ids, labels); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
