package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"co2-predictor-service/internal/adapters/secondary/filestore"
	"co2-predictor-service/internal/core/domain"
	"co2-predictor-service/internal/core/regression"
)

func newPredictCmd() *cobra.Command {
	var flags struct {
		model  string
		weight float64
		volume float64
	}

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Estimate CO2 emissions for a car with a saved model",
		RunE: func(cmd *cobra.Command, _ []string) error {
			artifact, err := filestore.ReadFile(flags.model)
			if err != nil {
				return fmt.Errorf("load model: %w", err)
			}
			co2, err := regression.Predict(artifact, flags.weight, flags.volume)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Predicted CO2: %.2f g/km (%s)\n", co2, domain.ClassifyEmission(co2))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.model, "model", "co2_model.json", "Model artifact path")
	f.Float64Var(&flags.weight, "weight", 0, "Car weight in kg (required)")
	f.Float64Var(&flags.volume, "volume", 0, "Engine volume in cm3 (required)")

	_ = cmd.MarkFlagRequired("weight")
	_ = cmd.MarkFlagRequired("volume")
	return cmd
}
