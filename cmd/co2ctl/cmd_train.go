package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"co2-predictor-service/internal/adapters/secondary/csvdataset"
	"co2-predictor-service/internal/adapters/secondary/filestore"
	"co2-predictor-service/internal/core/regression"
)

func newTrainCmd() *cobra.Command {
	var flags struct {
		data string
		out  string
	}

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Fit a model on a CSV dataset and write the artifact",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dataset, err := csvdataset.NewFileLoader(flags.data).Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("load dataset: %w", err)
			}
			artifact, err := regression.Train(dataset)
			if err != nil {
				return fmt.Errorf("train: %w", err)
			}
			artifact.ID = uuid.New()
			artifact.CreatedAt = time.Now().UTC()

			if err := filestore.WriteFile(flags.out, artifact); err != nil {
				return fmt.Errorf("write artifact: %w", err)
			}
			log.WithFields(log.Fields{
				"artifact_id": artifact.ID,
				"path":        flags.out,
			}).Info("model trained")

			fmt.Fprintf(cmd.OutOrStdout(), "Model saved to %s\n", flags.out)
			fmt.Fprint(cmd.OutOrStdout(), renderArtifact(artifact, false))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.data, "data", "data.csv", "CSV dataset with weight, volume and co2 columns")
	f.StringVarP(&flags.out, "out", "o", "co2_model.json", "Artifact output path (.json, .yaml or .yml)")
	return cmd
}
