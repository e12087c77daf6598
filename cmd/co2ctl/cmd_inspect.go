package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"co2-predictor-service/internal/adapters/secondary/filestore"
)

func newInspectCmd() *cobra.Command {
	var flags struct {
		model    string
		markdown bool
	}

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the coefficients and training summary of a model",
		RunE: func(cmd *cobra.Command, _ []string) error {
			artifact, err := filestore.ReadFile(flags.model)
			if err != nil {
				return fmt.Errorf("load model: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderArtifact(artifact, flags.markdown))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.model, "model", "co2_model.json", "Model artifact path")
	f.BoolVar(&flags.markdown, "markdown", false, "Render as a Markdown table")
	return cmd
}
