package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"co2-predictor-service/internal/adapters/secondary/remote"
	"co2-predictor-service/internal/config"
)

func newFetchCmd() *cobra.Command {
	var flags struct {
		url     string
		out     string
		timeout time.Duration
	}

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download a dataset or model file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client := remote.NewClient(&config.RemoteConfig{Timeout: flags.timeout})
			if err := client.Fetch(cmd.Context(), flags.url, flags.out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Downloaded %s to %s\n", flags.url, flags.out)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.url, "url", "", "Source URL (required)")
	f.StringVarP(&flags.out, "out", "o", "", "Destination path (required)")
	f.DurationVar(&flags.timeout, "timeout", 30*time.Second, "Download timeout")

	_ = cmd.MarkFlagRequired("url")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
