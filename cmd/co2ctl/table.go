package main

import (
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"co2-predictor-service/internal/core/domain"
)

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// renderArtifact prints one row per artifact field.
func renderArtifact(a *domain.ModelArtifact, markdown bool) string {
	w := table.NewWriter()
	w.SetStyle(table.StyleLight)
	w.AppendHeader(table.Row{"Field", "Value"})

	created := "-"
	if !a.CreatedAt.IsZero() {
		created = a.CreatedAt.Format(time.RFC3339)
	}
	w.AppendRows([]table.Row{
		{"id", a.ID.String()},
		{"created_at", created},
		{"intercept", formatFloat(a.Intercept)},
		{"coefficient_weight", formatFloat(a.CoefficientWeight)},
		{"coefficient_volume", formatFloat(a.CoefficientVolume)},
	})
	if a.Training.Rows > 0 {
		w.AppendSeparator()
		w.AppendRows([]table.Row{
			{"training_rows", a.Training.Rows},
			{"mse", formatFloat(a.Training.MSE)},
			{"r2", formatFloat(a.Training.R2)},
		})
	}
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})

	if markdown {
		return w.RenderMarkdown() + "\n"
	}
	return w.Render() + "\n"
}
