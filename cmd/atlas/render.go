package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/disaster-atlas/internal/domain"
	"github.com/couchcryptid/disaster-atlas/internal/render"
)

type renderOptions struct {
	out          string
	disasterType string
	outlierTypes []string
	threshold    int
	width        int
	height       int
}

func newRenderCmd() *cobra.Command {
	var opts renderOptions
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write every chart as PNG plus the frequency workbook to a directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.out, "out", "o", "charts", "output directory")
	cmd.Flags().StringVar(&opts.disasterType, "type", "", "disaster type for the location map (default first type in the dataset)")
	cmd.Flags().StringSliceVar(&opts.outlierTypes, "outlier-type", nil, "types for the magnitude/deaths comparison (default OUTLIER_TYPES)")
	cmd.Flags().IntVar(&opts.threshold, "threshold", -1, "pivot threshold (default PIVOT_THRESHOLD)")
	cmd.Flags().IntVar(&opts.width, "width", render.DefaultSize.Width, "image width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", render.DefaultSize.Height, "image height in pixels")
	return cmd
}

// chartJob renders one output file.
type chartJob struct {
	file string
	draw func() ([]byte, error)
}

func runRender(ctx context.Context, opts renderOptions) error {
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(opts.out, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if len(opts.outlierTypes) > 0 {
		a.cfg.OutlierTypes = opts.outlierTypes
	}
	svc := a.service()
	size := render.Size{Width: opts.width, Height: opts.height}
	all := domain.Criteria{}
	byType := domain.Criteria{Type: opts.disasterType}

	if byType.Type == "" {
		byType.Type = svc.DefaultLocationType()
	}
	title := "Total Deaths by Disaster Location for " + byType.Type
	threshold := opts.threshold
	if threshold < 0 {
		threshold = svc.PivotThreshold()
	}

	jobs := []chartJob{
		{"locations.png", func() ([]byte, error) { return render.Locations(svc.Locations(byType), title, size) }},
		{"cumulative-deaths.png", func() ([]byte, error) { return render.CumulativeDeaths(svc.CumulativeDeaths(all), size) }},
		{"damage-over-time.png", func() ([]byte, error) { return render.DamageOverTime(svc.DamageOverTime(all), size) }},
		{"deaths-by-type.png", func() ([]byte, error) { return render.DeathsByType(svc.DeathsByTypeAndCountry(all), size) }},
		{"damage-vs-deaths.png", func() ([]byte, error) { return render.DamageVsDeaths(svc.DamageVsDeaths(all), size) }},
		{"heatmap.png", func() ([]byte, error) { return render.Heatmap(svc.Heatmap(threshold), size) }},
		{"heatmap.xlsx", func() ([]byte, error) { return render.HeatmapXLSX(svc.Heatmap(threshold), threshold) }},
	}

	for _, t := range svc.OutlierTypes() {
		jobs = append(jobs, chartJob{
			file: "magnitude-deaths-" + fileSlug(t) + ".png",
			draw: func() ([]byte, error) {
				cmp, err := svc.MagnitudeDeaths(t)
				if err != nil {
					return nil, err
				}
				return render.MagnitudeDeaths(cmp, size)
			},
		})
	}

	written := 0
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return err
		}
		b, err := job.draw()
		switch {
		case errors.Is(err, domain.ErrNoData):
			a.logger.Warn("chart skipped: no data", "file", job.file)
			continue
		case err != nil:
			return fmt.Errorf("render %s: %w", job.file, err)
		}

		path := filepath.Join(opts.out, job.file)
		if err := os.WriteFile(path, b, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		a.logger.Info("chart written", "path", path, "bytes", len(b))
		written++
	}

	a.logger.Info("render complete", "dir", opts.out, "files", written)
	return nil
}

func fileSlug(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
}
