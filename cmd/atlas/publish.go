package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	kafkaadapter "github.com/couchcryptid/disaster-atlas/internal/adapter/kafka"
	"github.com/couchcryptid/disaster-atlas/internal/pipeline"
)

func newPublishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publish",
		Short: "Replay the dataset onto a Kafka topic",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPublish(cmd.Context())
		},
	}
}

func runPublish(ctx context.Context) error {
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}

	writer := kafkaadapter.NewWriter(a.cfg, a.dataset.LoadedAt(), a.logger)
	defer func() {
		if err := writer.Close(); err != nil {
			a.logger.Error("kafka writer close error", "error", err)
		}
	}()

	replay := pipeline.New(writer, a.logger, a.metrics, a.cfg.BatchSize)
	n, err := replay.Run(ctx, a.dataset.Records())
	if err != nil {
		return fmt.Errorf("publish after %d records: %w", n, err)
	}

	a.logger.Info("publish complete",
		"records", n,
		"topic", a.cfg.KafkaTopic,
		"brokers", a.cfg.KafkaBrokers,
	)
	return nil
}
