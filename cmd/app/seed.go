package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/osse101/QuizDuel_Go/internal/config"
	"github.com/osse101/QuizDuel_Go/internal/database"
	"github.com/osse101/QuizDuel_Go/internal/database/postgres"
	"github.com/osse101/QuizDuel_Go/internal/seed"
)

func newSeedCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "seed-content <file.yaml>",
		Short: "Load quiz content, student profiles and friendships from YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			file, err := seed.LoadFile(args[0])
			if err != nil {
				return err
			}
			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "valid: %d content, %d profiles, %d friendships\n",
					len(file.Content), len(file.Profiles), len(file.Friendships))
				return nil
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			initLogger(cfg)

			pool, err := database.NewPool(ctx, cfg.GetDBConnString(), 2, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer pool.Close()

			if err := database.Migrate(ctx, pool); err != nil {
				return err
			}

			res, err := seed.Apply(ctx, file, postgres.NewContentRepository(pool), postgres.NewSocialRepository(pool))
			if err != nil {
				return err
			}
			slog.Info("Seed applied", "content", res.Content, "profiles", res.Profiles, "friendships", res.Friendships)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate the file without touching the database")
	return cmd
}
