package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soft-m/softm-api/internal/clients"
	"github.com/soft-m/softm-api/internal/platform/db"
)

func newMigrateCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pool, err := db.New(ctx, opts.databaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()
			if err := db.Migrate(ctx, pool, opts.logger()); err != nil {
				return err
			}
			fmt.Fprintln(opts.out, "✓ migrations applied")
			return nil
		},
	}
}

func newSeedCommand(opts *options) *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace all clients with the development sample set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pool, err := db.New(ctx, opts.databaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()
			if migrate {
				if err := db.Migrate(ctx, pool, opts.logger()); err != nil {
					return err
				}
			}

			fmt.Fprintln(opts.out, "→ Seeding clients...")
			created, err := clients.Seed(ctx, pool)
			if err != nil {
				return err
			}
			for _, c := range created {
				fmt.Fprintf(opts.out, "  %s  %-14s %-9s %s\n", c.ID, c.SIRET, c.Status, c.Name)
			}
			if err := clients.InvalidateCache(ctx, opts.redisAddr); err != nil {
				opts.logger().Warn("client cache not invalidated", "error", err)
			}
			fmt.Fprintf(opts.out, "✓ Seeded %d clients\n", len(created))
			return nil
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "Apply migrations before seeding")
	return cmd
}
