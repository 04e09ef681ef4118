// Package cli implements the softmctl maintenance commands.
package cli

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type options struct {
	databaseURL string
	redisAddr   string
	verbose     bool
	out         io.Writer
}

func (o *options) logger() *slog.Logger {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewRootCommand builds softmctl. Command output goes to out.
func NewRootCommand(out io.Writer) *cobra.Command {
	opts := &options{out: out}
	root := &cobra.Command{
		Use:   "softmctl",
		Short: "SOFT-M maintenance commands",
		Long: `softmctl runs maintenance tasks against the SOFT-M database and queue:
schema migrations, development seed data, OpenAPI export and job inspection.

Connection settings default to DATABASE_URL and REDIS_ADDR, read from the
environment or a .env file in the working directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			if !cmd.Flags().Changed("database-url") {
				opts.databaseURL = os.Getenv("DATABASE_URL")
			}
			if !cmd.Flags().Changed("redis-addr") {
				if addr, ok := os.LookupEnv("REDIS_ADDR"); ok {
					opts.redisAddr = addr
				}
			}
			return nil
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&opts.databaseURL, "database-url", "", "Postgres connection string (default $DATABASE_URL)")
	root.PersistentFlags().StringVar(&opts.redisAddr, "redis-addr", "127.0.0.1:6379", "Redis address, empty to skip (default $REDIS_ADDR)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output")

	root.AddCommand(
		newMigrateCommand(opts),
		newSeedCommand(opts),
		newOpenAPICommand(opts),
		newJobsCommand(opts),
	)
	return root
}
