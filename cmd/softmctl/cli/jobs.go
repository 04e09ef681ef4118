package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"

	"github.com/soft-m/softm-api/internal/clients"
	"github.com/soft-m/softm-api/internal/platform/db"
	"github.com/soft-m/softm-api/jobs"
)

// queueInspector is the part of *asynq.Inspector used here.
type queueInspector interface {
	GetQueueInfo(queue string) (*asynq.QueueInfo, error)
	Close() error
}

// QueueStats summarises the current queue state.
type QueueStats struct {
	Queue     string
	Pending   int
	Active    int
	Scheduled int
	Retry     int
	Archived  int
}

// InspectQueue reports the default queue counters.
func InspectQueue(inspector queueInspector) (QueueStats, error) {
	if inspector == nil {
		return QueueStats{}, errors.New("jobs: inspector not configured")
	}
	info, err := inspector.GetQueueInfo(jobs.QueueDefault)
	if err != nil {
		return QueueStats{}, err
	}
	stats := QueueStats{Queue: jobs.QueueDefault}
	if info != nil {
		stats.Pending = info.Pending
		stats.Active = info.Active
		stats.Scheduled = info.Scheduled
		stats.Retry = info.Retry
		stats.Archived = info.Archived
	}
	return stats, nil
}

func newJobsCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Inspect and trigger background jobs",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show default queue counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.redisAddr == "" {
				return errors.New("jobs: --redis-addr required")
			}
			inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: opts.redisAddr})
			defer inspector.Close()
			stats, err := InspectQueue(inspector)
			if err != nil {
				return err
			}
			fmt.Fprintf(opts.out, "queue=%s pending=%d active=%d scheduled=%d retry=%d archived=%d\n",
				stats.Queue, stats.Pending, stats.Active, stats.Scheduled, stats.Retry, stats.Archived)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "onboarding <client-id>",
		Short: "Re-enqueue the onboarding follow-up for a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.redisAddr == "" {
				return errors.New("jobs: --redis-addr required")
			}
			ctx := cmd.Context()
			pool, err := db.New(ctx, opts.databaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()

			client := jobs.NewClient(asynq.RedisClientOpt{Addr: opts.redisAddr})
			defer client.Close()

			if err := triggerOnboarding(ctx, clients.NewRepository(pool), client, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(opts.out, "✓ onboarding enqueued for %s\n", args[0])
			return nil
		},
	})
	return cmd
}

type clientGetter interface {
	Get(ctx context.Context, id string) (clients.Client, error)
}

func triggerOnboarding(ctx context.Context, repo clientGetter, publisher clients.EventPublisher, id string) error {
	c, err := repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, clients.ErrNotFound) {
			return fmt.Errorf("client %s not found", id)
		}
		return err
	}
	return publisher.PublishClientCreated(ctx, clients.NewCreatedEvent(c))
}
