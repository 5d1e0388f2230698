package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	subreddit "github.com/jamesprial/go-subreddit"
	"github.com/jamesprial/go-subreddit/internal/publish"
)

// Snapshot is the first page of every post listing of a subreddit.
type Snapshot struct {
	Subreddit string                            `json:"subreddit"`
	FetchedAt time.Time                         `json:"fetched_at"`
	Listings  map[string]*subreddit.Submissions `json:"listings"`
}

// takeSnapshot fetches all listings concurrently. The first failure cancels
// the remaining requests.
func takeSnapshot(ctx context.Context, sub *subreddit.Subreddit, limit int) (*Snapshot, error) {
	results := make([]*subreddit.Submissions, len(sorts))

	g, ctx := errgroup.WithContext(ctx)
	for i, sort := range sorts {
		fetch, err := feedFor(sub, sort)
		if err != nil {
			return nil, err
		}
		g.Go(func() error {
			page, err := fetch(ctx, limit, nil)
			if err != nil {
				return fmt.Errorf("fetching %s: %w", sort, err)
			}
			results[i] = page
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Subreddit: sub.Name,
		FetchedAt: time.Now().UTC(),
		Listings:  make(map[string]*subreddit.Submissions, len(sorts)),
	}
	for i, sort := range sorts {
		snap.Listings[sort] = results[i]
	}
	return snap, nil
}

func (a *App) newSnapshotCommand() *cobra.Command {
	var (
		limit   int
		natsURL string
		subject string
	)

	cmd := &cobra.Command{
		Use:   "snapshot <subreddit>",
		Short: "Fetch every post listing at once",
		Long: `Fetch the first page of the hot, rising, top and new listings concurrently.

The snapshot is printed as JSON, or with --nats each listing is published
to <subject>.<subreddit>.<listing>.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("limit") {
				limit = a.cfg.Feed.Limit
			}
			if !flags.Changed("nats") {
				natsURL = a.cfg.NATS.URL
			}
			if !flags.Changed("subject") {
				subject = a.cfg.NATS.Subject
			}

			sub, err := a.subreddit(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			snap, err := takeSnapshot(ctx, sub, limit)
			if err != nil {
				return fmt.Errorf("snapshot of r/%s: %w", sub.Name, err)
			}

			if natsURL == "" {
				return a.printer.JSON(snap)
			}

			nc, err := publish.Connect(natsURL, "subfeed")
			if err != nil {
				return err
			}
			defer nc.Close()

			pub := publish.NewPublisher(nc, subject, a.logger)
			for _, sort := range sorts {
				if _, err := pub.Publish(ctx, sub.Name, sort, snap.Listings[sort]); err != nil {
					return err
				}
			}
			if err := pub.Flush(ctx); err != nil {
				return fmt.Errorf("flushing nats: %w", err)
			}

			a.printer.Success("published %d listings of r/%s to %s", len(sorts), sub.Name, pub.Subject(sub.Name, "*"))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&limit, "limit", "n", 25, "posts per listing")
	flags.StringVar(&natsURL, "nats", "", "NATS server URL to publish to")
	flags.StringVar(&subject, "subject", "subfeed", "NATS subject prefix")

	return cmd
}
