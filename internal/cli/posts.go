package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	subreddit "github.com/jamesprial/go-subreddit"
	"github.com/jamesprial/go-subreddit/internal"
	"github.com/jamesprial/go-subreddit/pkg/types"
	"github.com/jamesprial/go-subreddit/pkg/validation"
)

// Sort orders accepted by --sort.
var sorts = []string{"hot", "rising", "top", "new"}

func feedFor(sub *subreddit.Subreddit, sort string) (internal.FeedFunc, error) {
	switch sort {
	case "hot":
		return sub.Hot, nil
	case "rising":
		return sub.Rising, nil
	case "top":
		return sub.Top, nil
	case "new":
		return sub.Latest, nil
	default:
		return nil, fmt.Errorf("invalid sort %q: must be one of %v", sort, sorts)
	}
}

// pageLimiter paces page requests; a zero interval does not wait.
func pageLimiter(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}

func (a *App) newPostsCommand() *cobra.Command {
	var (
		sort     string
		limit    int
		pages    int
		interval time.Duration
		start    types.FeedOption
	)

	cmd := &cobra.Command{
		Use:   "posts <subreddit>",
		Short: "List posts of a subreddit",
		Long: `List posts of a subreddit, one page by default.

With --pages greater than one the after cursor of each page is followed,
waiting --interval between requests.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("sort") {
				sort = a.cfg.Feed.Sort
			}
			if !flags.Changed("limit") {
				limit = a.cfg.Feed.Limit
			}
			if !flags.Changed("pages") {
				pages = a.cfg.Feed.Pages
			}
			if !flags.Changed("interval") {
				interval = a.cfg.Feed.Interval
			}

			if err := validation.FeedOption(start); err != nil {
				return err
			}
			sub, err := a.subreddit(args[0])
			if err != nil {
				return err
			}
			fetch, err := feedFor(sub, sort)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			it := internal.NewPageIterator(fetch, limit, pages, start, pageLimiter(interval))
			for it.HasNext() {
				page, err := it.Next(ctx)
				if err != nil {
					return fmt.Errorf("fetching %s posts of r/%s: %w", sort, sub.Name, err)
				}

				if a.cfg.Output.JSON {
					if err := a.printer.JSON(page); err != nil {
						return err
					}
					continue
				}

				a.printer.Header(fmt.Sprintf("r/%s %s, page %d", sub.Name, sort, it.Pages()))
				if err := a.printer.Posts(page.Data.Children); err != nil {
					return err
				}
			}

			if next := it.Cursor(); next.After != "" && !a.cfg.Output.JSON {
				a.printer.Info("more: --after %s --count %d", next.After, next.Count)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&sort, "sort", "s", "hot", "listing: hot, rising, top or new")
	flags.IntVarP(&limit, "limit", "n", 25, "posts per page")
	flags.IntVar(&pages, "pages", 1, "number of pages to fetch")
	flags.DurationVar(&interval, "interval", 0, "minimum time between page requests")
	flags.StringVar(&start.After, "after", "", "fullname to start after, e.g. t3_abc123")
	flags.StringVar(&start.Before, "before", "", "fullname to end before; ignored when --after is set")
	flags.IntVar(&start.Count, "count", 0, "number of items already seen")

	return cmd
}
