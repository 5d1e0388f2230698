package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	subreddit "github.com/jamesprial/go-subreddit"
	"github.com/jamesprial/go-subreddit/internal"
	"github.com/jamesprial/go-subreddit/internal/output"
	"github.com/jamesprial/go-subreddit/pkg/validation"
)

func (a *App) newCommentsCommand() *cobra.Command {
	var (
		depth    int
		limit    int
		maxLevel int
		author   string
	)

	cmd := &cobra.Command{
		Use:   "comments <subreddit> [article]",
		Short: "Show recent comments or the comment tree of a post",
		Long: `Without an article id, show the newest comments across the subreddit.
With one, show the comment tree of that post (the id without "t3_").`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("depth") {
				depth = a.cfg.Comments.Depth
			}
			if !flags.Changed("limit") {
				limit = a.cfg.Comments.Limit
			}

			sub, err := a.subreddit(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			var listing *subreddit.SubredditComments
			if len(args) == 2 {
				if err := validation.ArticleID(args[1]); err != nil {
					return err
				}
				listing, err = sub.ArticleComments(ctx, args[1], depth, limit)
			} else {
				listing, err = sub.LatestComments(ctx, depth, limit)
			}
			if err != nil {
				return fmt.Errorf("fetching comments of r/%s: %w", sub.Name, err)
			}

			if a.cfg.Output.JSON {
				return a.printer.JSON(listing)
			}

			opts := &internal.CommentIteratorOptions{DepthFirst: true, MaxDepth: maxLevel}
			if author != "" {
				opts.FilterFunc = func(c *subreddit.Comment) bool { return c.Data.Author == author }
			}

			var lines []output.CommentLine
			it := internal.NewCommentIterator(listing, opts)
			for it.HasNext() {
				c, level, err := it.Next()
				if err != nil {
					break
				}
				lines = append(lines, output.CommentLine{Level: level, Comment: c})
			}
			a.printer.Comments(lines)

			tree := subreddit.NewCommentTree(listing)
			if more := tree.MoreIDs(); len(more) > 0 {
				a.printer.Info("%d comments shown, %d more not loaded", tree.Count(), len(more))
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&depth, "depth", 0, "reply depth requested from the platform (0 = platform default)")
	flags.IntVarP(&limit, "limit", "n", 0, "number of comments requested (0 = platform default)")
	flags.IntVar(&maxLevel, "max-level", 0, "hide replies nested deeper than this (0 = show all)")
	flags.StringVar(&author, "author", "", "only show comments by this author; replies by others are hidden")

	return cmd
}

func (a *App) newModeratorsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "moderators <subreddit>",
		Short: "List the moderators of a subreddit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sub, err := a.subreddit(args[0])
			if err != nil {
				return err
			}

			mods, err := sub.Moderators(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetching moderators of r/%s: %w", sub.Name, err)
			}

			if a.cfg.Output.JSON {
				return a.printer.JSON(mods)
			}
			return a.printer.Moderators(mods.Data.Children)
		},
	}
}
