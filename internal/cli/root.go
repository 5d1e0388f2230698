// Package cli contains the subfeed command tree
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	subreddit "github.com/jamesprial/go-subreddit"
	"github.com/jamesprial/go-subreddit/internal/config"
	"github.com/jamesprial/go-subreddit/internal/output"
	"github.com/jamesprial/go-subreddit/pkg/validation"
)

// App holds the state shared by all commands of one invocation.
type App struct {
	version string
	out     io.Writer
	errOut  io.Writer

	// global flags
	cfgFile   string
	verbose   bool
	jsonOut   bool
	colorMode string
	userAgent string
	baseURL   string
	timeout   time.Duration

	cfg        *config.Config
	logger     *slog.Logger
	printer    *output.Printer
	httpClient *http.Client
}

// NewRootCommand builds the subfeed command tree writing results to out
// and diagnostics to errOut.
func NewRootCommand(version string, out, errOut io.Writer) *cobra.Command {
	a := &App{version: version, out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "subfeed",
		Short: "Read subreddit feeds from the command line",
		Long: `subfeed reads the public JSON feeds of a subreddit.

It lists posts, comments and moderators without logging in, and can take
a snapshot of every post listing, optionally publishing it to NATS.

Example usage:
  subfeed posts golang                  # hot posts of r/golang
  subfeed posts golang --sort new -n 10 # ten newest posts
  subfeed posts golang --pages 3        # follow the after cursor twice
  subfeed comments golang abc123        # comment tree of one post
  subfeed moderators golang             # moderator list
  subfeed snapshot golang --nats nats://localhost:4222`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is .subfeed.yaml)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	flags.BoolVar(&a.jsonOut, "json", false, "print raw JSON instead of tables")
	flags.StringVar(&a.colorMode, "color", "auto", "color output: auto, always or never")
	flags.StringVar(&a.userAgent, "user-agent", "", "User-Agent header sent to the platform")
	flags.StringVar(&a.baseURL, "base-url", "", "platform root URL")
	flags.DurationVar(&a.timeout, "timeout", 0, "HTTP request timeout")

	root.AddCommand(
		a.newPostsCommand(),
		a.newCommentsCommand(),
		a.newModeratorsCommand(),
		a.newSnapshotCommand(),
	)

	return root
}

// init loads the configuration, applies flag overrides and sets up logging,
// output and the shared HTTP client.
func (a *App) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("user-agent") {
		cfg.Client.UserAgent = a.userAgent
	}
	if flags.Changed("base-url") {
		cfg.Client.BaseURL = a.baseURL
	}
	if flags.Changed("timeout") {
		cfg.Client.Timeout = a.timeout
	}
	if flags.Changed("json") {
		cfg.Output.JSON = a.jsonOut
	}
	if a.verbose {
		cfg.Logging.Level = "debug"
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	a.cfg = cfg

	a.logger = newLogger(a.errOut, cfg.Logging)

	mode, err := output.ParseColorMode(a.colorMode)
	if err != nil {
		return err
	}
	a.printer = output.NewPrinter(a.out, a.errOut, output.ResolveColors(mode, cfg.Output.Colors))

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	a.httpClient = &http.Client{
		Timeout:   cfg.Client.Timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	a.logger.Debug("configuration loaded",
		"base_url", cfg.Client.BaseURL,
		"user_agent", cfg.Client.UserAgent,
		"timeout", cfg.Client.Timeout,
	)

	return nil
}

func newLogger(w io.Writer, cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// subreddit returns a client for name sharing the invocation's HTTP client.
func (a *App) subreddit(name string) (*subreddit.Subreddit, error) {
	if err := validation.Subreddit(name); err != nil {
		return nil, err
	}
	return subreddit.NewWithHTTPClient(name, a.httpClient,
		subreddit.WithBaseURL(a.cfg.Client.BaseURL),
		subreddit.WithUserAgent(a.cfg.Client.UserAgent),
		subreddit.WithLogger(a.logger),
	), nil
}
