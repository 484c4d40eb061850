package cli

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	client "github.com/devexp/devexp-go-client"
	"github.com/devexp/devexp-go-client/internal/config"
	"github.com/devexp/devexp-go-client/promsink"
)

var (
	cfgPath     string
	isDebug     bool
	showMetrics bool
	outputJSON  bool
)

var rootCmd = &cobra.Command{
	Use:   "devexp",
	Short: "Command line client for the Devexp contacts and messages API",
	Long:  `devexp manages contacts and sends messages through the Devexp API.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (YAML); DEVEXP_BASE_URL and DEVEXP_API_KEY are used when omitted")
	rootCmd.PersistentFlags().BoolVar(&isDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&showMetrics, "metrics", false, "print operation metrics when the command finishes")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "print results as JSON")
}

// session bundles what every subcommand needs.
type session struct {
	ctx      context.Context
	client   *client.Client
	registry *prometheus.Registry
	stop     context.CancelFunc
}

func (s *session) close() {
	s.client.Close()
	s.stop()
	if s.registry != nil {
		printMetrics(s.registry)
	}
}

// connect loads configuration, sets up logging and returns a connected
// client. It exits the process on failure.
func connect() *session {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		setupLogging("info")
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	level := cfg.Logging.Level
	if isDebug {
		level = "debug"
	}
	logger := setupLogging(level)

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	opts := append(cfg.ClientOptions(),
		client.WithRequestLogger(logger),
		client.WithRetryHook(func(ev client.RetryEvent) {
			slog.Info("Retrying request", "method", ev.Method, "path", ev.Path,
				"attempt", ev.Attempt, "delay", ev.Delay, "reason", ev.Reason)
		}),
	)

	var registry *prometheus.Registry
	if showMetrics {
		registry = prometheus.NewRegistry()
		sink, err := promsink.New(registry, "devexp")
		if err != nil {
			slog.Error("Failed to register metrics", "error", err)
			os.Exit(1)
		}
		opts = append(opts, client.WithMetricSink(sink))
	}

	c := client.New(cfg.BaseURL, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	if err := c.Connect(ctx); err != nil {
		stop()
		slog.Error("Failed to connect", "error", err)
		os.Exit(1)
	}

	return &session{ctx: ctx, client: c, registry: registry, stop: stop}
}

func setupLogging(level string) *slog.Logger {
	var slogLevel slog.Level
	if err := slogLevel.UnmarshalText([]byte(level)); err != nil {
		slogLevel = slog.LevelInfo
	}

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slogLevel,
		TimeFormat: time.RFC3339,
	}))
	slog.SetDefault(logger)

	return logger
}

// fail logs a failed API call with whatever the server reported and exits.
func fail(msg string, err error) {
	args := []any{"error", err, "kind", promsink.ErrorKind(err)}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		args = append(args, "status", apiErr.StatusCode, "api_message", apiErr.APIMessage)
		if apiErr.ResourceID != "" {
			args = append(args, "resource_id", apiErr.ResourceID)
		}
	}

	slog.Error(msg, args...)
	os.Exit(1)
}
