package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/loopwork-ai/mcp-bridge/bridge"
	"github.com/loopwork-ai/mcp-bridge/internal"
	"github.com/loopwork-ai/mcp-bridge/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "mcp-bridge",
	Short: "A stdio-to-HTTP bridge for JSON-RPC message streams",
	Long: `mcp-bridge reads newline-delimited JSON-RPC 2.0 messages from stdin,
forwards each one to a remote HTTP endpoint, and writes strictly valid
JSON-RPC responses back to stdout. Remote responses may arrive as plain
JSON or as a server-sent event stream; either way they are normalized
before anything reaches the output.

Configuration comes from the environment (MCP_BRIDGE_URL,
MCP_BRIDGE_TOKEN, MCP_BRIDGE_TIMEOUT_MS) or an optional YAML config file;
the environment wins. The remote URL and bearer token are required.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		g, ctx := errgroup.WithContext(ctx)

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		if !verbose {
			logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		}

		cfg, err := config.LoadFile(configPath)
		if err != nil {
			return err
		}
		if err := cfg.ApplyEnv(); err != nil {
			return err
		}
		if cmd.Flags().Changed("timeout") {
			cfg.TimeoutMS = int(timeout.Milliseconds())
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		token, isSecret, err := internal.ResolveSecretReference(ctx, cfg.Token)
		if err != nil {
			return fmt.Errorf("error resolving bearer token: %w", err)
		}
		if isSecret {
			logger.Info("resolved bearer token from secret reference")
		}

		g.Go(func() error {
			retryClient := retryablehttp.NewClient()
			retryClient.RetryMax = 0 // one call per message, retries are the caller's business
			retryClient.HTTPClient.Timeout = cfg.Timeout()
			retryClient.Logger = leveledLogger{logger}

			session, err := bridge.NewSession(
				bridge.WithEndpoint(cfg.URL),
				bridge.WithToken(token),
				bridge.WithClient(retryClient.StandardClient()),
				bridge.WithTimeout(cfg.Timeout()),
				bridge.WithLogger(logger),
			)
			if err != nil {
				return fmt.Errorf("error creating session: %w", err)
			}

			logger.Info("bridging stdio to remote endpoint", "url", cfg.URL, "timeout", cfg.Timeout())
			transport := bridge.NewStdioTransport(session, os.Stdin, os.Stdout, logger)
			return transport.Run(ctx)
		})

		if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

// leveledLogger adapts slog to retryablehttp's LeveledLogger interface
type leveledLogger struct {
	logger *slog.Logger
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, keysAndValues...)
}

func (l leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keysAndValues...)
}

func (l leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, keysAndValues...)
}

var (
	configPath string
	verbose    bool
	timeout    time.Duration

	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file (environment variables take precedence)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging to stderr")
	rootCmd.Flags().DurationVar(&timeout, "timeout", bridge.DefaultTimeout, "Upstream request timeout")

	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built at: %s)", version, commit, date)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
