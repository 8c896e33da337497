package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nmtri/netwatch/internal/app"
	"github.com/nmtri/netwatch/internal/config"
	"github.com/nmtri/netwatch/internal/dns"
	"github.com/nmtri/netwatch/internal/domain"
	"github.com/nmtri/netwatch/internal/infrastructure/mock"
	"github.com/nmtri/netwatch/internal/infrastructure/nettop"
)

var cfg = config.Config{}

var rootCmd = &cobra.Command{
	Use:   "netwatch",
	Short: "Live terminal dashboard of per-process network traffic",
	Long: `netwatch samples per-process connection byte counters from nettop on a
timer, derives throughput rates between samples, resolves remote
addresses in the background and renders an interactive dashboard with
process, connection and overview tabs.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().DurationVar(&cfg.Interval, "interval", config.DefaultInterval, "refresh interval (e.g. 2s, 5s)")
	rootCmd.Flags().StringVar(&cfg.SortBy, "sort-by", config.DefaultSortBy, "initial sort field: name, pid, conn, down, up, rate-in, rate-out")
	rootCmd.Flags().BoolVar(&cfg.Mock, "mock", false, "use synthetic traffic instead of nettop")
	rootCmd.Flags().StringVar(&cfg.LogLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&cfg.LogFile, "log-file", "", "log file path (empty = logging disabled)")
}

func run(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	var repo domain.TrafficRepo
	if cfg.Mock {
		repo = mock.New()
	} else {
		repo = nettop.New()
	}

	resolver := dns.NewResolver(nil)
	defer resolver.Close()

	m := app.New(repo, resolver, cfg.SortField(), cfg.Interval, logger)
	logger.Info("starting", "interval", cfg.Interval, "sort", cfg.SortBy, "mock", cfg.Mock)

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}

// newLogger builds the slog logger. Stdout belongs to the TUI, so without
// a log file everything is discarded.
func newLogger(levelStr, path string) (*slog.Logger, func(), error) {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	if path == "" {
		h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: level})
		return slog.New(h), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})
	return slog.New(h), func() { f.Close() }, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
