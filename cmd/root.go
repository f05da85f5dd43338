package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/jon4hz/reviewshelf/internal/cache"
	"github.com/jon4hz/reviewshelf/internal/catalog"
	"github.com/jon4hz/reviewshelf/internal/config"
	"github.com/jon4hz/reviewshelf/internal/shell"
	"github.com/spf13/cobra"
)

var rootCmdPersistentFlags struct {
	LogFile    string
	ConfigFile string
	LogLevel   string
}

var rootCmdFlags struct {
	WrittenOnly bool
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootCmdPersistentFlags.LogFile, "log-file", "", "File to write logs to")
	rootCmd.PersistentFlags().StringVarP(&rootCmdPersistentFlags.ConfigFile, "config", "c", "", "Path to config file (default: search for config.yml in current dir, ~/.reviewshelf, /etc/reviewshelf)")
	rootCmd.PersistentFlags().StringVar(&rootCmdPersistentFlags.LogLevel, "log-level", "", "Log level (debug, info, warn, error) - overrides config file setting")

	rootCmd.Flags().BoolVar(&rootCmdFlags.WrittenOnly, "written-only", false, "Only show written reviews when looking up a title")
}

var rootCmd = &cobra.Command{
	Use:   "reviewshelf",
	Short: "reviewshelf is an interactive catalog of ratings and reviews for movies, books and TV shows",
	Long:  `reviewshelf lets users create a profile, log in, rate and review the media they have seen, and look up what other users thought of a title.`,
	Example: `reviewshelf
  reviewshelf -c /path/to/config.yml --log-level debug --log-file reviewshelf.log
  reviewshelf --written-only`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		if rootCmdPersistentFlags.LogLevel != "" {
			setLogLevel(rootCmdPersistentFlags.LogLevel)
		}
		logToFile()
	},
	RunE: root,
}

func root(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if rootCmdPersistentFlags.LogLevel == "" {
		setLogLevel(cfg.LogLevel)
	}

	summaries := cache.NewReviewSummaryCache[catalog.ReviewSummary](cfg.Cache)
	log.Debug("review summary cache ready", "type", cfg.Cache.Type)

	c := catalog.New(catalog.WithSummaryCache(summaries))
	sh := shell.New(c, cmd.InOrStdin(), cmd.OutOrStdout(),
		shell.WithMediaTypes(cfg.MediaTypes),
		shell.WithWrittenReviewsOnly(rootCmdFlags.WrittenOnly),
	)

	err = sh.Run(cmd.Context())

	stats := summaries.GetStats()
	log.Debug("review summary cache stats", "hits", stats.Hits, "misses", stats.Miss, "profiles", c.Len())

	return err
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	default:
		log.Warnf("unknown log level %s, defaulting to info", level)
		log.SetLevel(log.InfoLevel)
	}
}

// logToFile tees the log output into the log file, if one was given.
// Logs never go to stdout, which belongs to the shell.
func logToFile() {
	if rootCmdPersistentFlags.LogFile == "" {
		return
	}
	file, err := os.OpenFile(rootCmdPersistentFlags.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644) //nolint:gosec
	if err != nil {
		log.Errorf("failed to open log file: %v", err)
		return
	}

	log.SetOutput(io.MultiWriter(os.Stderr, file))
	log.Debug("logging to both console and file", "file", rootCmdPersistentFlags.LogFile)
}

// Execute runs the root command.
func Execute(ctx context.Context, version string) error {
	return fang.Execute(ctx, rootCmd, fang.WithVersion(version))
}
