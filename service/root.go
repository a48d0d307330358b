// Package service holds the command-line interface of the blog.
package service

import (
	"fmt"
	"os"

	"cheeseblog/app/config"
	"cheeseblog/app/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const cliVersion = "1.0.0"

// globalFlags override the environment for one invocation.
type globalFlags struct {
	envFile      string
	addr         string
	databasePath string
	sessionPath  string
	metricsAddr  string
	logLevel     string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "cheeseblog",
		Short: "Server-rendered blog with accounts and comments",
		Long: `cheeseblog serves a blog: visitors read posts, registered accounts
comment, and a single administrator writes, edits and deletes posts.

Configuration comes from the environment (optionally a .env file) and the
flags below. SECRET_KEY must be set to serve.`,
		Version:       cliVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.envFile, "env-file", ".env", "Environment file to load if present")
	pf.StringVar(&flags.addr, "addr", "", "HTTP listen address (ADDR)")
	pf.StringVar(&flags.databasePath, "database", "", "SQLite database file (DATABASE_PATH)")
	pf.StringVar(&flags.sessionPath, "sessions", "", "Session store directory (SESSION_PATH)")
	pf.StringVar(&flags.metricsAddr, "metrics-addr", "", "Metrics listen address, empty disables (METRICS_ADDR)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level (LOG_LEVEL)")

	rootCmd.AddCommand(
		newServeCmd(flags),
		newMigrateCmd(flags),
		newSessionsCmd(flags),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cheeseblog version %s\n", cliVersion)
		},
	}
}

// loadConfig reads the environment and applies any flags the user set.
func loadConfig(cmd *cobra.Command, flags *globalFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.envFile)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("addr") {
		cfg.Addr = flags.addr
	}
	if changed("database") {
		cfg.DatabasePath = flags.databasePath
	}
	if changed("sessions") {
		cfg.SessionPath = flags.sessionPath
	}
	if changed("metrics-addr") {
		cfg.MetricsAddr = flags.metricsAddr
	}
	if changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) (*logrus.Logger, error) {
	return logging.New(cfg.LogLevel, cmd.ErrOrStderr())
}
