package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/DSom20/hack-or-snooze/internal/api"
	"github.com/DSom20/hack-or-snooze/internal/config"
	"github.com/DSom20/hack-or-snooze/internal/creds"
	"github.com/DSom20/hack-or-snooze/internal/session"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "snooze",
	Short: "Terminal client for the hack-or-snooze story service",
	Long:  "snooze is a hacker-news-style story browser: read, submit, favorite and manage stories from your terminal.",
	RunE:  runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(storiesCmd)
	rootCmd.AddCommand(postCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("snooze %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

// newSession builds the session object every command shares: config, API
// client and the persisted credential store. The caller closes the store.
func newSession() (*session.Session, *config.Config, func(), error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}

	store, err := creds.Open(config.CredsPath())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening session store: %w", err)
	}

	client := api.NewClientWithBaseURL(http.DefaultClient, cfg.BaseURL)
	client.SetTimeout(cfg.TimeoutDuration())

	return session.New(client, store), cfg, func() { store.Close() }, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
