package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/DSom20/hack-or-snooze/internal/tui"
)

func runTUI(cmd *cobra.Command, args []string) error {
	sess, cfg, closeStore, err := newSession()
	if err != nil {
		return err
	}
	defer closeStore()

	// Restore the persisted session before the first frame. Missing or stale
	// credentials just mean a logged-out view; a transport failure should not
	// keep the reader from browsing.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := sess.Restore(ctx); err != nil {
		fmt.Printf("  [warn] could not restore session: %v\n", err)
	}
	cancel()

	return tui.Run(tui.RunOpts{
		Sess:          sess,
		DefaultAuthor: defaultAuthor(sess, cfg.DefaultAuthor()),
	})
}
