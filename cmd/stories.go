package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DSom20/hack-or-snooze/internal/api"
)

var flagLimit int

var storiesCmd = &cobra.Command{
	Use:   "stories",
	Short: "List the latest stories",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, _, closeStore, err := newSession()
		if err != nil {
			return err
		}
		defer closeStore()

		list, err := sess.Client.FetchStories(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetching stories: %w", err)
		}

		stories := list.Stories
		if flagLimit > 0 && flagLimit < len(stories) {
			stories = stories[:flagLimit]
		}

		for i, s := range stories {
			fmt.Printf("%2d. %s (%s)\n", i+1, s.Title, displayHost(s.URL))
			fmt.Printf("    by %s · posted by %s · %s\n", s.Author, s.Username, s.StoryID)
		}
		return nil
	},
}

var (
	flagTitle  string
	flagURL    string
	flagAuthor string
)

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Submit a new story",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, cfg, closeStore, err := newSession()
		if err != nil {
			return err
		}
		defer closeStore()

		if err := restoreSession(cmd.Context(), sess); err != nil {
			return err
		}
		if !sess.LoggedIn() {
			return fmt.Errorf("not logged in (run 'snooze login' first)")
		}

		author := flagAuthor
		if author == "" {
			author = defaultAuthor(sess, cfg.DefaultAuthor())
		}

		story, err := sess.SubmitStory(cmd.Context(), api.Draft{
			Author: author,
			Title:  flagTitle,
			URL:    flagURL,
		})
		if err != nil {
			return fmt.Errorf("submitting story: %w", err)
		}

		fmt.Printf("Posted %q (%s)\n", story.Title, story.StoryID)
		return nil
	},
}

func init() {
	storiesCmd.Flags().IntVar(&flagLimit, "limit", 0, "show at most this many stories")

	postCmd.Flags().StringVar(&flagTitle, "title", "", "story title")
	postCmd.Flags().StringVar(&flagURL, "url", "", "story link")
	postCmd.Flags().StringVar(&flagAuthor, "author", "", "author name (defaults to your display name)")
	postCmd.MarkFlagRequired("title")
	postCmd.MarkFlagRequired("url")
}

// displayHost trims a URL down to the hostname for the list view.
func displayHost(rawURL string) string {
	host := rawURL
	if strings.Contains(rawURL, "://") {
		parts := strings.Split(rawURL, "/")
		if len(parts) > 2 {
			host = parts[2]
		}
	} else {
		host = strings.Split(rawURL, "/")[0]
	}
	return strings.TrimPrefix(host, "www.")
}
