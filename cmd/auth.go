package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/DSom20/hack-or-snooze/internal/session"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptPassword() (string, error) {
	fmt.Print("Password: ")
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

func usernameArg(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return promptLine(prompt)
}

var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Log in and persist the session",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, _, closeStore, err := newSession()
		if err != nil {
			return err
		}
		defer closeStore()

		username, err := usernameArg(args, "Username: ")
		if err != nil {
			return err
		}
		password, err := promptPassword()
		if err != nil {
			return err
		}

		if err := sess.LogIn(cmd.Context(), username, password); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		fmt.Printf("Logged in as %s (%d favorites, %d stories).\n",
			sess.User.Username, len(sess.User.Favorites), len(sess.User.OwnStories))
		return nil
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup [username]",
	Short: "Create an account and persist the session",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, _, closeStore, err := newSession()
		if err != nil {
			return err
		}
		defer closeStore()

		username, err := usernameArg(args, "Username: ")
		if err != nil {
			return err
		}
		name, err := promptLine("Display name: ")
		if err != nil {
			return err
		}
		password, err := promptPassword()
		if err != nil {
			return err
		}

		if err := sess.SignUp(cmd.Context(), username, password, name); err != nil {
			return fmt.Errorf("signup failed: %w", err)
		}

		fmt.Printf("Welcome, %s! You are logged in.\n", sess.User.Name)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the persisted session",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, _, closeStore, err := newSession()
		if err != nil {
			return err
		}
		defer closeStore()

		if err := sess.LogOut(); err != nil {
			return fmt.Errorf("clearing session: %w", err)
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, _, closeStore, err := newSession()
		if err != nil {
			return err
		}
		defer closeStore()

		if err := restoreSession(cmd.Context(), sess); err != nil {
			return err
		}
		if !sess.LoggedIn() {
			fmt.Println("Not logged in.")
			return nil
		}

		u := sess.User
		fmt.Printf("%s (%s)\n", u.Username, u.Name)
		fmt.Printf("Favorites: %d\n", len(u.Favorites))
		fmt.Printf("Stories:   %d\n", len(u.OwnStories))
		return nil
	},
}

func restoreSession(ctx context.Context, sess *session.Session) error {
	if err := sess.Restore(ctx); err != nil {
		return fmt.Errorf("restoring session: %w", err)
	}
	return nil
}

// defaultAuthor picks the author name pre-filled into the submit form: the
// logged-in user's display name when available, otherwise the config value.
func defaultAuthor(sess *session.Session, fallback string) string {
	if sess.User != nil && sess.User.Name != "" {
		return sess.User.Name
	}
	return fallback
}
