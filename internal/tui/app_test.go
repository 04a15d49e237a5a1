package tui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DSom20/hack-or-snooze/internal/api"
	"github.com/DSom20/hack-or-snooze/internal/session"
)

func testApp(t *testing.T, handler http.HandlerFunc) *App {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := api.NewClientWithBaseURL(server.Client(), server.URL)
	return NewApp(RunOpts{Sess: session.New(client, nil)})
}

func loggedInApp(t *testing.T, handler http.HandlerFunc) *App {
	t.Helper()
	app := testApp(t, handler)
	app.sess.User = &session.User{Username: "alice", LoginToken: "abc123"}
	return app
}

// Command closures run on their own goroutines while View keeps reading the
// session mirrors, so a command must never install the user itself. The
// mutation belongs to Update, after the result message lands.
func TestLoginAppliedInUpdate(t *testing.T) {
	app := testApp(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]any{
				"username":  "alice",
				"name":      "Alice",
				"favorites": []api.Story{},
				"stories":   []api.Story{},
			},
			"token": "abc123",
		})
	})

	msg := app.loginCmd("alice", "secret")()
	if app.sess.User != nil {
		t.Fatal("command must not install the user before Update")
	}

	app.Update(msg)
	if app.sess.User == nil || app.sess.User.Username != "alice" {
		t.Fatalf("expected logged-in user after Update, got %+v", app.sess.User)
	}
	if app.notice == "" {
		t.Error("expected a login notice")
	}
}

func TestToggleFavoriteAppliedInUpdate(t *testing.T) {
	app := loggedInApp(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			json.NewEncoder(w).Encode(map[string]any{
				"user": map[string]any{
					"username":  "alice",
					"favorites": []api.Story{{StoryID: "s1", Title: "One"}},
				},
			})
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	msg := app.toggleFavCmd("s1")()
	if app.sess.User.IsFavorited("s1") {
		t.Fatal("command must not touch the favorites mirror before Update")
	}

	app.Update(msg)
	if !app.sess.User.IsFavorited("s1") {
		t.Fatal("expected s1 favorited after Update")
	}

	msg = app.toggleFavCmd("s1")()
	if !app.sess.User.IsFavorited("s1") {
		t.Fatal("command must not touch the favorites mirror before Update")
	}

	app.Update(msg)
	if app.sess.User.IsFavorited("s1") {
		t.Error("expected s1 unfavorited after Update")
	}
}

func TestDeleteStoryAppliedInUpdate(t *testing.T) {
	app := loggedInApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	story := api.Story{StoryID: "s1", Title: "Mine"}
	app.sess.User.OwnStories = []api.Story{story}
	app.sess.User.Favorites = []api.Story{story}
	app.list.Stories = []api.Story{story}

	msg := app.deleteCmd("s1")()
	if len(app.sess.User.OwnStories) != 1 {
		t.Fatal("command must not touch the own-stories mirror before Update")
	}

	app.Update(msg)
	if len(app.sess.User.OwnStories) != 0 || len(app.sess.User.Favorites) != 0 {
		t.Errorf("expected cleared mirrors, got own=%+v favs=%+v",
			app.sess.User.OwnStories, app.sess.User.Favorites)
	}
	if len(app.list.Stories) != 0 {
		t.Errorf("expected story removed from list, got %+v", app.list.Stories)
	}
}

func TestUnfavoriteLastStoryClampsCursor(t *testing.T) {
	app := loggedInApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	app.sess.User.Favorites = []api.Story{{StoryID: "s1"}, {StoryID: "s2"}}
	app.mode = modeFavorites
	app.cursor = 1

	app.Update(favToggledMsg{storyID: "s2", favorited: false})

	if n := len(app.sess.User.Favorites); n != 1 {
		t.Fatalf("expected one favorite left, got %d", n)
	}
	if app.cursor != 0 {
		t.Errorf("expected cursor clamped to 0, got %d", app.cursor)
	}
}

func TestViewKeepsNotice(t *testing.T) {
	app := testApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	app.loading = false
	app.notice = "story submitted"

	app.View()
	app.View()
	if app.notice != "story submitted" {
		t.Errorf("View must not mutate state, notice became %q", app.notice)
	}
}

func TestKeypressClearsNotice(t *testing.T) {
	app := testApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	app.loading = false
	app.notice = "logged out"

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	if app.notice != "" {
		t.Errorf("expected notice cleared on keypress, got %q", app.notice)
	}
}
