package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DSom20/hack-or-snooze/internal/api"
)

func testClient(t *testing.T, handler http.HandlerFunc) *api.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return api.NewClientWithBaseURL(server.Client(), server.URL)
}

// noCallClient fails the test if any request reaches the server.
func noCallClient(t *testing.T) *api.Client {
	t.Helper()
	return testClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected network call: %s %s", r.Method, r.URL.Path)
	})
}

func TestRestoreMissingCredentials(t *testing.T) {
	client := noCallClient(t)

	tests := []struct {
		token    string
		username string
	}{
		{"", ""},
		{"", "alice"},
		{"abc123", ""},
	}

	for _, tt := range tests {
		user, err := Restore(context.Background(), client, tt.token, tt.username)
		if err != nil {
			t.Errorf("Restore(%q, %q): unexpected error: %v", tt.token, tt.username, err)
		}
		if user != nil {
			t.Errorf("Restore(%q, %q): expected nil user", tt.token, tt.username)
		}
	}
}

func TestLoginScenario(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
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

	user, err := Login(context.Background(), client, "alice", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.LoginToken != "abc123" {
		t.Errorf("expected token abc123, got %q", user.LoginToken)
	}
	if len(user.Favorites) != 0 || len(user.OwnStories) != 0 {
		t.Errorf("expected empty collections, got %d favorites, %d own stories",
			len(user.Favorites), len(user.OwnStories))
	}
}

func TestAddFavoriteAppends(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]any{
				"username":  "alice",
				"favorites": []api.Story{{StoryID: "s1", Title: "Fav"}},
			},
		})
	})

	user := &User{Username: "alice", LoginToken: "abc123"}
	if err := user.AddFavorite(context.Background(), client, "s1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	count := 0
	for _, s := range user.Favorites {
		if s.StoryID == "s1" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one favorite with id s1, got %d", count)
	}
}

func TestAddFavoriteFailureLeavesStateUnchanged(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	user := &User{Username: "alice", LoginToken: "abc123"}
	if err := user.AddFavorite(context.Background(), client, "bogus"); err == nil {
		t.Fatal("expected error")
	}
	if len(user.Favorites) != 0 {
		t.Errorf("favorites should be unchanged on failure, got %+v", user.Favorites)
	}
}

func TestRemoveFavoriteFilters(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	user := &User{
		Username:   "alice",
		LoginToken: "abc123",
		Favorites:  []api.Story{{StoryID: "s1"}, {StoryID: "s2"}},
	}

	if err := user.RemoveFavorite(context.Background(), client, "s1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(user.Favorites) != 1 || user.Favorites[0].StoryID != "s2" {
		t.Errorf("expected only s2 remaining, got %+v", user.Favorites)
	}

	// Removing an id that is no longer present is a local no-op
	if err := user.RemoveFavorite(context.Background(), client, "s1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(user.Favorites) != 1 {
		t.Errorf("expected favorites untouched, got %+v", user.Favorites)
	}
}

func TestRemoveOwnStoryFiltersBothCollections(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	user := &User{
		Username:   "alice",
		LoginToken: "abc123",
		Favorites:  []api.Story{{StoryID: "s1"}, {StoryID: "other"}},
		OwnStories: []api.Story{{StoryID: "s1"}},
	}

	if err := user.RemoveOwnStory(context.Background(), client, "s1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, s := range user.OwnStories {
		if s.StoryID == "s1" {
			t.Error("s1 still present in own stories")
		}
	}
	for _, s := range user.Favorites {
		if s.StoryID == "s1" {
			t.Error("s1 still present in favorites")
		}
	}
	if len(user.Favorites) != 1 {
		t.Errorf("unrelated favorite should survive, got %+v", user.Favorites)
	}
}

func TestIsFavorited(t *testing.T) {
	user := &User{Favorites: []api.Story{{StoryID: "s1"}}}

	if !user.IsFavorited("s1") {
		t.Error("expected s1 to be favorited")
	}
	if user.IsFavorited("s2") {
		t.Error("expected s2 not to be favorited")
	}
}

func TestAddOwnStoryNoNetwork(t *testing.T) {
	user := &User{Username: "alice"}
	user.AddOwnStory(api.Story{StoryID: "new"})

	if len(user.OwnStories) != 1 || user.OwnStories[0].StoryID != "new" {
		t.Errorf("expected appended story, got %+v", user.OwnStories)
	}
}
