// Package session holds the in-memory user model and the session object that
// ties the API client to the persisted credentials. The favorites and
// own-stories slices are client-side mirrors of server state: every mutating
// operation updates them from its own response, only after the call succeeds.
package session

import (
	"context"

	"github.com/DSom20/hack-or-snooze/internal/api"
)

// User is the session-scoped account entity. It exists only in memory; the
// durable part of a session is the (token, username) pair in the creds store.
type User struct {
	Username   string
	Name       string
	CreatedAt  string
	UpdatedAt  string
	LoginToken string
	Favorites  []api.Story
	OwnStories []api.Story
}

func userFromRecord(rec api.UserRecord, token string) *User {
	return &User{
		Username:   rec.Username,
		Name:       rec.Name,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
		LoginToken: token,
		Favorites:  append([]api.Story(nil), rec.Favorites...),
		OwnStories: append([]api.Story(nil), rec.Stories...),
	}
}

// Signup registers a new account and returns the fresh user. The service
// reports a taken username as api.ErrConflict.
func Signup(ctx context.Context, c *api.Client, username, password, name string) (*User, error) {
	rec, token, err := c.Signup(ctx, username, password, name)
	if err != nil {
		return nil, err
	}
	return userFromRecord(rec, token), nil
}

// Login authenticates an existing account and populates the favorites and
// own-stories mirrors from the response.
func Login(ctx context.Context, c *api.Client, username, password string) (*User, error) {
	rec, token, err := c.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return userFromRecord(rec, token), nil
}

// Restore rebuilds a user from previously persisted credentials. It returns
// (nil, nil) without a network call when either credential is absent; that is
// the contract deciding whether startup shows a logged-out or logged-in view.
// A stale token surfaces api.ErrUnauthorized, which callers treat the same as
// no session.
func Restore(ctx context.Context, c *api.Client, token, username string) (*User, error) {
	if token == "" || username == "" {
		return nil, nil
	}
	rec, err := c.GetUser(ctx, token, username)
	if err != nil {
		return nil, err
	}
	return userFromRecord(rec, token), nil
}

// IsFavorited reports membership in the favorites mirror. The rendering layer
// derives star state from this rather than storing it anywhere else.
func (u *User) IsFavorited(storyID string) bool {
	for _, s := range u.Favorites {
		if s.StoryID == storyID {
			return true
		}
	}
	return false
}

// MarkFavorite appends a server-returned story to the favorites mirror.
// Pure local mutation; callers apply it only after the network call resolved.
func (u *User) MarkFavorite(s api.Story) {
	u.Favorites = append(u.Favorites, s)
}

// UnmarkFavorite filters a story out of the favorites mirror. Removing an id
// that is not present is a no-op.
func (u *User) UnmarkFavorite(storyID string) {
	u.Favorites = withoutStory(u.Favorites, storyID)
}

// DropStory filters a deleted story out of both mirrors: deleting a story
// implicitly removes it from the owner's favorites too.
func (u *User) DropStory(storyID string) {
	u.OwnStories = withoutStory(u.OwnStories, storyID)
	u.Favorites = withoutStory(u.Favorites, storyID)
}

// AddFavorite marks the story as favorited on the server and appends it to
// the local mirror. The new story is taken from the last element of the
// response's favorites array; the service appends rather than reorders.
func (u *User) AddFavorite(ctx context.Context, c *api.Client, storyID string) error {
	rec, err := c.AddFavorite(ctx, u.LoginToken, u.Username, storyID)
	if err != nil {
		return err
	}
	if n := len(rec.Favorites); n > 0 {
		u.MarkFavorite(rec.Favorites[n-1])
	}
	return nil
}

// RemoveFavorite drops the favorite relation and filters the story out of the
// local mirror.
func (u *User) RemoveFavorite(ctx context.Context, c *api.Client, storyID string) error {
	if err := c.RemoveFavorite(ctx, u.LoginToken, u.Username, storyID); err != nil {
		return err
	}
	u.UnmarkFavorite(storyID)
	return nil
}

// RemoveOwnStory deletes the story itself (author-only, enforced server-side)
// and filters it out of both mirrors.
func (u *User) RemoveOwnStory(ctx context.Context, c *api.Client, storyID string) error {
	if err := c.DeleteStory(ctx, u.LoginToken, storyID); err != nil {
		return err
	}
	u.DropStory(storyID)
	return nil
}

// AddOwnStory appends a story the server already returned (from story
// creation) to the own-stories mirror. No extra round-trip is needed.
func (u *User) AddOwnStory(s api.Story) {
	u.OwnStories = append(u.OwnStories, s)
}

func withoutStory(stories []api.Story, storyID string) []api.Story {
	out := stories[:0]
	for _, s := range stories {
		if s.StoryID != storyID {
			out = append(out, s)
		}
	}
	return out
}
