package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/DSom20/hack-or-snooze/internal/api"
	"github.com/DSom20/hack-or-snooze/internal/creds"
)

// Session owns the current user alongside the API client and the credential
// store, so callers pass one object around instead of ambient globals.
type Session struct {
	Client *api.Client
	Store  *creds.Store
	User   *User
}

func New(client *api.Client, store *creds.Store) *Session {
	return &Session{Client: client, Store: store}
}

func (s *Session) LoggedIn() bool {
	return s.User != nil
}

// LogIn authenticates and persists the credentials for later restoration.
func (s *Session) LogIn(ctx context.Context, username, password string) error {
	user, err := Login(ctx, s.Client, username, password)
	if err != nil {
		return err
	}
	s.User = user
	return s.persist()
}

// SignUp registers a new account and persists the credentials.
func (s *Session) SignUp(ctx context.Context, username, password, name string) error {
	user, err := Signup(ctx, s.Client, username, password, name)
	if err != nil {
		return err
	}
	s.User = user
	return s.persist()
}

func (s *Session) persist() error {
	if s.Store == nil || s.User == nil {
		return nil
	}
	return s.Store.Save(s.User.LoginToken, s.User.Username)
}

// Restore attempts to rebuild the session from persisted credentials. Absent
// or stale credentials leave the session logged out without error; stale ones
// are also cleared from the store. Transport failures propagate.
func (s *Session) Restore(ctx context.Context) error {
	if s.Store == nil {
		return nil
	}
	token, username, err := s.Store.Load()
	if err != nil {
		return err
	}

	user, err := Restore(ctx, s.Client, token, username)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) || errors.Is(err, api.ErrNotFound) {
			if cerr := s.Store.Clear(); cerr != nil {
				return fmt.Errorf("clearing stale credentials: %w", cerr)
			}
			return nil
		}
		return err
	}
	s.User = user
	return nil
}

// LogOut clears the persisted credentials and drops the in-memory user.
func (s *Session) LogOut() error {
	s.User = nil
	if s.Store == nil {
		return nil
	}
	return s.Store.Clear()
}

// SubmitStory creates a story on the server and records it in the user's
// own-stories mirror. The caller decides where it appears in whatever list is
// displayed (prepend for newest-first).
func (s *Session) SubmitStory(ctx context.Context, draft api.Draft) (api.Story, error) {
	if s.User == nil {
		return api.Story{}, api.ErrUnauthorized
	}
	story, err := s.Client.CreateStory(ctx, s.User.LoginToken, draft)
	if err != nil {
		return api.Story{}, err
	}
	s.User.AddOwnStory(story)
	return story, nil
}

// ToggleFavorite flips the favorite state of a story and reports the new
// state. The star the UI draws is always derived from the mirror afterwards.
func (s *Session) ToggleFavorite(ctx context.Context, storyID string) (bool, error) {
	if s.User == nil {
		return false, api.ErrUnauthorized
	}
	if s.User.IsFavorited(storyID) {
		if err := s.User.RemoveFavorite(ctx, s.Client, storyID); err != nil {
			return true, err
		}
		return false, nil
	}
	if err := s.User.AddFavorite(ctx, s.Client, storyID); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteStory removes one of the user's own stories everywhere it is
// mirrored locally.
func (s *Session) DeleteStory(ctx context.Context, storyID string) error {
	if s.User == nil {
		return api.ErrUnauthorized
	}
	return s.User.RemoveOwnStory(ctx, s.Client, storyID)
}
