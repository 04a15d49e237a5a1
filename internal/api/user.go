package api

import (
	"context"
	"net/http"
	"net/url"
)

// UserRecord is a user as the service returns it, including the owned story
// collections embedded in login/profile responses.
type UserRecord struct {
	Username  string  `json:"username"`
	Name      string  `json:"name"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
	Favorites []Story `json:"favorites"`
	Stories   []Story `json:"stories"`
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type authResponse struct {
	User  UserRecord `json:"user"`
	Token string     `json:"token"`
}

// Signup registers a new account. A taken username surfaces ErrConflict.
func (c *Client) Signup(ctx context.Context, username, password, name string) (UserRecord, string, error) {
	body := struct {
		User credentials `json:"user"`
	}{User: credentials{Username: username, Password: password, Name: name}}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/signup", nil, body, &resp); err != nil {
		return UserRecord{}, "", err
	}
	return resp.User, resp.Token, nil
}

// Login authenticates an existing account. Bad credentials surface
// ErrUnauthorized.
func (c *Client) Login(ctx context.Context, username, password string) (UserRecord, string, error) {
	body := struct {
		User credentials `json:"user"`
	}{User: credentials{Username: username, Password: password}}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/login", nil, body, &resp); err != nil {
		return UserRecord{}, "", err
	}
	return resp.User, resp.Token, nil
}

// GetUser fetches a profile by username. The token rides in the query string,
// which is how this service authenticates reads.
func (c *Client) GetUser(ctx context.Context, token, username string) (UserRecord, error) {
	query := url.Values{"token": {token}}
	path := "/users/" + url.PathEscape(username)

	var resp struct {
		User UserRecord `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, path, query, nil, &resp); err != nil {
		return UserRecord{}, err
	}
	return resp.User, nil
}

// AddFavorite marks a story as favorited and returns the user's updated
// record. The service appends to the favorites array rather than reordering.
func (c *Client) AddFavorite(ctx context.Context, token, username, storyID string) (UserRecord, error) {
	path := "/users/" + url.PathEscape(username) + "/favorites/" + url.PathEscape(storyID)

	var resp struct {
		User UserRecord `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, path, nil, tokenBody{Token: token}, &resp); err != nil {
		return UserRecord{}, err
	}
	return resp.User, nil
}

// RemoveFavorite drops the favorite relation for a story.
func (c *Client) RemoveFavorite(ctx context.Context, token, username, storyID string) error {
	path := "/users/" + url.PathEscape(username) + "/favorites/" + url.PathEscape(storyID)
	return c.do(ctx, http.MethodDelete, path, nil, tokenBody{Token: token}, nil)
}
