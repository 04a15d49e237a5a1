package api

import (
	"context"
	"net/http"
	"net/url"
)

// Story is one shared link as the service returns it. Constructed only from
// server records, never synthesized client-side. Timestamps stay raw strings
// so a record re-encodes exactly as it arrived.
type Story struct {
	Author    string `json:"author"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Username  string `json:"username"`
	StoryID   string `json:"storyId"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// Same reports identity: two stories are the same iff their storyIds match.
func (s Story) Same(other Story) bool {
	return s.StoryID == other.StoryID
}

// Draft is the client-supplied part of a new story.
type Draft struct {
	Author string `json:"author"`
	Title  string `json:"title"`
	URL    string `json:"url"`
}

// StoryList is a fetched snapshot of the service's story collection, in
// server order (newest first). It never re-syncs; local inserts are the
// caller's responsibility.
type StoryList struct {
	Stories []Story
}

// Prepend inserts a freshly created story at the top, matching the service's
// newest-first ordering without a re-fetch.
func (l *StoryList) Prepend(s Story) {
	l.Stories = append([]Story{s}, l.Stories...)
}

// FetchStories reads the story collection. No authentication required.
func (c *Client) FetchStories(ctx context.Context) (*StoryList, error) {
	var resp struct {
		Stories []Story `json:"stories"`
	}
	if err := c.do(ctx, http.MethodGet, "/stories", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &StoryList{Stories: resp.Stories}, nil
}

// CreateStory submits a draft on behalf of the token's user and returns the
// server's record of the new story.
func (c *Client) CreateStory(ctx context.Context, token string, draft Draft) (Story, error) {
	body := struct {
		Token string `json:"token"`
		Story Draft  `json:"story"`
	}{Token: token, Story: draft}

	var resp struct {
		Story Story `json:"story"`
	}
	if err := c.do(ctx, http.MethodPost, "/stories", nil, body, &resp); err != nil {
		return Story{}, err
	}
	return resp.Story, nil
}

// DeleteStory removes a story. The service enforces that the token's user is
// the story's author.
func (c *Client) DeleteStory(ctx context.Context, token, storyID string) error {
	path := "/stories/" + url.PathEscape(storyID)
	return c.do(ctx, http.MethodDelete, path, nil, tokenBody{Token: token}, nil)
}
