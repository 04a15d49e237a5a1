package tui

import (
	"github.com/DSom20/hack-or-snooze/internal/api"
	"github.com/DSom20/hack-or-snooze/internal/session"
)

// Messages carry the result of a resolved command back to Update. Commands
// run on their own goroutines, so they only talk to the network or the store;
// every mutation of app and session state happens in Update when the message
// lands.

type storiesLoadedMsg struct {
	list *api.StoryList
}

type errMsg struct {
	err error
}

// sessionStartedMsg lands after login or signup has resolved. Update installs
// the user on the session and kicks off credential persistence.
type sessionStartedMsg struct {
	user *session.User
}

// sessionEndedMsg lands after the persisted credentials have been cleared.
type sessionEndedMsg struct{}

type storyCreatedMsg struct {
	story api.Story
}

// favToggledMsg carries the server-confirmed favorite state. On favoriting,
// story holds the record the server appended to the favorites collection.
type favToggledMsg struct {
	storyID   string
	favorited bool
	story     api.Story
}

type storyDeletedMsg struct {
	storyID string
}
