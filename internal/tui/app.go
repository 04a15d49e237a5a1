package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/DSom20/hack-or-snooze/internal/api"
	"github.com/DSom20/hack-or-snooze/internal/browser"
	"github.com/DSom20/hack-or-snooze/internal/session"
)

type mode int

const (
	modeStories mode = iota
	modeFavorites
	modeOwn
	modeLogin
	modeSignup
	modeSubmit
	modeHelp
)

const opTimeout = 30 * time.Second

type App struct {
	sess          *session.Session
	defaultAuthor string

	mode   mode
	list   *api.StoryList
	cursor int

	width  int
	height int

	// Sub-components
	spinner    spinner.Model
	loginForm  form
	signupForm form
	submitForm form

	// State
	loading bool
	err     error
	notice  string
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Sess          *session.Session
	DefaultAuthor string
}

func NewApp(opts RunOpts) *App {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	return &App{
		sess:          opts.Sess,
		defaultAuthor: opts.DefaultAuthor,
		list:          &api.StoryList{},
		spinner:       sp,
		loginForm:     newLoginForm(),
		signupForm:    newSignupForm(),
		submitForm:    newSubmitForm(opts.DefaultAuthor),
		mode:          modeStories,
		loading:       true,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadStoriesCmd(), a.spinner.Tick)
}

// visibleStories returns the collection the current panel displays. The
// favorites and own panels render the session mirrors directly, so a resolved
// mutation shows up on the next frame without a re-fetch.
func (a *App) visibleStories() []api.Story {
	switch a.mode {
	case modeFavorites:
		if a.sess.User != nil {
			return a.sess.User.Favorites
		}
		return nil
	case modeOwn:
		if a.sess.User != nil {
			return a.sess.User.OwnStories
		}
		return nil
	default:
		return a.list.Stories
	}
}

func (a *App) clampCursor() {
	if n := len(a.visibleStories()); a.cursor >= n {
		a.cursor = max(0, n-1)
	}
}

func (a *App) loadStoriesCmd() tea.Cmd {
	client := a.sess.Client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		list, err := client.FetchStories(ctx)
		if err != nil {
			return errMsg{err: err}
		}
		return storiesLoadedMsg{list: list}
	}
}

// The command closures below capture the client and plain credential values,
// never the user or its mirrors: they run on their own goroutines while View
// keeps reading session state, so the mirrors are only touched in Update once
// the result message lands.

func (a *App) loginCmd(username, password string) tea.Cmd {
	client := a.sess.Client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		user, err := session.Login(ctx, client, username, password)
		if err != nil {
			return errMsg{err: err}
		}
		return sessionStartedMsg{user: user}
	}
}

func (a *App) signupCmd(name, username, password string) tea.Cmd {
	client := a.sess.Client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		user, err := session.Signup(ctx, client, username, password, name)
		if err != nil {
			return errMsg{err: err}
		}
		return sessionStartedMsg{user: user}
	}
}

func (a *App) persistCredsCmd(token, username string) tea.Cmd {
	store := a.sess.Store
	return func() tea.Msg {
		if store == nil {
			return nil
		}
		if err := store.Save(token, username); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

func (a *App) logoutCmd() tea.Cmd {
	store := a.sess.Store
	return func() tea.Msg {
		if store != nil {
			if err := store.Clear(); err != nil {
				return errMsg{err: err}
			}
		}
		return sessionEndedMsg{}
	}
}

func (a *App) submitCmd(draft api.Draft) tea.Cmd {
	client := a.sess.Client
	if a.sess.User == nil {
		return func() tea.Msg { return errMsg{err: api.ErrUnauthorized} }
	}
	token := a.sess.User.LoginToken
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		story, err := client.CreateStory(ctx, token, draft)
		if err != nil {
			return errMsg{err: err}
		}
		return storyCreatedMsg{story: story}
	}
}

func (a *App) toggleFavCmd(storyID string) tea.Cmd {
	client := a.sess.Client
	if a.sess.User == nil {
		return func() tea.Msg { return errMsg{err: api.ErrUnauthorized} }
	}
	token := a.sess.User.LoginToken
	username := a.sess.User.Username

	if a.sess.User.IsFavorited(storyID) {
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
			defer cancel()
			if err := client.RemoveFavorite(ctx, token, username, storyID); err != nil {
				return errMsg{err: err}
			}
			return favToggledMsg{storyID: storyID, favorited: false}
		}
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		rec, err := client.AddFavorite(ctx, token, username, storyID)
		if err != nil {
			return errMsg{err: err}
		}
		msg := favToggledMsg{storyID: storyID, favorited: true}
		if n := len(rec.Favorites); n > 0 {
			msg.story = rec.Favorites[n-1]
		}
		return msg
	}
}

func (a *App) deleteCmd(storyID string) tea.Cmd {
	client := a.sess.Client
	if a.sess.User == nil {
		return func() tea.Msg { return errMsg{err: api.ErrUnauthorized} }
	}
	token := a.sess.User.LoginToken
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		if err := client.DeleteStory(ctx, token, storyID); err != nil {
			return errMsg{err: err}
		}
		return storyDeletedMsg{storyID: storyID}
	}
}

func openBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		if err := browser.Open(url); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		// Clear sticky error and notice on any keypress
		a.err = nil
		a.notice = ""
		return a.handleKey(msg)

	case storiesLoadedMsg:
		a.loading = false
		a.list = msg.list
		a.clampCursor()
		return a, nil

	case errMsg:
		a.loading = false
		a.err = msg.err
		return a, nil

	case sessionStartedMsg:
		a.sess.User = msg.user
		a.mode = modeStories
		a.cursor = 0
		a.notice = "logged in as " + msg.user.Username
		return a, a.persistCredsCmd(msg.user.LoginToken, msg.user.Username)

	case sessionEndedMsg:
		a.sess.User = nil
		a.mode = modeStories
		a.cursor = 0
		a.notice = "logged out"
		return a, nil

	case storyCreatedMsg:
		// Local insert, newest-first; no re-fetch
		if a.sess.User != nil {
			a.sess.User.AddOwnStory(msg.story)
		}
		a.list.Prepend(msg.story)
		a.mode = modeStories
		a.cursor = 0
		a.notice = "story submitted"
		return a, nil

	case favToggledMsg:
		if a.sess.User != nil {
			if msg.favorited {
				if msg.story.StoryID != "" {
					a.sess.User.MarkFavorite(msg.story)
				}
			} else {
				a.sess.User.UnmarkFavorite(msg.storyID)
			}
		}
		a.clampCursor()
		if msg.favorited {
			a.notice = "added to favorites"
		} else {
			a.notice = "removed from favorites"
		}
		return a, nil

	case storyDeletedMsg:
		if a.sess.User != nil {
			a.sess.User.DropStory(msg.storyID)
		}
		a.list.Stories = withoutStory(a.list.Stories, msg.storyID)
		a.clampCursor()
		a.notice = "story deleted"
		return a, nil

	case spinner.TickMsg:
		if a.loading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
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

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.mode {
	case modeLogin:
		return a.handleFormKey(msg, &a.loginForm, func(v []string) tea.Cmd {
			return a.loginCmd(v[0], v[1])
		})
	case modeSignup:
		return a.handleFormKey(msg, &a.signupForm, func(v []string) tea.Cmd {
			return a.signupCmd(v[0], v[1], v[2])
		})
	case modeSubmit:
		return a.handleFormKey(msg, &a.submitForm, func(v []string) tea.Cmd {
			return a.submitCmd(api.Draft{Author: v[0], Title: v[1], URL: v[2]})
		})
	case modeHelp:
		switch msg.String() {
		case "?", "esc", "q":
			a.mode = modeStories
		}
		return a, nil
	}

	return a.handleListKey(msg)
}

func (a *App) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	stories := a.visibleStories()

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "j", "down":
		if a.cursor < len(stories)-1 {
			a.cursor++
		}
		return a, nil
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil
	case "a", "1", "esc":
		a.mode = modeStories
		a.clampCursor()
		return a, nil
	case "f", "2":
		if a.sess.LoggedIn() {
			a.mode = modeFavorites
			a.cursor = 0
		}
		return a, nil
	case "m", "3":
		if a.sess.LoggedIn() {
			a.mode = modeOwn
			a.cursor = 0
		}
		return a, nil
	case "o", "enter":
		if a.cursor < len(stories) {
			return a, openBrowserCmd(stories[a.cursor].URL)
		}
		return a, nil
	case " ", "*":
		if a.sess.LoggedIn() && a.cursor < len(stories) {
			return a, a.toggleFavCmd(stories[a.cursor].StoryID)
		}
		return a, nil
	case "d":
		if a.mode == modeOwn && a.cursor < len(stories) {
			return a, a.deleteCmd(stories[a.cursor].StoryID)
		}
		return a, nil
	case "n":
		if a.sess.LoggedIn() {
			a.mode = modeSubmit
			a.submitForm = newSubmitForm(a.defaultAuthor)
			return a, a.submitForm.activate()
		}
		return a, nil
	case "r":
		if !a.loading && a.mode == modeStories {
			a.loading = true
			return a, tea.Batch(a.loadStoriesCmd(), a.spinner.Tick)
		}
		return a, nil
	case "i":
		if !a.sess.LoggedIn() {
			a.mode = modeLogin
			a.loginForm.reset()
			return a, a.loginForm.activate()
		}
		return a, nil
	case "u":
		if !a.sess.LoggedIn() {
			a.mode = modeSignup
			a.signupForm.reset()
			return a, a.signupForm.activate()
		}
		return a, nil
	case "x":
		if a.sess.LoggedIn() {
			return a, a.logoutCmd()
		}
		return a, nil
	case "?":
		a.mode = modeHelp
		return a, nil
	}

	return a, nil
}

func (a *App) handleFormKey(msg tea.KeyMsg, f *form, submit func(values []string) tea.Cmd) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeStories
		f.reset()
		return a, nil
	case "tab", "down":
		return a, f.cycleFocus(false)
	case "shift+tab", "up":
		return a, f.cycleFocus(true)
	case "enter":
		if !f.onLastField() {
			return a, f.cycleFocus(false)
		}
		values := f.values()
		for _, v := range values {
			if v == "" {
				a.err = fmt.Errorf("all fields are required")
				return a, nil
			}
		}
		f.reset()
		return a, submit(values)
	}

	return a, f.update(msg)
}

func (a *App) tabBar() string {
	type tab struct {
		label  string
		active bool
		shown  bool
	}
	tabs := []tab{
		{"all stories", a.mode == modeStories, true},
		{"favorites", a.mode == modeFavorites, a.sess.LoggedIn()},
		{"my stories", a.mode == modeOwn, a.sess.LoggedIn()},
	}

	var parts []string
	for _, t := range tabs {
		if !t.shown {
			continue
		}
		if t.active {
			parts = append(parts, tabActiveStyle.Render(t.label))
		} else {
			parts = append(parts, tabInactiveStyle.Render(t.label))
		}
	}
	return " " + strings.Join(parts, " ")
}

func (a *App) header() string {
	left := headerStyle.Render("snooze")
	var right string
	if a.sess.LoggedIn() {
		right = headerUserStyle.Render(a.sess.User.Username) + headerDimStyle.Render(" · x logout ")
	} else {
		right = headerDimStyle.Render("logged out · i login · u signup ")
	}
	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return left + fmt.Sprintf("%*s", gap, "") + right
}

func (a *App) panelLabel() string {
	switch a.mode {
	case modeFavorites:
		return "favorites"
	case modeOwn:
		return "my stories"
	default:
		return ""
	}
}

func (a *App) hints() string {
	switch a.mode {
	case modeFavorites:
		return "space unstar  o open  a all  q quit"
	case modeOwn:
		return "d delete  o open  a all  q quit"
	default:
		if a.sess.LoggedIn() {
			return "space star  n new  f favs  m mine  r refresh  ? help  q quit"
		}
		return "o open  r refresh  i login  ? help  q quit"
	}
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  snooze")
	}

	if a.mode == modeHelp {
		return a.renderHelp()
	}

	header := a.header()
	tabs := a.tabBar()

	contentHeight := a.height - 4 // header + tabs + status + spacing
	if contentHeight < 3 {
		contentHeight = 3
	}

	var content string
	switch a.mode {
	case modeLogin:
		content = lipgloss.Place(a.width, contentHeight, lipgloss.Center, lipgloss.Center, a.loginForm.view())
	case modeSignup:
		content = lipgloss.Place(a.width, contentHeight, lipgloss.Center, lipgloss.Center, a.signupForm.view())
	case modeSubmit:
		content = lipgloss.Place(a.width, contentHeight, lipgloss.Center, lipgloss.Center, a.submitForm.view())
	default:
		empty := "No stories yet"
		if a.mode == modeFavorites {
			empty = "No favorites yet — press space on a story to star it"
		} else if a.mode == modeOwn {
			empty = "You haven't posted anything yet — press n to submit"
		}
		content = renderStories(a.visibleStories(), a.sess.User, a.cursor, contentHeight, a.width-2, a.mode == modeOwn, empty)
		lines := strings.Split(content, "\n")
		for len(lines) < contentHeight {
			lines = append(lines, "")
		}
		if len(lines) > contentHeight {
			lines = lines[:contentHeight]
		}
		content = strings.Join(lines, "\n")
	}

	status := renderStatusBar(len(a.visibleStories()), a.panelLabel(), a.width, a.loading, a.hints())
	if a.loading {
		status = a.spinner.View() + " " + status
	}
	if a.notice != "" && a.err == nil {
		status = renderStatusBar(len(a.visibleStories()), a.notice, a.width, false, a.hints())
	}

	// Errors replace the status line and stay until the next keypress
	if a.err != nil {
		status = errorStyle.Render(" " + a.err.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, tabs, content, status)
}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("snooze")
	dim := helpDimStyle

	help := title + dim.Render(" — Keyboard Shortcuts") + "\n\n" +
		dim.Render("Navigation") + "\n" +
		"  j/k, ↑/↓      Move through the story list\n" +
		"  a, 1           All stories\n" +
		"  f, 2           Favorites (logged in)\n" +
		"  m, 3           My stories (logged in)\n\n" +
		dim.Render("Actions") + "\n" +
		"  o, enter       Open story in browser\n" +
		"  space, *       Toggle favorite star\n" +
		"  n              Submit a new story\n" +
		"  d              Delete story (my stories panel)\n" +
		"  r              Refresh the story list\n\n" +
		dim.Render("Session") + "\n" +
		"  i              Log in\n" +
		"  u              Create account\n" +
		"  x              Log out\n\n" +
		dim.Render("General") + "\n" +
		"  ?              Toggle this help\n" +
		"  q, ctrl+c      Quit"

	card := helpCardStyle.Render(help)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
