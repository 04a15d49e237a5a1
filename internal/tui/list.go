package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/DSom20/hack-or-snooze/internal/api"
	"github.com/DSom20/hack-or-snooze/internal/session"
)

// hostname pulls the display host out of a story URL. Story URLs arrive from
// the service unvalidated, so this stays a plain string split rather than a
// full parse.
func hostname(rawURL string) string {
	var host string
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

func relativeTime(raw string) string {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return ""
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	default:
		return t.Format("Jan 2")
	}
}

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func renderStoryItem(s api.Story, selected, favorited, deletable bool, width int) string {
	if width < 10 {
		width = 30
	}

	star := starDimStyle.Render("☆")
	if favorited {
		star = starStyle.Render("★")
	}

	title := truncateStr(s.Title, width-8)
	var line string
	if selected {
		line = star + " " + itemSelectedStyle.Render("> "+title)
	} else {
		line = star + " " + itemTitleStyle.Render("  "+title)
	}
	if deletable && selected {
		line += " " + errorStyle.Render("[d deletes]")
	}

	meta := "    " + itemHostStyle.Render("("+hostname(s.URL)+")") +
		" " + itemMetaStyle.Render("by "+s.Author+" · posted by "+s.Username)
	if rel := relativeTime(s.CreatedAt); rel != "" {
		meta += " " + itemMetaStyle.Render("· "+rel)
	}

	return line + "\n" + meta
}

func renderStories(stories []api.Story, user *session.User, cursor, height, width int, deletable bool, empty string) string {
	if len(stories) == 0 {
		return lipglossCenter(empty, width, height)
	}

	// Each item is 2 lines + 1 blank line = 3 lines
	itemHeight := 3
	visible := height / itemHeight
	if visible < 1 {
		visible = 1
	}

	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(stories) {
		end = len(stories)
		start = end - visible
		if start < 0 {
			start = 0
		}
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		favorited := user != nil && user.IsFavorited(stories[i].StoryID)
		b.WriteString(renderStoryItem(stories[i], i == cursor, favorited, deletable, width))
		if i < end-1 {
			b.WriteString("\n\n")
		}
	}

	return b.String()
}

func lipglossCenter(s string, width, height int) string {
	pad := (width - len(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat("\n", height/3) + strings.Repeat(" ", pad) + s
}
