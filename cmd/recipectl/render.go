package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"recipectl/internal/api"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

// renderNotifications prints the notifications a command produced, one per
// line, colorized when writing to a terminal.
func renderNotifications(writer io.Writer, notes []api.Notification) {
	if len(notes) == 0 {
		return
	}
	colorize := shouldColorize(writer)
	for _, note := range notes {
		fmt.Fprintln(writer, renderNotificationLine(note, colorize))
	}
}

func renderNotificationLine(note api.Notification, colorize bool) string {
	label := "ok"
	color := ansiGreen
	if note.Kind == api.NotificationError {
		label = "error"
		color = ansiRed
	}
	line := fmt.Sprintf("[%s] %s", label, note.Message)
	if colorize {
		return color + line + ansiReset
	}
	return line
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// displayAction converts an action slug such as "show-heartbeat" into a
// human-readable title.
func displayAction(slug string) string {
	if strings.TrimSpace(slug) == "" {
		return "-"
	}
	cleaned := strings.Map(func(r rune) rune {
		if r == '-' || r == '_' || unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, slug)
	return cases.Title(language.Und).String(strings.TrimSpace(cleaned))
}

func enabledLabel(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
