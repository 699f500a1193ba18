// Package cmdlog prints pretty progress to the console
package cmdlog

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/jwalton/gchalk"
	"github.com/mattn/go-isatty"
)

// Logger writes human readable progress lines
type Logger struct {
	emojis    bool
	indention int
}

// New returns a new Logger. Colors and emojis are disabled on CI and
// when stdout is not a terminal.
func New() *Logger {
	emojis := runtime.GOOS != "windows"

	if os.Getenv("CI") != "" || !isatty.IsTerminal(os.Stdout.Fd()) {
		emojis = false
		gchalk.SetLevel(gchalk.LevelNone)
	}

	return &Logger{emojis: emojis}
}

// DisableColors turns all styling off
func (l *Logger) DisableColors() {
	gchalk.SetLevel(gchalk.LevelNone)
}

// helper for indention
func (l *Logger) println(a string) {
	fmt.Println(strings.Repeat(" ", l.indention) + a)
}

func (l *Logger) sprintEmoji(e string) string {
	if l.emojis {
		return e + " "
	}
	return ""
}

// Headline prints a bold cyan line
func (l *Logger) Headline(s string) {
	fmt.Println(gchalk.WithBold().Cyan(s))
}

// Info prints a "normal" line
func (l *Logger) Info(s string) {
	l.println(s)
}

// Warn will print a warning
func (l *Logger) Warn(s string) {
	fmt.Println(l.sprintEmoji("⚠️") + gchalk.WithBold().Yellow(s))
}

// Problem prints one diagnostic line
func (l *Logger) Problem(s string) {
	l.println(gchalk.Red("✗ ") + s)
}

// Success prints a green check line
func (l *Logger) Success(s string) {
	l.println(gchalk.Green("✓ ") + s)
}

// Fail prints the given message and exits 1
func (l *Logger) Fail(s string) {
	fmt.Println(l.sprintEmoji("💣") + gchalk.WithBold().Red("Error: ") + gchalk.Bold(s))
	os.Exit(1)
}

// NewTask returns a Task logger counting up to end
func (l *Logger) NewTask(end int) *Task {
	logger := *l
	return &Task{&logger, 0, end}
}

// Task logs but with progress
type Task struct {
	*Logger
	current int
	end     int
}

// Step prints progress
func (t *Task) Step(e string, s string) {
	t.current++
	fmt.Println(gchalk.Cyan(fmt.Sprintf(
		"[%d / %d] %s%s",
		t.current,
		t.end,
		t.sprintEmoji(e),
		s,
	)))
}
