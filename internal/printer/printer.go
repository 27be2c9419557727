// Package printer writes progress and warning messages to the console.
// Everything goes to stderr so generated fragments on stdout stay clean.
package printer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

func init() {
	// color decides from stdout, but messages go to stderr.
	fd := os.Stderr.Fd()
	color.NoColor = os.Getenv("NO_COLOR") != "" ||
		!(isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
}

var (
	// Color definitions
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
)

// Output receives all messages. Tests swap it for a buffer.
var Output io.Writer = os.Stderr

func line(format string, a ...any) string {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	return msg
}

// Info prints an informational message with an "[i]" prefix.
func Info(format string, a ...any) {
	cyan.Fprint(Output, "[i] ")
	fmt.Fprint(Output, line(format, a...))
}

// Warning prints a warning in yellow with a "[w]" prefix.
func Warning(format string, a ...any) {
	yellow.Fprint(Output, "[w] "+line(format, a...))
}

// Error prints a formatted error with title, explanation and suggestions and
// returns a simple error carrying only the title.
func Error(title string, explanation string, suggestions []string) error {
	red.Fprintf(Output, "%s\n", title)

	if explanation != "" {
		fmt.Fprintf(Output, "\n%s\n", explanation)
	}

	if len(suggestions) > 0 {
		fmt.Fprintf(Output, "\n")
		if len(suggestions) == 1 {
			fmt.Fprintf(Output, "%s\n", suggestions[0])
		} else {
			fmt.Fprintf(Output, "Either:\n")
			for i, suggestion := range suggestions {
				fmt.Fprintf(Output, "  %d. %s\n", i+1, suggestion)
			}
		}
	}

	return fmt.Errorf("%s", title)
}
