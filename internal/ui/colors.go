// Package ui formats terminal output for the sym-jshint commands.
package ui

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ANSI color codes
const (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"
	Dim    = "\033[2m"
	Bold   = "\033[1m"
)

// ColorEnabled reports whether w is a terminal that should get ANSI colors.
// NO_COLOR disables colors everywhere.
func ColorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Painter applies colors only when enabled.
type Painter struct {
	enabled bool
}

// NewPainter creates a painter for w.
func NewPainter(w io.Writer) Painter {
	return Painter{enabled: ColorEnabled(w)}
}

// Paint wraps msg in color when the painter is enabled.
func (p Painter) Paint(color, msg string) string {
	if !p.enabled {
		return msg
	}
	return color + msg + Reset
}

var stdout = func() Painter { return NewPainter(os.Stdout) }

// OK formats a success message with [OK] prefix in green
func OK(msg string) string {
	return fmt.Sprintf("%s %s", stdout().Paint(Green, "[OK]"), msg)
}

// Error formats an error message with [ERROR] prefix in red
func Error(msg string) string {
	return fmt.Sprintf("%s %s", stdout().Paint(Red, "[ERROR]"), msg)
}

// Warn formats a warning message with [WARN] prefix in yellow
func Warn(msg string) string {
	return fmt.Sprintf("%s %s", stdout().Paint(Yellow, "[WARN]"), msg)
}

// Info formats an info message with [INFO] prefix in blue
func Info(msg string) string {
	return fmt.Sprintf("%s %s", stdout().Paint(Blue, "[INFO]"), msg)
}

// TitleWithDesc formats a section title with description
func TitleWithDesc(title, desc string) string {
	prefix := stdout().Paint(Bold+Cyan, fmt.Sprintf("[%s]", title))
	return fmt.Sprintf("%s %s", prefix, desc)
}

// Done formats a completion message with [DONE] prefix in green
func Done(msg string) string {
	return fmt.Sprintf("%s %s", stdout().Paint(Green+Bold, "[DONE]"), msg)
}

func PrintOK(msg string)    { fmt.Println(OK(msg)) }
func PrintError(msg string) { fmt.Println(Error(msg)) }
func PrintWarn(msg string)  { fmt.Println(Warn(msg)) }
func PrintInfo(msg string)  { fmt.Println(Info(msg)) }
func PrintDone(msg string)  { fmt.Println(Done(msg)) }

// PrintTitle prints a section title
func PrintTitle(title, desc string) {
	fmt.Println(TitleWithDesc(title, desc))
}

// Indent returns the message with indentation
func Indent(msg string) string {
	return "     " + msg
}

// PrintIndent prints an indented message
func PrintIndent(msg string) {
	fmt.Println(Indent(msg))
}
