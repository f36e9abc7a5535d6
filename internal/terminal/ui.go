package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// Colors for terminal output.
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"
)

var (
	mu    sync.Mutex
	out   io.Writer = os.Stdout
	color           = term.IsTerminal(int(os.Stdout.Fd()))
)

// SetOutput redirects all helpers to w and returns a func restoring the
// previous writer. Color is only kept when w is a terminal.
func SetOutput(w io.Writer) (restore func()) {
	mu.Lock()
	defer mu.Unlock()
	prevOut, prevColor := out, color
	out = w
	color = false
	if f, ok := w.(*os.File); ok {
		color = term.IsTerminal(int(f.Fd()))
	}
	return func() {
		mu.Lock()
		defer mu.Unlock()
		out, color = prevOut, prevColor
	}
}

// Output returns the writer the helpers print to.
func Output() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return out
}

func printf(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(out, format, args...)
}

// paint returns the escape sequences only when color is enabled.
func paint(codes ...string) string {
	mu.Lock()
	defer mu.Unlock()
	if !color {
		return ""
	}
	return strings.Join(codes, "")
}

func mark(symbol string, codes ...string) string {
	return paint(append([]string{Bold}, codes...)...) + symbol + paint(Reset)
}

// Success prints a green success message.
func Success(msg string) {
	printf("%s %s\n", mark("✓", Green), msg)
}

// Error prints a red error message.
func Error(msg string) {
	printf("%s %s\n", mark("✗", Red), msg)
}

// Info prints a blue info message.
func Info(msg string) {
	printf("%s %s\n", mark("i", Blue), msg)
}

// Warning prints a yellow warning message.
func Warning(msg string) {
	printf("%s %s\n", mark("!", Yellow), msg)
}

// Header prints a bold header.
func Header(msg string) {
	printf("\n%s%s%s\n", paint(Bold), msg, paint(Reset))
}

// Detail prints an indented detail line.
func Detail(label, value string) {
	printf("  %s%s:%s %s\n", paint(Dim), label, paint(Reset), value)
}

// Step prints a numbered instruction.
func Step(n int, msg string) {
	printf("  %s%d.%s %s\n", paint(Cyan), n, paint(Reset), msg)
}

// Divider prints a horizontal line.
func Divider() {
	printf("%s%s%s\n", paint(Dim), strings.Repeat("─", 50), paint(Reset))
}

// Println prints a plain line.
func Println(msg string) {
	printf("%s\n", msg)
}
