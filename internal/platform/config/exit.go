package config

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Swapped by tests.
var (
	stderr io.Writer = os.Stderr
	exit             = os.Exit
)

// Exitf prints the message to stderr, adding a trailing newline when the
// message has none, and exits with status 1.
func Exitf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprint(stderr, msg)
	exit(1)
}
