package config

import "io"

// SwapExitForTest redirects Exitf output and exit calls until restore runs.
func SwapExitForTest(w io.Writer, fn func(int)) (restore func()) {
	oldStderr, oldExit := stderr, exit
	stderr, exit = w, fn
	return func() { stderr, exit = oldStderr, oldExit }
}
