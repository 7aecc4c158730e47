package main

import (
	"errors"
	"fmt"
	"os"

	flatten "github.com/goliatone/go-flatten"
)

const (
	exitOK              = 0
	exitFailure         = 1
	exitInvalidArgument = 2
)

func main() {
	cmd := newRootCmd(os.Stdin, os.Stdout, os.LookupEnv)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps argument errors to 2 and everything else to 1.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, flatten.ErrInvalidArgument), errors.Is(err, errUsage):
		return exitInvalidArgument
	default:
		return exitFailure
	}
}
