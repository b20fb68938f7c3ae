// main.go
package main

import (
	"errors"
	"os"

	"github.com/arenasql/arenafmt/cmd"
)

func main() {
	err := cmd.Execute()
	switch {
	case err == nil:
		return
	case errors.Is(err, cmd.ErrCheckFailed):
		os.Exit(2)
	case errors.Is(err, cmd.ErrNeedsFormatting):
		os.Exit(1)
	default:
		os.Exit(1)
	}
}
