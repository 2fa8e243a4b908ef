// Command revealctl renders, measures and previews watercolor reveals.
package main

import (
	"fmt"
	"os"

	"github.com/mpalenque/brush-sub000/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
