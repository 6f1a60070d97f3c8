// Command sortscope records and plays back sorting algorithm traces.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/sortscope/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
