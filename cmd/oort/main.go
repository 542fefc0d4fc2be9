// Command oort turns SPARQL JSON results into trees and resource graphs.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/oort/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
