// Command tapec compiles recorded operation graphs into invokable
// functions and inspects the results.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/tapec/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
