// Command fishexpand is a standalone driver for the expand pipeline: it
// reads one or more argument strings and prints what they expand to,
// without a surrounding shell.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
