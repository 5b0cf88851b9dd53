// Command respkv runs a RESP-speaking in-memory key-value server.
package main

import (
	"fmt"
	"os"

	"github.com/marmos91/respkv/cmd/respkv/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.Version = version
	commands.Commit = commit
	commands.Date = date

	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
