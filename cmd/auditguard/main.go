package main

import (
	"fmt"
	"os"

	"github.com/fixora/auditguard/infrastructure/cli"
)

// Version and build information
var (
	Version   = "development"
	GitCommit = "unknown"
)

func main() {
	cli.Version = Version
	cli.Commit = GitCommit

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
