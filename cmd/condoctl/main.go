package main

import (
	"fmt"
	"os"

	"github.com/pewpola/dao-condominium/cmd/condoctl/commands"
)

// Version information - set during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	root := commands.NewRootCommand()
	commands.SetVersionInfo(root, version, commit, date)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
