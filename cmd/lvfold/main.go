// Package main implements the lvfold CLI: folding, counting, consensus,
// planarization and design from the command line, plus an HTTP server.
package main

import (
	"os"
)

// version is set at build time.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
