// ABOUTME: Entry point for the reader CLI
// ABOUTME: Runs the API server and offline summarize, export and settings commands

package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
