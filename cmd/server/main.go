// Package main implements the entry point for the task manager API server,
// which authenticates users with stateless bearer tokens and serves their
// personal task lists.
package main

import (
	"os"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
