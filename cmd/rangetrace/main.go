// Package main is the entry point for the rangetrace application.
package main

import (
	"os"

	"github.com/mogiioin/hls-ranges/cmd/rangetrace/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
