// Package main is the entry point for the subastas CLI.
package main

import (
	"os"

	"github.com/donaldgifford/auction-browser/cmd/subastas/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
