package main

import (
	"os"

	"orbittrack/cmd/orbitctl/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
