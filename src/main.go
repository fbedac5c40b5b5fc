package main

import (
	"fmt"
	"os"

	"zinc/src/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "zinc: %s\n", err)
		os.Exit(1)
	}
}
