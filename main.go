package main

import (
	"fmt"
	"os"

	"github.com/ftahirops/dumptriage/cmd"
)

func main() {
	if err := cmd.Run(cmd.NoBackend); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
