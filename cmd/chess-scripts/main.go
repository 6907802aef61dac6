package main

import (
	"fmt"
	"os"

	"github.com/kyleboon/chess-scripts/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
