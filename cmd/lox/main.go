package main

import (
	"fmt"
	"os"

	"github.com/artuross/lox/internal/commands/exitcode"
	"github.com/artuross/lox/internal/commands/root"
)

func main() {
	rootCmd := root.NewCommand()

	if err := rootCmd.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitcode.Usage)
	}
}
