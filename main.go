package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/text"
	"go.olrik.dev/gitrev/cmd"
)

func main() {
	text.EnableColors()

	root := cmd.NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.HiRedString("gitrev: %s", err))
		os.Exit(cmd.ExitCode(err))
	}
}
