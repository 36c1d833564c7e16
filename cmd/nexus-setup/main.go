package main

import (
	"fmt"
	"os"

	"github.com/Yosodog/Nexus-Setup/internal/installer"
	"github.com/Yosodog/Nexus-Setup/internal/tui"
)

func main() {
	args := os.Args[1:]

	if len(args) > 0 && args[0] == "setup" {
		if err := tui.StartWizard(); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		return
	}

	if err := installer.Run(args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
