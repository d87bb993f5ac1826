package main

import (
	"fmt"
	"os"

	"github.com/uhudbuilders/sitecms/internal/commands"
	"github.com/uhudbuilders/sitecms/internal/config"
)

func main() {
	config.LoadDotEnv()

	if err := commands.RootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
