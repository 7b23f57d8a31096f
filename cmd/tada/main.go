package main

import (
	"os"

	"github.com/Makepad-fr/tada/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], cli.StdEnv()))
}
