package main

import (
	"os"

	"github.com/nhle/fast-task/internal/cli"
	"github.com/nhle/fast-task/internal/config"
	"github.com/nhle/fast-task/internal/logging"
)

// version is overridden at release time via -ldflags.
var version = "dev"

func main() {
	if dir, err := config.Dir(); err == nil {
		logging.Setup(dir)
	}

	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr, version))
}
