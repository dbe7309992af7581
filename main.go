package main

import (
	"context"
	"os"

	"github.com/maketest/maketest/cmd"
	"github.com/maketest/maketest/pkg/cfg"
	"github.com/maketest/maketest/pkg/environment"
	"github.com/maketest/maketest/pkg/logging"
	"github.com/spf13/afero"
)

func main() {
	fs := afero.NewOsFs()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := logging.GetLogger()

	env, err := environment.NewEnvironment(fs, nil)
	if err != nil {
		logger.Error("failed to set up environment", "error", err)
		os.Exit(1)
	}

	settings, err := cfg.Load(fs, env)
	if err != nil {
		logger.Error("failed to load settings", "error", err)
		os.Exit(1)
	}

	rootCmd := cmd.NewRootCommand(fs, ctx, settings, env, logger)
	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}
