// cmd/docedit/main.go
package main

import (
	"flag"
	"fmt"
	stlog "log" // standard log for fatal errors before the logger is ready
	"os"

	"github.com/bethropolis/docedit/internal/app"
	"github.com/bethropolis/docedit/internal/config"
	"github.com/bethropolis/docedit/internal/logger"
)

const version = "0.1.0"

func main() {
	// --- Argument & Flag Parsing ---
	var flags config.Flags
	args, err := flags.ParseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, version)
		return
	}
	var filePath string
	if len(args) > 0 {
		filePath = args[0]
	}

	// --- Configuration ---
	cfg, cfgErr := config.LoadConfig(*flags.ConfigFilePath, &flags)

	// --- Logger Initialization ---
	logOutput, closeLog, err := logger.OpenOutput(cfg.Logger)
	if err != nil {
		stlog.Fatalf("Failed to open log output: %v", err)
	}
	defer closeLog()
	logger.Init(cfg.Logger, logOutput)

	logger.Infof("Starting %s %s", config.AppName, version)
	if cfgErr != nil {
		logger.Warnf("Config: %v (using defaults)", cfgErr)
		fmt.Fprintf(os.Stderr, "warning: %v\n", cfgErr)
	} else if cfg.Source != "" {
		logger.Debugf("Config loaded from %s", cfg.Source)
	}
	if len(cfg.UnknownKeys) > 0 {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", cfg.Source, cfg.UnknownKeys)
	}

	// --- Create and Run App ---
	a, err := app.New(app.Options{
		FilePath: filePath,
		Kind:     *flags.Kind,
		Config:   cfg,
		Prompt:   "> ",
	})
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		closeLog()
		os.Exit(1)
	}

	if err := a.Run(os.Stdin, os.Stdout); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		closeLog()
		os.Exit(1)
	}
	logger.Infof("%s finished.", config.AppName)
}
