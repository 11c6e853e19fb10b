package main

import (
	"fmt"
	"io"
	stlog "log"
	"os"

	"github.com/halcyard/ebb/internal/app"
	"github.com/halcyard/ebb/internal/config"
	"github.com/halcyard/ebb/internal/logger"
)

func main() {
	flags := &config.Flags{}
	args := flags.ParseFlags()

	if len(args) > 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] [file]\n", config.AppName)
		os.Exit(2)
	}
	filePath := ""
	if len(args) == 1 {
		filePath = args[0]
	}

	cfg, err := config.LoadConfig(*flags.ConfigFilePath, flags)
	if err != nil {
		stlog.Printf("Warning: %v", err)
	}

	// The terminal belongs to the editor, so logs go to a file (or
	// nowhere) unless stderr was explicitly requested.
	var logOutput io.Writer
	var logFile *os.File
	switch cfg.Logger.LogFilePath {
	case "":
		logOutput = nil
	case "-":
		logOutput = os.Stderr
	default:
		logFile, err = os.OpenFile(cfg.Logger.LogFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			stlog.Fatalf("Failed to open log file '%s': %v", cfg.Logger.LogFilePath, err)
		}
		defer logFile.Close()
		logOutput = logFile
	}
	logger.Init(cfg.Logger.Level(), logOutput)

	logger.Infof("Starting %s", config.AppName)
	if filePath != "" {
		logger.Debugf("File path specified: %s", filePath)
	}

	application, err := app.New(cfg, filePath)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		os.Exit(1)
	}

	os.Exit(0)
}
