package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/chrissnell/solarsim/internal/app"
	"github.com/chrissnell/solarsim/internal/log"
	"github.com/chrissnell/solarsim/pkg/config"
)

const version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

func main() {
	cfgFile := flag.String("config", "config.yaml", "Path to YAML configuration file")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("solarsim %s\n", version)
		os.Exit(0)
	}

	// Load configuration
	filename, _ := filepath.Abs(*cfgFile)
	cfgData, err := config.NewYAMLProvider(filename).LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading config file. Did you pass the -config flag? Run with -h for help: %v\n", err)
		os.Exit(1)
	}

	// Set up logging, rotated to a file when one is configured
	if cfgData.Log.File != "" {
		log.InitWithRotation(cfgData.Log.File, cfgData.Log.MaxSizeMB, cfgData.Log.MaxBackups, *debug)
	} else if err := log.Init(*debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Create and run the application
	application := app.New(cfgData, log.GetSugaredLogger())
	if err := application.Run(context.Background()); err != nil {
		log.Errorf("Application error: %v", err)
		os.Exit(1)
	}
}
