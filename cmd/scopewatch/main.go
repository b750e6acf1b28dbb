package main

import (
	"fmt"
	"os"
	"scopewatch/internal/di"
	"scopewatch/internal/structures"

	flag "github.com/spf13/pflag"
)

func main() {
	var flags structures.CliFlags

	flag.StringVarP(&flags.ConfigPath, "config", "c", "config.yaml", "path to the YAML config file")
	flag.BoolVarP(&flags.DebugMode, "debug", "d", false, "also log to the console")
	flag.Parse()

	_, cleanup, err := di.InitApp(&flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scopewatch: %v\n", err)
		os.Exit(1)
	}
	cleanup()
}
