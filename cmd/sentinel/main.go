package main

import (
	"flag"
	"log"
	"sentinel/internal/di"
	"sentinel/internal/structures"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "path to the configuration file")
	flag.BoolVar(&flags.DebugMode, "debug", false, "enable debug logging")
	flag.Parse()

	if _, err := di.InitApp(flags); err != nil {
		log.Fatalf("sentinel: %s", err)
	}
}
