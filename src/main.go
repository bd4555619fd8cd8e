package main

import (
	"flag"
	"log"
	"strings"

	"csvgen/src/config"
	"csvgen/src/generator"
)

var (
	operation = flag.String("op", "create", "create/show/delete, default is create")
	cfgPath   = flag.String("cfg", "", "config path")
	outPath   = flag.String("out", "", "override output file path")
	sizeStr   = flag.String("size", "", "override target size, e.g. 10GiB")
	seed      = flag.Int64("seed", 0, "random seed, 0 picks a time-based seed")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *outPath != "" {
		cfg.Common.Path = *outPath
	}
	if *sizeStr != "" {
		cfg.Common.Size = *sizeStr
	}
	if *seed != 0 {
		cfg.Common.Seed = *seed
	}
	if err := config.Normalize(cfg); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	switch strings.ToLower(*operation) {
	case "create":
		orch, err := generator.NewOrchestrator(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize generator: %v", err)
		}
		if err := orch.Run(); err != nil {
			log.Fatalf("Failed to generate file: %v", err)
		}
	case "show":
		if err := ShowFiles(cfg); err != nil {
			log.Fatalf("Failed to show files: %v", err)
		}
	case "delete":
		if err := DeleteFiles(cfg); err != nil {
			log.Fatalf("Failed to delete files: %v", err)
		}
	default:
		log.Fatalf("Unknown operation: %s", *operation)
	}
}
