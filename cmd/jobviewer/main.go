package main

import (
	"log"

	"github.com/project-tktt/job-viewer/internal/config"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	Execute(cfg)
}
