package main

import (
	"flag"
	"log"
	"os"

	"github.com/soletrade/admin/internal/app"
	"github.com/soletrade/admin/internal/config"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		log.Print(err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	return a.Run()
}
