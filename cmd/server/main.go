package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"invex/internal/config"
	"invex/internal/extractor"
	"invex/internal/extractor/gemini"
	"invex/internal/extractor/openai"
	"invex/internal/handler"
	"invex/internal/loader"
	"invex/internal/port"
	"invex/internal/router"
	"invex/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	extractor.RegisterProvider("gemini", func(c *config.ExtractorConfig) (port.Extractor, error) {
		return gemini.NewClient(c), nil
	})
	extractor.RegisterProvider("openai", func(c *config.ExtractorConfig) (port.Extractor, error) {
		return openai.NewClient(c), nil
	})

	ext, err := extractor.NewExtractor(&cfg.Extractor)
	if err != nil {
		return fmt.Errorf("failed to initialize extractor: %w", err)
	}

	docLoader := loader.New(&cfg.Loader)
	extractionSvc := service.NewExtractionService(docLoader, ext, cfg)

	extractionH := handler.NewExtractionHandler(extractionSvc)
	healthH := handler.NewHealthHandler()

	r := router.Setup(cfg, extractionH, healthH)

	log.Printf("Server starting on %s (provider=%s model=%s)",
		cfg.Server.Port, cfg.Extractor.Provider, cfg.Extractor.DefaultModel)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
