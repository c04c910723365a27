package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/rghose/resume-screener/internal/config"
	"github.com/rghose/resume-screener/internal/service"
	"github.com/rghose/resume-screener/internal/usecase"
)

func main() {
	ctx := context.Background()
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	fetcher, err := service.NewSheetsService(ctx, config.LoadSheetsConfig())
	if err != nil {
		log.Fatalf("Could not init Sheets client: %v", err)
	}

	llm, err := newLLMClient(ctx)
	if err != nil {
		log.Fatal(err)
	}

	uc := usecase.NewQAUsecase(fetcher, llm)
	if err := uc.RunInteractive(ctx, os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func newLLMClient(ctx context.Context) (service.LLMClient, error) {
	switch config.LoadLLMConfig().Provider {
	case "openrouter":
		return service.NewOpenRouterService(config.LoadOpenRouterConfig())
	case "gemini":
		return service.NewGeminiService(ctx, config.LoadGeminiConfig())
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", config.LoadLLMConfig().Provider)
	}
}
