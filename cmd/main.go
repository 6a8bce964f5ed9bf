package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/joho/godotenv/autoload"
	gommonlog "github.com/labstack/gommon/log"

	"jongubooks/pkg/gateway"
	"jongubooks/pkg/inference"
	"jongubooks/pkg/server"
	"jongubooks/pkg/store"
)

func main() {
	ctx, done := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	apiKey := os.Getenv("OPENAI_API_KEY")
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}

	var inf inference.Inferencer = inference.NewOpenAIInferencer(apiKey, model)
	textConfigured := apiKey != ""

	if geminiKey := os.Getenv("GEMINI_API_KEY"); geminiKey != "" {
		gemini, err := inference.NewGeminiInferencer(geminiKey, os.Getenv("GEMINI_MODEL"))
		if err != nil {
			log.Fatal("failed to initialize Gemini client", "error", err)
		}
		inf = gemini
		textConfigured = true
		log.Info("using Gemini for text generation")
	}

	// Images always go through OpenAI, so a Gemini-only deployment has text
	// generation but no image generation.
	painter := inference.NewOpenAIPainter(apiKey, os.Getenv("OPENAI_IMAGE_MODEL"))
	imageConfigured := apiKey != ""

	gw := gateway.New(inf, painter, textConfigured, imageConfigured, gateway.Options{
		MaxConcurrent: envInt("AI_MAX_CONCURRENT", 4),
		Timeout:       time.Duration(envInt("AI_TIMEOUT_SECONDS", 60)) * time.Second,
	})
	if !textConfigured {
		log.Warn("no text generation credential configured; generation endpoints will refuse")
	}
	if !imageConfigured {
		log.Warn("no OPENAI_API_KEY for image generation; image endpoints will refuse")
	}

	srv := server.NewServer(ctx, store.NewMemory(), gw)
	srv.Echo.Logger.SetLevel(gommonlog.INFO)

	addr := ":8080"
	if envAddr := os.Getenv("PORT"); envAddr != "" {
		addr = ":" + envAddr
	}

	finishedShutDown := make(chan struct{})
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown failed", "error", err)
		}
		done()
		close(finishedShutDown)
	}()

	if err := srv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server stopped", "error", err)
	}
	<-finishedShutDown
}

func envInt(name string, fallback int) int {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Warn("ignoring invalid env value", "name", name, "value", v)
		return fallback
	}
	return n
}
