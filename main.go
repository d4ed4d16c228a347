package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/example/wordquest/internal/achievements"
	"github.com/example/wordquest/internal/bot"
	"github.com/example/wordquest/internal/content"
	"github.com/example/wordquest/internal/scheduler"
	"github.com/example/wordquest/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Progress survives in memory for the session even when the durable
	// store is unavailable.
	var store storage.Store
	durable, err := storage.OpenSQL()
	if err != nil {
		log.Printf("Durable storage unavailable, progress will not survive restarts: %v", err)
		store = storage.NewMemoryStore()
	} else {
		store = storage.NewFallback(durable)
	}
	defer store.Close()

	words := content.StarterVocabulary()
	if path := os.Getenv("VOCAB_FILE"); path != "" {
		imported, result, err := content.ImportWords(content.DefaultImportConfig(path))
		if err != nil {
			log.Fatalf("Failed to import vocabulary from %s: %v", path, err)
		}
		log.Printf("Imported %d words from %s (%d skipped)", result.Imported, path, result.Skipped)
		words = append(words, imported...)
	}

	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN environment variable is not set")
	}

	engine := achievements.NewEngine(content.DefaultAchievements())

	b, err := bot.NewBot(token, store, engine, content.Stories(), words, bot.DefaultConfig())
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	reminders := scheduler.New(b, b)
	reminders.Start()

	done := make(chan struct{})
	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v", sig)
		cancel()
		reminders.Stop()
		b.Stop()
		close(done)
	}()

	log.Println("WordQuest started. Press Ctrl+C to stop.")
	go func() {
		if err := b.Start(ctx); err != nil && err != context.Canceled {
			log.Printf("Bot error: %v", err)
		}
	}()

	<-done
	log.Println("WordQuest stopped")
}
