package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"feedreader/internal/application"
	"feedreader/internal/infrastructure/fetch"
	"feedreader/internal/infrastructure/opml"
	"feedreader/internal/infrastructure/rss"
	"feedreader/internal/infrastructure/storage"
	"feedreader/internal/interfaces/config"
)

func main() {
	fmt.Println("Starting feed reader...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	document := opml.DefaultDocument
	if cfg.OPMLPath != "" {
		data, err := os.ReadFile(cfg.OPMLPath)
		if err != nil {
			log.Fatalf("Failed to read subscription list %s: %v", cfg.OPMLPath, err)
		}
		document = string(data)
	}
	feeds := opml.Parse(document)
	log.Printf("Loaded %d feed subscriptions", len(feeds))

	stateRepo, err := storage.NewSQLiteStateRepository(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open state store:", err)
	}
	defer func() {
		if closer, ok := stateRepo.(io.Closer); ok {
			closer.Close()
		}
	}()

	orchestrator := fetch.NewOrchestrator(fetch.Config{
		RelayURL:   cfg.RelayURL,
		BatchSize:  cfg.BatchSize,
		BatchDelay: cfg.GetBatchDelay(),
		Timeout:    cfg.GetFetchTimeout(),
	}, rss.NewNormalizer())

	session := application.NewReaderSession(ctx, feeds, orchestrator, stateRepo)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Println("Shutdown signal received")
		cancel()
	}()

	interval := cfg.GetRefreshInterval()
	log.Printf("Refresh interval: %v", interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	refresh(ctx, session)

	for {
		select {
		case <-ctx.Done():
			log.Println("Shutting down...")
			return
		case <-ticker.C:
			refresh(ctx, session)
		}
	}
}

func refresh(ctx context.Context, session *application.ReaderSession) {
	log.Println("Refreshing feeds...")
	if err := session.Refresh(ctx); err != nil {
		log.Printf("Refresh error: %v", err)
		return
	}

	log.Printf("Loaded %d articles, %d unread, %d starred",
		len(session.FilteredArticles()), session.TotalUnread(), session.TotalStarred())
	for _, feed := range session.Feeds() {
		if feed.UnreadCount > 0 {
			log.Printf("  %s: %d unread", feed.Title, feed.UnreadCount)
		}
	}
}
