package fetch

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"

	"feedreader/internal/domain/entity"
	"feedreader/internal/domain/repository"
	"feedreader/internal/infrastructure/rss"
)

const acceptHeader = "application/rss+xml, application/atom+xml, application/xml, text/xml"

type Config struct {
	// RelayURL is the intermediary endpoint; the feed URL is appended as
	// a percent-encoded `url` query parameter.
	RelayURL   string
	BatchSize  int
	BatchDelay time.Duration
	Timeout    time.Duration
}

// Orchestrator retrieves feed payloads in bounded concurrent batches.
// Batching plus the inter-batch pause is the only admission control
// against the shared relay.
type Orchestrator struct {
	client     *http.Client
	normalizer *rss.Normalizer
	relayURL   string
	batchSize  int
	batchDelay time.Duration
}

func NewOrchestrator(cfg Config, normalizer *rss.Normalizer) *Orchestrator {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 3
	}
	batchDelay := cfg.BatchDelay
	if batchDelay <= 0 {
		batchDelay = 300 * time.Millisecond
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &Orchestrator{
		client:     &http.Client{Timeout: timeout},
		normalizer: normalizer,
		relayURL:   cfg.RelayURL,
		batchSize:  batchSize,
		batchDelay: batchDelay,
	}
}

// RefreshAll fetches every feed in batches, reports progress after each
// batch, and returns the merged article sequence sorted newest first.
// A single feed's failure contributes an empty article list and never
// aborts sibling fetches.
func (o *Orchestrator) RefreshAll(ctx context.Context, feeds []*entity.Feed, onProgress repository.ProgressFunc) ([]*entity.Article, error) {
	total := len(feeds)
	allArticles := []*entity.Article{}

	for start := 0; start < total; start += o.batchSize {
		end := start + o.batchSize
		if end > total {
			end = total
		}
		batch := feeds[start:end]

		results := make([][]*entity.Article, len(batch))
		var wg sync.WaitGroup
		for i, feed := range batch {
			wg.Add(1)
			go func(i int, feed *entity.Feed) {
				defer wg.Done()
				results[i] = o.fetchFeed(ctx, feed)
			}(i, feed)
		}
		wg.Wait()

		for _, articles := range results {
			allArticles = append(allArticles, articles...)
		}

		if onProgress != nil {
			onProgress(end, total)
		}

		if end < total {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(o.batchDelay):
			}
		}
	}

	sort.SliceStable(allArticles, func(i, j int) bool {
		return allArticles[i].PublishedAt.After(allArticles[j].PublishedAt)
	})
	return allArticles, nil
}

// fetchFeed retrieves and normalizes one feed. All failure modes degrade
// to an empty article list at this boundary.
func (o *Orchestrator) fetchFeed(ctx context.Context, feed *entity.Feed) []*entity.Article {
	payload, err := o.fetchPayload(ctx, feed.FeedURL)
	if err != nil {
		log.Printf("Failed to fetch feed [%s]: %v", feed.Title, err)
		return []*entity.Article{}
	}
	return o.normalizer.Normalize(payload, feed)
}

func (o *Orchestrator) fetchPayload(ctx context.Context, feedURL string) (string, error) {
	requestURL := o.relayURL + "?url=" + url.QueryEscape(feedURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("HTTP status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	return string(body), nil
}
