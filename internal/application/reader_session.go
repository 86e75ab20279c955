package application

import (
	"context"
	"log"
	"strings"
	"sync"

	"feedreader/internal/domain/entity"
	"feedreader/internal/domain/repository"
)

type ViewMode string

const (
	ViewModeAll     ViewMode = "all"
	ViewModeUnread  ViewMode = "unread"
	ViewModeStarred ViewMode = "starred"
)

type Progress struct {
	Current int
	Total   int
}

// ReaderSession composes the subscription list, the fetch pipeline, and
// the state store into the read model consumed by presentation. It holds
// the read/starred sets as in-memory snapshots loaded once at startup and
// updated in lock-step with state-store writes; snapshots are replaced
// wholesale, never mutated in place across callers.
type ReaderSession struct {
	mu        sync.Mutex
	feedRepo  repository.FeedRepository
	stateRepo repository.StateRepository

	feeds    []*entity.Feed
	articles []*entity.Article

	readIDs    map[string]struct{}
	starredIDs map[string]struct{}

	selectedFeedID  string
	selectedArticle *entity.Article
	viewMode        ViewMode
	searchQuery     string

	loading  bool
	progress Progress
	lastErr  error
}

func NewReaderSession(ctx context.Context, feeds []*entity.Feed, feedRepo repository.FeedRepository, stateRepo repository.StateRepository) *ReaderSession {
	return &ReaderSession{
		feedRepo:   feedRepo,
		stateRepo:  stateRepo,
		feeds:      feeds,
		articles:   []*entity.Article{},
		readIDs:    stateRepo.ReadIDs(ctx),
		starredIDs: stateRepo.StarredIDs(ctx),
		viewMode:   ViewModeAll,
	}
}

// Refresh fetches all feeds and atomically replaces the article
// collection. A refresh failure keeps the previous collection in place.
// While a refresh is in flight further calls return immediately; the
// loading flag is the single-in-flight guard.
func (s *ReaderSession) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.loading || len(s.feeds) == 0 {
		s.mu.Unlock()
		return nil
	}
	s.loading = true
	s.lastErr = nil
	s.progress = Progress{Current: 0, Total: len(s.feeds)}
	feeds := s.feeds
	s.mu.Unlock()

	articles, err := s.feedRepo.RefreshAll(ctx, feeds, func(current, total int) {
		s.mu.Lock()
		s.progress = Progress{Current: current, Total: total}
		s.mu.Unlock()
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		log.Printf("Refresh failed: %v", err)
		s.lastErr = err
		return err
	}

	// The persisted read set is authoritative; the transient IsRead flag
	// is re-derived on every refresh.
	readIDs := s.stateRepo.ReadIDs(ctx)
	for _, article := range articles {
		_, article.IsRead = readIDs[article.ID]
	}

	s.articles = articles
	s.readIDs = readIDs
	s.applyUnreadCounts(recomputeUnreadCounts(articles, readIDs))
	return nil
}

// SelectArticle makes the article the active selection and, if it is
// unread, marks it read as a side effect: reading is viewing.
func (s *ReaderSession) SelectArticle(ctx context.Context, articleID string) *entity.Article {
	s.mu.Lock()
	article := s.findArticle(articleID)
	s.selectedArticle = article
	s.mu.Unlock()

	if article != nil && !article.IsRead {
		s.MarkRead(ctx, articleID)
	}
	return article
}

// MarkRead persists the read transition and keeps the in-memory
// projection consistent: read-set snapshot, article flag, feed counter.
func (s *ReaderSession) MarkRead(ctx context.Context, articleID string) {
	s.stateRepo.MarkRead(ctx, articleID)

	s.mu.Lock()
	defer s.mu.Unlock()

	readIDs := cloneSet(s.readIDs)
	readIDs[articleID] = struct{}{}
	s.readIDs = readIDs

	article := s.findArticle(articleID)
	if article == nil {
		return
	}
	article.IsRead = true

	for _, feed := range s.feeds {
		if feed.ID == article.FeedID && feed.UnreadCount > 0 {
			feed.UnreadCount--
		}
	}
}

// MarkUnread reverts a read transition for a single article.
func (s *ReaderSession) MarkUnread(ctx context.Context, articleID string) {
	s.stateRepo.MarkUnread(ctx, articleID)

	s.mu.Lock()
	defer s.mu.Unlock()

	readIDs := cloneSet(s.readIDs)
	delete(readIDs, articleID)
	s.readIDs = readIDs

	article := s.findArticle(articleID)
	if article == nil {
		return
	}
	article.IsRead = false

	for _, feed := range s.feeds {
		if feed.ID == article.FeedID {
			feed.UnreadCount++
		}
	}
}

// MarkAllRead marks every currently visible unread article read in one
// persisted write. The operation is scoped to the present view: unread
// counts are zeroed for the selected feed when one is active, otherwise
// for all feeds.
func (s *ReaderSession) MarkAllRead(ctx context.Context) {
	s.mu.Lock()
	var ids []string
	for _, article := range s.filtered() {
		if !article.IsRead {
			ids = append(ids, article.ID)
		}
	}
	selectedFeedID := s.selectedFeedID
	s.mu.Unlock()

	s.stateRepo.MarkAllRead(ctx, ids)

	s.mu.Lock()
	defer s.mu.Unlock()

	readIDs := cloneSet(s.readIDs)
	for _, id := range ids {
		readIDs[id] = struct{}{}
	}
	s.readIDs = readIDs

	marked := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		marked[id] = struct{}{}
	}
	for _, article := range s.articles {
		if _, ok := marked[article.ID]; ok {
			article.IsRead = true
		}
	}

	for _, feed := range s.feeds {
		if selectedFeedID == "" || feed.ID == selectedFeedID {
			feed.UnreadCount = 0
		}
	}
}

// ToggleStarred flips an article's starred state and returns the new one.
func (s *ReaderSession) ToggleStarred(ctx context.Context, articleID string) bool {
	starred := s.stateRepo.ToggleStarred(ctx, articleID)

	s.mu.Lock()
	defer s.mu.Unlock()

	starredIDs := cloneSet(s.starredIDs)
	if starred {
		starredIDs[articleID] = struct{}{}
	} else {
		delete(starredIDs, articleID)
	}
	s.starredIDs = starredIDs
	return starred
}

func (s *ReaderSession) SetSelectedFeed(feedID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedFeedID = feedID
}

func (s *ReaderSession) SetViewMode(mode ViewMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewMode = mode
}

func (s *ReaderSession) SetSearchQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchQuery = query
}

// FilteredArticles narrows the article collection by selected feed, view
// mode, and free-text query, in that order. The predicates are
// independent, so the order does not affect the result.
func (s *ReaderSession) FilteredArticles() []*entity.Article {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filtered()
}

func (s *ReaderSession) filtered() []*entity.Article {
	result := s.articles

	if s.selectedFeedID != "" {
		result = filter(result, func(a *entity.Article) bool {
			return a.FeedID == s.selectedFeedID
		})
	}

	switch s.viewMode {
	case ViewModeUnread:
		result = filter(result, func(a *entity.Article) bool {
			_, read := s.readIDs[a.ID]
			return !read
		})
	case ViewModeStarred:
		result = filter(result, func(a *entity.Article) bool {
			_, starred := s.starredIDs[a.ID]
			return starred
		})
	}

	if query := strings.TrimSpace(s.searchQuery); query != "" {
		query = strings.ToLower(query)
		result = filter(result, func(a *entity.Article) bool {
			return strings.Contains(strings.ToLower(a.Title), query) ||
				strings.Contains(strings.ToLower(a.Excerpt), query) ||
				strings.Contains(strings.ToLower(a.FeedTitle), query)
		})
	}

	return result
}

func (s *ReaderSession) Feeds() []*entity.Feed {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feeds
}

func (s *ReaderSession) SelectedArticle() *entity.Article {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedArticle
}

func (s *ReaderSession) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *ReaderSession) LoadingProgress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

func (s *ReaderSession) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// TotalUnread counts loaded articles absent from the read set.
func (s *ReaderSession) TotalUnread() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, article := range s.articles {
		if _, read := s.readIDs[article.ID]; !read {
			count++
		}
	}
	return count
}

// TotalStarred is the size of the starred set, not scoped to loaded
// articles: a starred item stays counted even when the current fetch
// window no longer contains it.
func (s *ReaderSession) TotalStarred() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.starredIDs)
}

func (s *ReaderSession) findArticle(articleID string) *entity.Article {
	for _, article := range s.articles {
		if article.ID == articleID {
			return article
		}
	}
	return nil
}

func (s *ReaderSession) applyUnreadCounts(counts map[string]int) {
	for _, feed := range s.feeds {
		feed.UnreadCount = counts[feed.ID]
	}
}

// recomputeUnreadCounts derives per-feed unread counts from scratch.
// The counter on Feed is a cache of this computation, never a source
// of truth.
func recomputeUnreadCounts(articles []*entity.Article, readIDs map[string]struct{}) map[string]int {
	counts := map[string]int{}
	for _, article := range articles {
		if _, read := readIDs[article.ID]; !read {
			counts[article.FeedID]++
		}
	}
	return counts
}

func cloneSet(set map[string]struct{}) map[string]struct{} {
	clone := make(map[string]struct{}, len(set))
	for id := range set {
		clone[id] = struct{}{}
	}
	return clone
}

func filter(articles []*entity.Article, keep func(*entity.Article) bool) []*entity.Article {
	result := []*entity.Article{}
	for _, article := range articles {
		if keep(article) {
			result = append(result, article)
		}
	}
	return result
}
