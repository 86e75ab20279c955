package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"feedreader/internal/domain/entity"
	"feedreader/internal/domain/repository"

	_ "modernc.org/sqlite"
)

const (
	keyReadArticles    = "read_articles"
	keyStarredArticles = "starred_articles"
	keyPreferences     = "preferences"
)

// sqliteState persists read/starred ids and preferences as three JSON
// values in a key-value table. There is no in-process cache: every call
// re-reads the backing store, so independent call sites need no extra
// synchronization layer. Storage failures are logged and swallowed;
// reads degrade to empty sets or default preferences.
type sqliteState struct {
	db *sql.DB
}

func NewSQLiteStateRepository(dbPath string) (repository.StateRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to sqlite database: %w", err)
	}

	state := &sqliteState{db: db}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := state.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return state, nil
}

func (s *sqliteState) initSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS app_state (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to execute schema query: %w", err)
	}
	return nil
}

func (s *sqliteState) ReadIDs(ctx context.Context) map[string]struct{} {
	return s.loadIDSet(ctx, keyReadArticles)
}

func (s *sqliteState) MarkRead(ctx context.Context, articleID string) {
	ids := s.loadIDSet(ctx, keyReadArticles)
	ids[articleID] = struct{}{}
	s.saveIDSet(ctx, keyReadArticles, ids)
}

func (s *sqliteState) MarkAllRead(ctx context.Context, articleIDs []string) {
	ids := s.loadIDSet(ctx, keyReadArticles)
	for _, id := range articleIDs {
		ids[id] = struct{}{}
	}
	s.saveIDSet(ctx, keyReadArticles, ids)
}

func (s *sqliteState) MarkUnread(ctx context.Context, articleID string) {
	ids := s.loadIDSet(ctx, keyReadArticles)
	delete(ids, articleID)
	s.saveIDSet(ctx, keyReadArticles, ids)
}

func (s *sqliteState) StarredIDs(ctx context.Context) map[string]struct{} {
	return s.loadIDSet(ctx, keyStarredArticles)
}

func (s *sqliteState) ToggleStarred(ctx context.Context, articleID string) bool {
	ids := s.loadIDSet(ctx, keyStarredArticles)
	_, starred := ids[articleID]
	if starred {
		delete(ids, articleID)
	} else {
		ids[articleID] = struct{}{}
	}
	s.saveIDSet(ctx, keyStarredArticles, ids)
	return !starred
}

func (s *sqliteState) Preferences(ctx context.Context) entity.Preferences {
	prefs := entity.DefaultPreferences()

	value, err := s.loadValue(ctx, keyPreferences)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Printf("Failed to load preferences: %v", err)
		}
		return prefs
	}

	if err := json.Unmarshal([]byte(value), &prefs); err != nil {
		log.Printf("Failed to decode preferences: %v", err)
		return entity.DefaultPreferences()
	}
	return prefs
}

func (s *sqliteState) SavePreferences(ctx context.Context, patch entity.PreferencesPatch) {
	merged := s.Preferences(ctx).Merge(patch)

	data, err := json.Marshal(merged)
	if err != nil {
		log.Printf("Failed to encode preferences: %v", err)
		return
	}
	s.saveValue(ctx, keyPreferences, string(data))
}

func (s *sqliteState) loadIDSet(ctx context.Context, key string) map[string]struct{} {
	ids := map[string]struct{}{}

	value, err := s.loadValue(ctx, key)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Printf("Failed to load %s: %v", key, err)
		}
		return ids
	}

	var list []string
	if err := json.Unmarshal([]byte(value), &list); err != nil {
		log.Printf("Failed to decode %s: %v", key, err)
		return ids
	}
	for _, id := range list {
		ids[id] = struct{}{}
	}
	return ids
}

func (s *sqliteState) saveIDSet(ctx context.Context, key string, ids map[string]struct{}) {
	list := make([]string, 0, len(ids))
	for id := range ids {
		list = append(list, id)
	}

	data, err := json.Marshal(list)
	if err != nil {
		log.Printf("Failed to encode %s: %v", key, err)
		return
	}
	s.saveValue(ctx, key, string(data))
}

func (s *sqliteState) loadValue(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(
		ctx,
		"SELECT value FROM app_state WHERE key = ?",
		key,
	).Scan(&value)
	return value, err
}

// saveValue swallows write failures: the caller proceeds with its
// in-memory state, durability is simply not guaranteed for this write.
func (s *sqliteState) saveValue(ctx context.Context, key, value string) {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO app_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key,
		value,
	)
	if err != nil {
		log.Printf("Failed to save %s: %v", key, err)
	}
}

func (s *sqliteState) Close() error {
	return s.db.Close()
}
