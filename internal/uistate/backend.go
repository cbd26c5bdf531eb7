package uistate

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ziadkadry99/docshell/internal/db"
)

// MemoryBackend keeps state in process memory.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string]map[string][]byte
}

// NewMemoryBackend returns an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string]map[string][]byte)}
}

func (b *MemoryBackend) Load(_ context.Context, scope, key string) ([]byte, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.data[scope][key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (b *MemoryBackend) Save(_ context.Context, scope, key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.data[scope] == nil {
		b.data[scope] = make(map[string][]byte)
	}
	b.data[scope][key] = append([]byte(nil), value...)
	return nil
}

// FileBackend stores one JSON document per scope under a directory.
type FileBackend struct {
	dir string
	mu  sync.Mutex
}

// NewFileBackend returns a FileBackend rooted at dir, creating it if needed.
func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

func (b *FileBackend) path(scope string) (string, error) {
	if scope == "" || scope == "." || scope == ".." || strings.ContainsAny(scope, `/\`) {
		return "", fmt.Errorf("invalid scope %q", scope)
	}
	return filepath.Join(b.dir, scope+".json"), nil
}

func (b *FileBackend) read(scope string) (map[string]json.RawMessage, error) {
	p, err := b.path(scope)
	if err != nil {
		return nil, err
	}
	doc := make(map[string]json.RawMessage)
	data, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading state file: %w", err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing state file %s: %w", p, err)
	}
	return doc, nil
}

func (b *FileBackend) Load(_ context.Context, scope, key string) ([]byte, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	doc, err := b.read(scope)
	if err != nil {
		return nil, false, err
	}
	v, ok := doc[key]
	return v, ok, nil
}

func (b *FileBackend) Save(_ context.Context, scope, key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	doc, err := b.read(scope)
	if err != nil {
		return err
	}
	doc[key] = json.RawMessage(value)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state file: %w", err)
	}
	p, _ := b.path(scope)
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing state file: %w", err)
	}
	if err := os.Rename(tmp, p); err != nil {
		return fmt.Errorf("replacing state file: %w", err)
	}
	return nil
}

// SQLiteBackend stores state in the ui_state table.
type SQLiteBackend struct {
	db *db.DB
}

// NewSQLiteBackend returns a backend over an open database.
func NewSQLiteBackend(database *db.DB) *SQLiteBackend {
	return &SQLiteBackend{db: database}
}

func (b *SQLiteBackend) Load(ctx context.Context, scope, key string) ([]byte, bool, error) {
	var value string
	err := b.db.QueryRowContext(ctx,
		`SELECT value FROM ui_state WHERE scope = ? AND key = ?`, scope, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("querying ui_state: %w", err)
	}
	return []byte(value), true, nil
}

func (b *SQLiteBackend) Save(ctx context.Context, scope, key string, value []byte) error {
	_, err := b.db.ExecContext(ctx,
		`INSERT INTO ui_state (scope, key, value, updated_at) VALUES (?, ?, ?, datetime('now'))
		 ON CONFLICT(scope, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		scope, key, string(value),
	)
	if err != nil {
		return fmt.Errorf("upserting ui_state: %w", err)
	}
	return nil
}
