// Package artifact manages the temporary files the pipeline spools uploads
// into. Every artifact is deleted when its processing attempt finishes,
// success or failure; a periodic sweep purges anything a crash left behind.
package artifact

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long an orphaned artifact may live before the sweeper
// removes it.
const DefaultTTL = time.Hour

// Manager spools upload bytes into a dedicated temp directory and tracks
// their lifecycle.
type Manager struct {
	dir    string
	ttl    time.Duration
	logger *slog.Logger
}

// NewManager creates the artifact directory if needed. An empty dir falls
// back to a subdirectory of the system temp dir; a zero ttl falls back to
// DefaultTTL.
func NewManager(dir string, ttl time.Duration, logger *slog.Logger) (*Manager, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "finance-ingest")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating artifact dir: %w", err)
	}
	return &Manager{dir: dir, ttl: ttl, logger: logger}, nil
}

// Artifact is one spooled upload. Close removes the file and is safe to call
// more than once, so callers can both defer it and close early.
type Artifact struct {
	ID   uuid.UUID
	Path string
	Name string // sanitized original filename
	Size int64

	once   sync.Once
	closeE error
	logger *slog.Logger
}

// Close deletes the artifact from disk. The first call wins; later calls
// return the first result.
func (a *Artifact) Close() error {
	a.once.Do(func() {
		if err := os.Remove(a.Path); err != nil && !os.IsNotExist(err) {
			a.closeE = fmt.Errorf("removing artifact: %w", err)
			return
		}
		a.logger.Debug("artifact removed", slog.String("path", a.Path))
	})
	return a.closeE
}

// Spool writes upload bytes to a uniquely named file in the artifact
// directory. The unique prefix means concurrent uploads of the same filename
// never collide.
func (m *Manager) Spool(data []byte, filename string) (*Artifact, error) {
	id := uuid.New()
	name := sanitizeFilename(filename)
	path := filepath.Join(m.dir, id.String()+"-"+name)

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return nil, fmt.Errorf("spooling artifact: %w", err)
	}

	m.logger.Debug("artifact spooled",
		slog.String("path", path),
		slog.Int("bytes", len(data)),
	)
	return &Artifact{
		ID:     id,
		Path:   path,
		Name:   name,
		Size:   int64(len(data)),
		logger: m.logger,
	}, nil
}

// Sweep removes artifacts older than the TTL. It is the crash safety net:
// normal processing deletes its own artifact via Close.
func (m *Manager) Sweep(ctx context.Context) error {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return fmt.Errorf("reading artifact dir: %w", err)
	}

	cutoff := time.Now().Add(-m.ttl)
	removed := 0
	for _, entry := range entries {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(m.dir, entry.Name())
		if err := os.Remove(path); err != nil {
			m.logger.Warn("sweep failed to remove artifact",
				slog.String("path", path),
				slog.Any("error", err),
			)
			continue
		}
		removed++
	}

	if removed > 0 {
		m.logger.Info("swept orphaned artifacts", slog.Int("removed", removed))
	}
	return nil
}

// Dir returns the artifact directory, mainly for tests and diagnostics.
func (m *Manager) Dir() string { return m.dir }

// sanitizeFilename keeps only safe characters so an upload name can never
// escape the artifact directory.
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "upload"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
