// Package asset loads externally built geometry bundles. A bundle is
// opaque: its size and digest are recorded, its contents are never parsed.
package asset

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/soypat/pumpsdf/internal/logger"
	"github.com/soypat/pumpsdf/part"
	"github.com/soypat/pumpsdf/scene"
)

// ErrAsset is wrapped by every load failure.
var ErrAsset = errors.New("asset")

// Bundle is a loaded asset file.
type Bundle struct {
	Path   string
	Size   int64
	Digest string // hex SHA-256
}

// Geometry returns the descriptor carried by nodes built from b.
func (b *Bundle) Geometry() *scene.AssetGeometry {
	return &scene.AssetGeometry{Path: b.Path, Size: b.Size, Digest: b.Digest}
}

// Appearance is forced onto every bundle regardless of its contents.
func (b *Bundle) Appearance() scene.Appearance { return part.AssetAppearance() }

// Node returns a placeholder node named name standing in for the bundle.
// It holds no solids, so it contributes nothing to meshes.
func (b *Bundle) Node(name string) *scene.PartNode {
	return &scene.PartNode{Name: name, Asset: b.Geometry()}
}

// Loader loads bundles, caching them per cleaned path. It is safe for
// concurrent use.
type Loader struct {
	log   *logger.Logger
	mu    sync.Mutex
	cache map[string]*Bundle
}

// NewLoader returns a Loader. log may be nil.
func NewLoader(log *logger.Logger) *Loader {
	return &Loader{log: logger.OrNop(log), cache: make(map[string]*Bundle)}
}

// Load returns the bundle at path, reading it on first use. A missing file
// yields an error matching both ErrAsset and fs.ErrNotExist.
func (l *Loader) Load(path string) (*Bundle, error) {
	key := filepath.Clean(path)
	l.mu.Lock()
	b, ok := l.cache[key]
	l.mu.Unlock()
	if ok {
		return b, nil
	}
	b, err := read(key)
	if err != nil {
		l.log.Warn("asset load failed", "path", key, "error", err)
		return nil, fmt.Errorf("%w %s: %w", ErrAsset, key, err)
	}
	l.log.Debug("asset loaded", "path", key, "size", b.Size, "digest", b.Digest)
	l.mu.Lock()
	l.cache[key] = b
	l.mu.Unlock()
	return b, nil
}

// Forget drops path from the cache so the next Load reads it again.
func (l *Loader) Forget(path string) {
	l.mu.Lock()
	delete(l.cache, filepath.Clean(path))
	l.mu.Unlock()
}

func read(path string) (*Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, errors.New("is a directory")
	}
	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, errors.New("empty file")
	}
	return &Bundle{Path: path, Size: n, Digest: hex.EncodeToString(h.Sum(nil))}, nil
}
