package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"iona/internal/emit"
)

// Current schema version - increment when DiskPayload format changes.
const diskCacheSchemaVersion uint16 = 1

// Digest is a sha256 fingerprint of one declaration document.
type Digest [sha256.Size]byte

// Fingerprint hashes document bytes together with the cache schema, so a
// format bump invalidates everything at once.
func Fingerprint(content []byte) Digest {
	h := sha256.New()
	fmt.Fprintf(h, "schema:%d\n", diskCacheSchemaVersion)
	h.Write(content)
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// FingerprintFile hashes a file's contents. An unreadable file yields the
// schema-only digest, which never matches a stored unit.
func FingerprintFile(path string) Digest {
	content, err := os.ReadFile(path) // #nosec G304 -- path is provided by the caller
	if err != nil {
		return Fingerprint(nil)
	}
	return Fingerprint(content)
}

// DiskCache stores emitted units by input fingerprint. Emission is
// byte-for-byte deterministic, so a fingerprint hit can replay the cached
// text without recompiling. Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the serialized form of one cached unit.
type DiskPayload struct {
	Schema     uint16
	Provenance string
	Headers    []string
	Text       string
}

// OpenDiskCache initializes a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt initializes a disk cache rooted at dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(filepath.Join(dir, "units"), 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "units", hex.EncodeToString(key[:])+".msgpack")
}

// Load returns the cached unit for the fingerprint, if present and valid.
// Corrupt or stale entries read as misses.
func (c *DiskCache) Load(key Digest) (*emit.CompilationUnit, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		return nil, false
	}
	var payload DiskPayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return nil, false
	}
	if payload.Schema != diskCacheSchemaVersion {
		return nil, false
	}
	return &emit.CompilationUnit{
		Provenance: payload.Provenance,
		Text:       payload.Text,
		Headers:    payload.Headers,
	}, true
}

// Store writes the unit under the fingerprint. The write goes through a
// temporary file and rename, so readers never observe a partial entry.
func (c *DiskCache) Store(key Digest, unit *emit.CompilationUnit) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	payload := DiskPayload{
		Schema:     diskCacheSchemaVersion,
		Provenance: unit.Provenance,
		Headers:    unit.Headers,
		Text:       unit.Text,
	}
	data, err := msgpack.Marshal(&payload)
	if err != nil {
		return fmt.Errorf("cache: marshal unit: %w", err)
	}
	target := c.pathFor(key)
	tmp, err := os.CreateTemp(filepath.Dir(target), "unit-*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), target)
}
