package testutil

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"sync"

	"github.com/dalemusser/waffle/pantry/storage"
)

// ErrInjected is returned by MemoryAssets when a failure has been injected.
var ErrInjected = errors.New("injected storage failure")

// MemoryAssets is an in-memory asset store for tests. Failures can be
// injected for Put and Delete, and every Delete call is recorded.
type MemoryAssets struct {
	mu        sync.Mutex
	objects   map[string][]byte
	types     map[string]string
	deleted   []string
	putErr    error
	deleteErr error
	putLimit  int // puts allowed before putErr applies; <0 means no limit
	puts      int
}

// NewMemoryAssets returns an empty store with no injected failures.
func NewMemoryAssets() *MemoryAssets {
	return &MemoryAssets{
		objects:  make(map[string][]byte),
		types:    make(map[string]string),
		putLimit: -1,
	}
}

// FailPuts makes every following Put return err.
func (m *MemoryAssets) FailPuts(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putErr = err
	m.putLimit = m.puts
}

// FailPutsAfter lets n more Puts succeed, then fails the rest with err.
func (m *MemoryAssets) FailPutsAfter(n int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putErr = err
	m.putLimit = m.puts + n
}

// FailDeletes makes every following Delete return err (after recording it).
func (m *MemoryAssets) FailDeletes(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteErr = err
}

// Put stores the object.
func (m *MemoryAssets) Put(ctx context.Context, path string, r io.Reader, opts *storage.PutOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil && m.putLimit >= 0 && m.puts >= m.putLimit {
		return m.putErr
	}
	m.puts++
	m.objects[path] = data
	if opts != nil {
		m.types[path] = opts.ContentType
	}
	return nil
}

// Delete removes the object and records the call.
func (m *MemoryAssets) Delete(ctx context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, path)
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.objects, path)
	delete(m.types, path)
	return nil
}

// URL returns the public URL of path.
func (m *MemoryAssets) URL(path string) string {
	return "/files/" + path
}

// Has reports whether path is stored.
func (m *MemoryAssets) Has(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[path]
	return ok
}

// Bytes returns the stored content of path.
func (m *MemoryAssets) Bytes(path string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return bytes.Clone(m.objects[path])
}

// ContentType returns the content type recorded for path.
func (m *MemoryAssets) ContentType(path string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.types[path]
}

// Paths returns every stored path, sorted.
func (m *MemoryAssets) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.objects))
	for p := range m.objects {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Deleted returns every path passed to Delete, in call order.
func (m *MemoryAssets) Deleted() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deleted...)
}

// Minimal payloads whose signatures sniff as the named media types.
var (
	pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")
	mp4Header = []byte("\x00\x00\x00\x18ftypisom\x00\x00\x02\x00isomiso2\x00\x00\x00\x08free")
)

// PNG returns bytes that sniff as image/png.
func PNG() []byte {
	return bytes.Clone(pngHeader)
}

// MP4 returns bytes that sniff as video/mp4.
func MP4() []byte {
	return bytes.Clone(mp4Header)
}
