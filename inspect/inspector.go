// Package inspect dumps the playground state as JSON so scripts and tests
// can check an alignment without reading the rendered screen.
package inspect

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Introspectable is implemented by UI components that can report their state.
type Introspectable interface {
	// InspectNode returns a structured representation of this component.
	InspectNode() *Node
}

const (
	// EnvVar enables snapshot writing when set to "1".
	EnvVar = "ANCHOR_INSPECT"
	// FileName is the snapshot file, written to the temp directory.
	FileName = "anchor-inspect.json"
)

// Writer writes snapshots to one file and skips snapshots that differ from
// the previous one only in their timestamp. The playground takes a snapshot
// after every update, most of which change nothing.
type Writer struct {
	mu   sync.Mutex
	path string
	last []byte
}

// NewWriter returns a writer for path. An empty path disables it.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Enabled reports whether the writer has somewhere to write.
func (w *Writer) Enabled() bool {
	return w != nil && w.path != ""
}

// Path is the output file, or "" when disabled.
func (w *Writer) Path() string {
	if w == nil {
		return ""
	}
	return w.path
}

// Write stores s. It returns written=false when disabled or when nothing
// but the timestamp changed since the last write.
func (w *Writer) Write(s *Snapshot) (written bool, err error) {
	if !w.Enabled() {
		return false, nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	key, err := stateKey(s)
	if err != nil {
		return false, err
	}
	if w.last != nil && bytes.Equal(key, w.last) {
		return false, nil
	}
	if err := WriteSnapshotToPath(s, w.path); err != nil {
		return false, err
	}
	w.last = key
	return true, nil
}

func stateKey(s *Snapshot) ([]byte, error) {
	c := *s
	c.Timestamp = time.Time{}
	data, err := json.Marshal(&c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return data, nil
}

var (
	envWriter     *Writer
	envWriterOnce sync.Once
)

// DefaultWriter is the writer configured from ANCHOR_INSPECT. It is disabled
// unless the variable is "1".
func DefaultWriter() *Writer {
	envWriterOnce.Do(func() {
		path := ""
		if os.Getenv(EnvVar) == "1" {
			path = filepath.Join(os.TempDir(), FileName)
		}
		envWriter = NewWriter(path)
	})
	return envWriter
}

// IsEnabled reports whether ANCHOR_INSPECT turned inspection on.
func IsEnabled() bool {
	return DefaultWriter().Enabled()
}

// WriteSnapshotToPath writes a snapshot to a specific path.
func WriteSnapshotToPath(snapshot *Snapshot, path string) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot reads a snapshot written by WriteSnapshotToPath.
func ReadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}
	return &s, nil
}
