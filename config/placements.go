package config

import (
	"anchor/geom"
	"anchor/log"
	"anchor/placement"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/fsnotify/fsnotify"
)

// reloadDebounce groups the burst of events editors produce on save.
const reloadDebounce = 50 * time.Millisecond

// LoadPlacements reads a placement table from a .json or .toml file. Each
// top-level key is a placement name. Rules may use `points = [popup, target]`
// instead of popupAnchor/targetAnchor.
func LoadPlacements(path string) (placement.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read placements file: %w", err)
	}

	var table placement.Table
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		table, err = decodeJSONPlacements(data)
	case ".toml":
		table, err = decodeTOMLPlacements(data)
	default:
		return nil, fmt.Errorf("unsupported placements file type %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse placements file %s: %w", path, err)
	}

	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("invalid placements file %s: %w", path, err)
	}
	return table, nil
}

func decodeJSONPlacements(data []byte) (placement.Table, error) {
	var table placement.Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, err
	}
	return table, nil
}

func decodeTOMLPlacements(data []byte) (placement.Table, error) {
	var table placement.Table
	if err := toml.Unmarshal(data, &table); err != nil {
		return nil, err
	}

	// The compact form is decoded separately; toml has no hook for it.
	var points map[string]struct {
		Points []geom.Point `toml:"points"`
	}
	if err := toml.Unmarshal(data, &points); err != nil {
		return nil, err
	}
	for name, p := range points {
		if len(p.Points) == 0 {
			continue
		}
		if len(p.Points) != 2 {
			return nil, fmt.Errorf("placement %q: points must have two entries, got %d", name, len(p.Points))
		}
		r := table[name]
		r.PopupAnchor, r.TargetAnchor = p.Points[0], p.Points[1]
		table[name] = r
	}
	return table, nil
}

// LoadTable returns the built-in placements merged with the configured
// placements file, if any. Errors are logged and the built-ins returned.
func (c *Config) LoadTable() placement.Table {
	builtins := placement.Builtins()
	path, err := c.PlacementsPath()
	if err != nil {
		log.ErrorLog.Printf("failed to resolve placements file: %v", err)
		return builtins
	}
	if path == "" {
		return builtins
	}

	table, err := LoadPlacements(path)
	if err != nil {
		log.WarningLog.Printf("using built-in placements: %v", err)
		return builtins
	}
	return builtins.Merge(table)
}

// PlacementWatcher reloads a placements file when it changes on disk.
type PlacementWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onChange func(placement.Table, error)
	done     chan struct{}
}

// WatchPlacements watches path and calls onChange with the reloaded table,
// or the load error, after every change. onChange runs on the watcher's
// goroutine; UI callers should hand the table over to their own thread.
func WatchPlacements(path string, onChange func(placement.Table, error)) (*PlacementWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	// Watch the directory: editors replace files by renaming over them,
	// which drops a watch on the file itself.
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	pw := &PlacementWatcher{
		path:     filepath.Clean(path),
		watcher:  w,
		onChange: onChange,
		done:     make(chan struct{}),
	}
	go pw.run()
	return pw, nil
}

func (pw *PlacementWatcher) run() {
	defer close(pw.done)

	var pending <-chan time.Time
	for {
		select {
		case event, ok := <-pw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != pw.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			log.Debug("placements file event: %s %s", event.Op, event.Name)
			pending = time.After(reloadDebounce)
		case <-pending:
			pending = nil
			table, err := LoadPlacements(pw.path)
			pw.onChange(table, err)
		case err, ok := <-pw.watcher.Errors:
			if !ok {
				return
			}
			log.WarningLog.Printf("placements watcher error: %v", err)
		}
	}
}

// Close stops watching and waits for the watcher goroutine to exit.
func (pw *PlacementWatcher) Close() error {
	err := pw.watcher.Close()
	<-pw.done
	return err
}
