package log

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// PassKind says what happened when a watch loop was asked to align.
type PassKind int

const (
	// PassComputed ran the engine.
	PassComputed PassKind = iota
	// PassCached found the inputs unchanged and kept the last result.
	PassCached
	// PassGated was skipped because the popup was in motion.
	PassGated
)

// FrameBudget is the view render time above which a slow-frame warning is
// written.
const FrameBudget = 16 * time.Millisecond

// viewWindow is how many recent view renders the profiler keeps.
const viewWindow = 100

// PassMetrics counts alignment passes for one popup.
type PassMetrics struct {
	Popup    string
	Computed int64
	Cached   int64
	Gated    int64
	Flipped  int64
	Total    time.Duration
	Max      time.Duration
}

// Profiler collects alignment pass counts and view render timings while
// debug mode is on. It is a no-op otherwise.
type Profiler struct {
	mu     sync.Mutex
	popups map[string]*PassMetrics
	views  []time.Duration
	slow   *Every
}

var profiler = newProfiler()

func newProfiler() *Profiler {
	return &Profiler{
		popups: make(map[string]*PassMetrics),
		views:  make([]time.Duration, 0, viewWindow),
		slow:   NewEvery(time.Second),
	}
}

// GetProfiler returns the process-wide profiler.
func GetProfiler() *Profiler {
	return profiler
}

// RecordPass records one request to align popup. elapsed and flipped only
// matter for computed passes.
func (p *Profiler) RecordPass(popup string, kind PassKind, elapsed time.Duration, flipped bool) {
	if !DebugEnabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	m, ok := p.popups[popup]
	if !ok {
		m = &PassMetrics{Popup: popup}
		p.popups[popup] = m
	}
	switch kind {
	case PassCached:
		m.Cached++
	case PassGated:
		m.Gated++
	default:
		m.Computed++
		m.Total += elapsed
		if elapsed > m.Max {
			m.Max = elapsed
		}
		if flipped {
			m.Flipped++
		}
	}
}

// TimeView starts timing a view render. Call the returned func when the
// render is done.
func (p *Profiler) TimeView() func() {
	if !DebugEnabled {
		return func() {}
	}
	start := time.Now()
	return func() {
		p.recordView(time.Since(start))
	}
}

func (p *Profiler) recordView(elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.views) >= viewWindow {
		p.views = p.views[1:]
	}
	p.views = append(p.views, elapsed)

	if elapsed > FrameBudget && p.slow.ShouldLog() {
		debugf("[PERF] ", "slow view render: %v", elapsed)
	}
}

// Passes returns a copy of the metrics for popup.
func (p *Profiler) Passes(popup string) (PassMetrics, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	m, ok := p.popups[popup]
	if !ok {
		return PassMetrics{}, false
	}
	return *m, true
}

// Stats formats everything collected so far.
func (p *Profiler) Stats() string {
	if !DebugEnabled {
		return ""
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	var sb strings.Builder
	sb.WriteString("\n=== Alignment profile ===\n")

	names := make([]string, 0, len(p.popups))
	for name := range p.popups {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		m := p.popups[name]
		var avg time.Duration
		if m.Computed > 0 {
			avg = m.Total / time.Duration(m.Computed)
		}
		fmt.Fprintf(&sb, "  %s: computed=%d cached=%d gated=%d flipped=%d avg=%v max=%v\n",
			m.Popup, m.Computed, m.Cached, m.Gated, m.Flipped, avg, m.Max)
	}

	if len(p.views) > 0 {
		var sum, worst time.Duration
		slow := 0
		for _, d := range p.views {
			sum += d
			worst = max(worst, d)
			if d > FrameBudget {
				slow++
			}
		}
		fmt.Fprintf(&sb, "Last %d views: avg=%v max=%v over budget=%d\n",
			len(p.views), sum/time.Duration(len(p.views)), worst, slow)
	}
	return sb.String()
}

// LogStats writes Stats to the debug log.
func (p *Profiler) LogStats() {
	if s := p.Stats(); s != "" {
		debugf("", "%s", s)
	}
}

// Reset clears all collected data.
func (p *Profiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.popups = make(map[string]*PassMetrics)
	p.views = p.views[:0]
	p.slow = NewEvery(time.Second)
}
