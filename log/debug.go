// Package log provides the file loggers and an env-gated debug mode with
// alignment tracing and pass profiling.
// Enable debug mode by setting ANCHOR_DEBUG=1.
package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

var (
	DebugEnabled bool
	DebugLog     *log.Logger
	debugLogFile *os.File
)

var debugLogFileName = filepath.Join(os.TempDir(), "anchor-debug.log")

// InitDebug turns on debug mode when ANCHOR_DEBUG=1 is set. Call it after
// Initialize so open failures reach the error log.
func InitDebug() {
	DebugLog = log.New(io.Discard, "", 0)
	if os.Getenv("ANCHOR_DEBUG") != "1" {
		return
	}

	f, err := os.OpenFile(debugLogFileName, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		ErrorLog.Printf("could not open debug log file: %s", err)
		return
	}

	DebugEnabled = true
	DebugLog = log.New(f, "DEBUG:", log.Ltime|log.Lmicroseconds)
	debugLogFile = f
	DebugLog.Printf("debug mode on, writing to %s", debugLogFileName)
}

// CloseDebug closes the debug log file.
func CloseDebug() {
	if debugLogFile == nil {
		return
	}
	_ = debugLogFile.Close()
	debugLogFile = nil
	fmt.Println("wrote debug logs to " + debugLogFileName)
}

func debugf(prefix, format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Printf(prefix+format, v...)
	}
}

// Debug logs a debug message if debug mode is enabled.
func Debug(format string, v ...interface{}) {
	debugf("", format, v...)
}

// AlignTrace logs alignment passes and the inputs that triggered them.
func AlignTrace(format string, v ...interface{}) {
	debugf("[ALIGN] ", format, v...)
}

// LayoutTrace logs terminal resizes and the layout picked for them.
func LayoutTrace(format string, v ...interface{}) {
	debugf("[LAYOUT] ", format, v...)
}

// InputTrace logs key and mouse handling.
func InputTrace(format string, v ...interface{}) {
	debugf("[INPUT] ", format, v...)
}

// ComponentTrace logs lifecycle events of one long-lived component, such as
// a popup, stamped with the time since the trace began.
type ComponentTrace struct {
	component string
	startTime time.Time
}

// TraceComponent returns nil when debug mode is off. Event is safe on a nil
// trace.
func TraceComponent(component string) *ComponentTrace {
	if !DebugEnabled {
		return nil
	}
	return &ComponentTrace{
		component: component,
		startTime: time.Now(),
	}
}

func (t *ComponentTrace) Event(event string, details ...interface{}) {
	if t == nil {
		return
	}
	elapsed := time.Since(t.startTime).Round(time.Microsecond)
	if len(details) > 0 {
		debugf("", "[%s] %s (+%v): %v", t.component, event, elapsed, details)
	} else {
		debugf("", "[%s] %s (+%v)", t.component, event, elapsed)
	}
}
