package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// fallbackTimeLayout is ISO-8601 with milliseconds, always in UTC.
const fallbackTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// FallbackLog mirrors accepted applications into an append-only text file,
// one line per application:
//
//	2024-05-01T10:00:00.000Z - Application Received - Name: Ana, Phone: 555-1234
//
// The file can be read without database access. It is opened per append so
// an external rotation tool needs no signal.
type FallbackLog struct {
	path string
	now  func() time.Time

	mu sync.Mutex
}

// NewFallbackLog returns a log appending to path. The file and its parent
// directory are created on the first append.
func NewFallbackLog(path string) *FallbackLog {
	return &FallbackLog{path: path, now: time.Now}
}

// Path returns the file the log appends to.
func (l *FallbackLog) Path() string {
	return l.path
}

// Append writes one line for app. Errors are returned as *FallbackLogError.
func (l *FallbackLog) Append(app Application) error {
	line := fmt.Sprintf("%s - Application Received - Name: %s, Phone: %s\n",
		l.now().UTC().Format(fallbackTimeLayout),
		oneLine(app.Name),
		oneLine(app.Phone),
	)

	l.mu.Lock()
	defer l.mu.Unlock()

	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &FallbackLogError{Path: l.path, Err: err}
		}
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return &FallbackLogError{Path: l.path, Err: err}
	}

	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return &FallbackLogError{Path: l.path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &FallbackLogError{Path: l.path, Err: err}
	}
	return nil
}

// oneLine keeps a field from breaking the one-entry-per-line format.
func oneLine(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}
