// Package simplelogger appends printf-style lines to the file named by MAGICSTRING_LOG_FILE.
package simplelogger

import (
	"bytes"
	"fmt"
	"os"
	"sync"
)

// EnvVar names the environment variable holding the log file path.
const EnvVar = "MAGICSTRING_LOG_FILE"

var mu sync.Mutex

// Log appends formatted output to the file named by MAGICSTRING_LOG_FILE, adding a trailing newline if missing.
//
// If the variable is unset/empty or the path can't be opened as a file, Log is a no-op.
func Log(format string, args ...any) {
	write("", format, args...)
}

// Warn is Log with a "warning: " prefix.
func Warn(format string, args ...any) {
	write("warning: ", format, args...)
}

// Enabled reports whether a log file is configured.
func Enabled() bool {
	return os.Getenv(EnvVar) != ""
}

func write(prefix string, format string, args ...any) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return
	}

	mu.Lock()
	defer mu.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	var b bytes.Buffer
	b.WriteString(prefix)
	_, _ = fmt.Fprintf(&b, format, args...)
	if b.Len() == 0 || b.Bytes()[b.Len()-1] != '\n' {
		_ = b.WriteByte('\n')
	}
	_, _ = f.Write(b.Bytes())
}
