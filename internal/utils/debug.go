package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

var (
	debugFile *os.File
	debugOnce sync.Once
	logsDir   string
	mu        sync.RWMutex
)

// ConfigureDebug sets the directory for debug logs. Until a directory is
// configured, Debug is a no-op.
func ConfigureDebug(dir string) {
	mu.Lock()
	defer mu.Unlock()
	logsDir = dir
}

// Debug appends a timestamped message to the current debug log file.
func Debug(format string, args ...any) {
	timestamp := time.Now().Format("2006-01-02 15:04:05")

	mu.RLock()
	dir := logsDir
	mu.RUnlock()

	if dir == "" {
		return
	}

	debugOnce.Do(func() {
		os.MkdirAll(dir, 0o755)
		name := fmt.Sprintf("debug-%s.log", time.Now().Format("20060102-150405"))
		debugFile, _ = os.Create(filepath.Join(dir, name))
	})

	if debugFile != nil {
		fmt.Fprintf(debugFile, "[%s] %s\n", timestamp, fmt.Sprintf(format, args...))
	}
}

// PruneLogs removes old debug log files from dir, keeping the newest keep
// files. Name order matches creation order given the timestamped names.
func PruneLogs(dir string, keep int) {
	if keep < 1 {
		keep = 1
	}
	entries, err := filepath.Glob(filepath.Join(dir, "debug-*.log"))
	if err != nil || len(entries) <= keep {
		return
	}
	sort.Strings(entries)
	for _, path := range entries[:len(entries)-keep] {
		os.Remove(path)
	}
}
