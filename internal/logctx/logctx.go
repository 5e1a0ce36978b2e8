// Package logctx redirects the standard library's default logger to a
// file, since the controlling terminal is simplex's own stdout/stderr
// and nothing but the renderer may write to it. This is the same
// approach every binary in the corpus takes from its entrypoint — plain
// "log", never a structured logging library — just pointed at a file
// instead of the terminal.
package logctx

import (
	"fmt"
	"log"
	"os"
)

// Open points the standard logger at path (or, if path is empty,
// $TMPDIR/simplex-<pid>.log), returning the file so the caller can close
// it on shutdown. Overridable via the SIMPLEX_LOG_FILE environment
// variable when path is empty.
func Open(path string) (*os.File, error) {
	if path == "" {
		path = os.Getenv("SIMPLEX_LOG_FILE")
	}
	if path == "" {
		path = fmt.Sprintf("%s/simplex-%d.log", os.TempDir(), os.Getpid())
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logctx: open %s: %w", path, err)
	}
	log.SetOutput(f)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	log.Printf("simplex started, pid=%d, log=%s", os.Getpid(), path)
	return f, nil
}
