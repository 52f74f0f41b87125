// Package log provides the pipeline's debug logger, enabled only when the
// FISH_EXPAND_LOG environment variable is set, in the manner of carapace's
// own internal logger: silent by default, a single shared *log.Logger once
// asked for.
package log

import (
	"fmt"
	"io"
	"log"
	"os"
)

// LOG is discarded unless FISH_EXPAND_LOG names a writable path, or
// Reconfigure is called explicitly (e.g. from a --log CLI flag, which is
// parsed too late for the environment variable to still matter).
var LOG = log.New(io.Discard, "", log.Flags())

func init() {
	if path := os.Getenv("FISH_EXPAND_LOG"); path != "" {
		Reconfigure(path)
	}
}

// Reconfigure points LOG at path: "-" for stderr, "" to discard again, or a
// file path to append to, created at that path if it doesn't already
// exist. Before opening a file it also creates a fishexpand directory under
// os.TempDir(); the log file itself is not placed there.
func Reconfigure(path string) {
	if path == "" {
		LOG = log.New(io.Discard, "", log.Flags())
		return
	}

	if path == "-" {
		LOG = log.New(os.Stderr, "", log.Flags()|log.Lmicroseconds)
		return
	}

	dir := fmt.Sprintf("%v/fishexpand", os.TempDir())
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		log.Fatal(err.Error())
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o666)
	if err != nil {
		log.Fatal(err.Error())
	}

	LOG = log.New(f, "fishexpand ", log.Flags()|log.Lmsgprefix|log.Lmicroseconds)
}
