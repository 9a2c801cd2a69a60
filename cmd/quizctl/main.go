// Command quizctl resolves videos, renders quiz prompts and recovers quiz JSON
// from model output without running the HTTP server.
package main

import (
	"fmt"
	"os"
	"strings"

	"video-quiz/internal/logger"
)

func main() {
	root := newRootCmd(defaultDeps())
	err := root.Execute()
	_ = logger.Sync()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %s\n", strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
