// Package actions is the output channel back to the GitHub Actions
// runner: named step outputs and error annotations.
package actions

import (
	"fmt"
	"os"
	"strings"
)

// SetOutput appends a named output to the file the runner exposes via
// GITHUB_OUTPUT. Multiline values use the heredoc record form.
func SetOutput(name, value string) error {
	path := os.Getenv("GITHUB_OUTPUT")
	if path == "" {
		return fmt.Errorf("GITHUB_OUTPUT is not set")
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if strings.ContainsAny(value, "\r\n") {
		_, err = fmt.Fprintf(f, "%s<<deploygate_EOF\n%s\ndeploygate_EOF\n", name, value)
	} else {
		_, err = fmt.Fprintf(f, "%s=%s\n", name, value)
	}
	if err != nil {
		return fmt.Errorf("write output %s: %w", name, err)
	}

	return nil
}

// Error emits an error workflow command, which annotates the run as
// failed with the given message.
func Error(msg string) {
	fmt.Printf("::error::%s\n", escapeData(msg))
}

// Workflow command data must percent-encode %, CR and LF
func escapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}
