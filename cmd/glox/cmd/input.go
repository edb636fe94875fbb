package cmd

import (
	"io"
	"os"
)

const (
	exitUsage    = 64
	exitFileRead = 66
	exitFailure  = 70
)

// readSource reads path, or stdin when path is "-".
func readSource(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}
