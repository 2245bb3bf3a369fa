// s3tui — an interactive terminal file manager for S3-compatible object
// storage.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	root := newRootCmd()
	err := root.Execute()
	if err == nil {
		os.Exit(0)
	}

	var cfgErr *configError
	if errors.As(err, &cfgErr) {
		fmt.Fprintf(os.Stderr, "s3tui: %v\n", cfgErr)
		os.Exit(2)
	}

	fmt.Fprintf(os.Stderr, "s3tui: %v\n", err)
	os.Exit(1)
}
