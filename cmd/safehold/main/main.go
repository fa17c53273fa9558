package main

import (
	"fmt"
	"os"

	"github.com/safehold-dev/safehold/cmd/safehold"
)

func main() {
	rootCmd := safehold.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, safehold.RenderError(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
