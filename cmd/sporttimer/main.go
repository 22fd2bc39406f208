// ABOUTME: Entry point for the sporttimer CLI.
// ABOUTME: Invokes the root Cobra command.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// PersistentPostRunE is skipped when a command fails.
		_ = closeApp(context.Background())
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
