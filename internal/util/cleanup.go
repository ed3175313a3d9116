package util

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
)

func SetupInterruptHandler(outputDir string) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sig
		fmt.Fprintln(os.Stderr, "\nInterrupt received. Cleaning up...")

		CleanupPartialFiles(outputDir)
		RemoveIfEmpty(outputDir)
		fmt.Fprintln(os.Stderr, "Exiting due to interrupt.")

		os.Exit(1)
	}()
}

// CleanupPartialFiles removes temp files left by interrupted writes.
func CleanupPartialFiles(outputDir string) int {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return 0
	}

	removed := 0
	for _, e := range entries {
		if e.IsDir() || !isTempFile(e.Name()) {
			continue
		}

		full := filepath.Join(outputDir, e.Name())
		if err := os.Remove(full); err != nil {
			fmt.Fprintf(os.Stderr, "Error cleaning up %s: %v\n", full, err)
			continue
		}
		removed++
	}

	return removed
}

func RemoveIfEmpty(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	if len(entries) == 0 {
		if err := os.Remove(dir); err == nil {
			fmt.Fprintf(os.Stderr, "Removed empty output folder: %s\n", dir)
		}
	}
}
