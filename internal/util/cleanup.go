package util

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
)

// SetupInterruptHandler cancels the running scrape on SIGINT/SIGTERM and
// removes the temp files WriteFileAtomic left for outputPath. A second
// signal exits at once.
func SetupInterruptHandler(cancel func(), outputPath string) (stop func()) {
	sig := make(chan os.Signal, 2)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		select {
		case <-sig:
		case <-done:
			return
		}

		fmt.Println("\nInterrupt received. Cleaning up...")
		cancel()
		if outputPath != "" {
			CleanupTempFiles(outputPath)
		}

		select {
		case <-sig:
			fmt.Println("\nExiting due to interrupt.")
			os.Exit(1)
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sig)
		close(done)
	}
}

// CleanupTempFiles removes the "<name>.*.tmp" files an interrupted
// WriteFileAtomic left next to outputPath. Other files are left alone.
func CleanupTempFiles(outputPath string) {
	dir := filepath.Dir(outputPath)
	prefix := filepath.Base(outputPath) + "."

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, TempSuffix) {
			continue
		}

		full := filepath.Join(dir, name)
		if err := os.Remove(full); err != nil {
			fmt.Printf("Error cleaning up %s: %v\n", full, err)
		} else {
			fmt.Printf("Removed %s\n", full)
		}
	}
}
