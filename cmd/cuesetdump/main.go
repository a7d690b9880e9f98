// cuesetdump prints the raw JSON held in a blob store, for inspecting the
// canonical and draft collections outside the TUI.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mmcdole/cueset/internal/config"
	"github.com/mmcdole/cueset/internal/domain"
	"github.com/mmcdole/cueset/internal/store"
)

func main() {
	var (
		backend = flag.String("backend", "", "store backend: bolt, dir or memory (default: from config)")
		path    = flag.String("path", "", "store path (default: from config)")
		storeID = flag.String("store", domain.StoreCanonical, "store to dump: canonical or draft")
	)
	flag.Parse()

	if err := run(*backend, *path, *storeID); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(backend, path, storeID string) error {
	if storeID != domain.StoreCanonical && storeID != domain.StoreDraft {
		return fmt.Errorf("unknown store %q", storeID)
	}

	if backend == "" || path == "" {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if backend == "" {
			backend = cfg.Storage.Backend
		}
		if path == "" {
			path = cfg.Storage.Path
		}
	}

	blob, err := store.Open(backend, path)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer blob.Close()

	data, ok := blob.Load(storeID)
	if !ok {
		fmt.Println("[]")
		return nil
	}

	fmt.Println(string(data))
	return nil
}
