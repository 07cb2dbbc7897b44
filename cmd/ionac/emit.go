package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"iona/internal/diag"
	"iona/internal/driver"
	"iona/internal/irfile"
)

var emitCmd = &cobra.Command{
	Use:   "emit <document.toml> [more documents...]",
	Short: "Lower declaration documents into C compilation units",
	Long: `Reads declaration IR documents and writes one .c unit per document,
together with the runtime support headers the units include.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEmit,
}

func init() {
	emitCmd.Flags().StringP("out", "o", "", "output directory (default: print units to stdout)")
	emitCmd.Flags().Bool("cache", false, "reuse previously emitted units from the disk cache")
}

func runEmit(cmd *cobra.Command, args []string) error {
	for _, path := range args {
		if !irfile.Exists(path) {
			return fmt.Errorf("no such document: %s", path)
		}
	}

	var cache *driver.DiskCache
	if useCache, _ := cmd.Flags().GetBool("cache"); useCache {
		var err error
		cache, err = driver.OpenDiskCache("ionac")
		if err != nil {
			return fmt.Errorf("open cache: %w", err)
		}
	}

	results, err := driver.CompileAll(context.Background(), args, cache)
	renderer := &diag.Renderer{Colors: useColors(cmd)}
	for _, res := range results {
		if res != nil && res.Bag.Len() > 0 {
			renderer.Render(os.Stderr, res.Bag)
		}
	}
	if err != nil {
		return err
	}

	outDir, _ := cmd.Flags().GetString("out")
	if outDir == "" {
		for _, res := range results {
			fmt.Print(res.Unit.Text)
		}
		return nil
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	for i, res := range results {
		name := unitFileName(args[i])
		if err := os.WriteFile(filepath.Join(outDir, name), []byte(res.Unit.Text), 0o644); err != nil {
			return err
		}
		support, err := res.Unit.SupportFiles()
		if err != nil {
			return err
		}
		for _, header := range res.Unit.Headers {
			if err := os.WriteFile(filepath.Join(outDir, header), []byte(support[header]), 0o644); err != nil {
				return err
			}
		}
	}
	return nil
}

// unitFileName maps a document path to its generated unit name:
// stdlib/core.toml -> core.c.
func unitFileName(docPath string) string {
	base := filepath.Base(docPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + ".c"
}
