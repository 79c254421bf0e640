package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/victorward/dailytarot/internal/catalog"
	"github.com/victorward/dailytarot/internal/content"
	"github.com/victorward/dailytarot/internal/domain"
)

var (
	meaningsPath string
	assetsDir    string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the meanings document and card artwork",
	Long: `Validate loads the meanings document the same way the server does and
reports parse failures, duplicate card ids, assets without interpretive
records, and records with missing texts. Only an empty card catalog is a
hard failure, mirroring the server's startup policy.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate()
	},
}

func init() {
	validateCmd.Flags().StringVar(&meaningsPath, "meanings", "content/meanings.json",
		"path to the meanings document")
	validateCmd.Flags().StringVar(&assetsDir, "assets", "",
		"card artwork directory (optional)")
}

func runValidate() error {
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	raw, err := os.ReadFile(meaningsPath)
	if err != nil {
		yellow.Printf("meanings file unreadable (%v); the server would run with placeholders\n", err)
	}

	// Warnings the loader emits (skips, overwrites) go straight to the
	// terminal instead of the server's JSON stream.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	store, stats := content.Load(raw, logger)

	fmt.Println("Meanings document")
	fmt.Println("-----------------")
	fmt.Printf("objects found:   %d\n", stats.Objects)
	fmt.Printf("records loaded:  %d\n", stats.Loaded)
	if stats.ParseFails > 0 {
		yellow.Printf("parse failures:  %d (skipped)\n", stats.ParseFails)
	}
	if stats.Rejected > 0 {
		yellow.Printf("rejected shapes: %d\n", stats.Rejected)
	}
	if stats.Overwrites > 0 {
		yellow.Printf("duplicate ids:   %d (later object won)\n", stats.Overwrites)
	}

	gaps := 0
	for _, id := range store.IDs() {
		record, _ := store.Get(id)
		for _, orientation := range []domain.Orientation{domain.OrientationUpright, domain.OrientationReversed} {
			block := record.Block(orientation)
			if _, ok := block.Text(string(domain.SphereGeneral), "ru"); !ok {
				yellow.Printf("  %s: no ru general text for %s orientation\n", id, orientation)
				gaps++
			}
		}
	}
	if gaps == 0 && store.Len() > 0 {
		green.Println("all records have ru general texts for both orientations")
	}

	if assetsDir == "" {
		return nil
	}

	fmt.Println()
	fmt.Println("Card artwork")
	fmt.Println("------------")
	cat, err := catalog.New(os.DirFS(assetsDir), nil)
	if err != nil {
		red.Printf("catalog error: %v\n", err)
		return err
	}
	fmt.Printf("assets found:    %d\n", cat.Len())

	uncovered := 0
	for _, asset := range cat.List() {
		id := catalog.CardIDForAsset(asset)
		if _, ok := store.Get(id); !ok {
			yellow.Printf("  %s: card id %q has no meanings record (placeholder at runtime)\n", asset, id)
			uncovered++
		}
	}
	if uncovered == 0 {
		green.Println("every asset resolves to a meanings record")
	}

	return nil
}
