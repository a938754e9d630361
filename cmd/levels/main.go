package main

import (
	"encoding/json"
	"flag"
	"os"
	"path/filepath"

	"github.com/1siamBot/snake/editor"
	"github.com/1siamBot/snake/engine/config"
	"github.com/charmbracelet/log"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "settings file, created with defaults when missing")
	out := flag.String("out", "levels", "output directory")
	previews := flag.Bool("png", true, "also write PNG previews")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "levels",
	})

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("could not load settings", "path", *configPath, "err", err)
	}
	logger.SetLevel(cfg.LogLevel())

	table, err := editor.ExportLevels(cfg.Game, *out, *previews)
	if err != nil {
		logger.Fatal("export failed", "err", err)
	}
	for i, lv := range table {
		logger.Info("exported", "level", i+1, "size", lv.Width, "file", lv.LayoutFile)
	}

	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		logger.Fatal("encode level table", "err", err)
	}
	path := filepath.Join(*out, "levels.json")
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		logger.Fatal("write level table", "err", err)
	}
	logger.Info("level table written", "path", path, "levels", len(table))
}
