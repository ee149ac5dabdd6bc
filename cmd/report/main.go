package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"

	"careerwatch/internal/report"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	dataDir := flag.String("data", "data", "directory holding the dataset files")
	outDir := flag.String("out", "charts", "directory to write rendered charts into")
	serve := flag.Bool("serve", false, "serve charts over HTTP instead of writing files")
	addr := flag.String("addr", ":8081", "listen address for -serve")
	flag.Parse()

	if dir := os.Getenv("CAREERWATCH_DATA_DIR"); dir != "" {
		*dataDir = dir
	}

	if *serve {
		srv := report.NewServer(*dataDir)
		slog.Info("serving charts", "addr", *addr, "data_dir", *dataDir)
		if err := http.ListenAndServe(*addr, srv.Router()); err != nil {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
		return
	}

	series, err := report.Load(*dataDir)
	if err != nil {
		slog.Error("failed to load dataset files", "error", err)
		os.Exit(1)
	}
	if len(series) == 0 {
		slog.Warn("no dataset files found", "data_dir", *dataDir)
		return
	}
	if err := report.WriteHTML(*outDir, series); err != nil {
		slog.Error("failed to render charts", "error", err)
		os.Exit(1)
	}
	slog.Info("charts written", "dir", *outDir, "sources", len(series))
}
