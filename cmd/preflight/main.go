// Command preflight checks a deployment before the server is started and
// exits non-zero when something the server needs is missing.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	repo "resume-builder/internal/adapter/repository"
	"resume-builder/internal/config"
	"resume-builder/internal/logger"
	"resume-builder/internal/preflight"
	infra "resume-builder/pkg/infrastructure"
)

func main() {
	log := logger.SetupDefault(os.Stderr, slog.LevelInfo)

	ok, err := run(os.Stdout)
	if err != nil {
		log.Error("preflight failed", "error", err)
		os.Exit(1)
	}
	if !ok {
		os.Exit(1)
	}
}

func run(w io.Writer) (bool, error) {
	cfg, err := config.Load()
	if err != nil {
		return false, fmt.Errorf("load config: %w", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		return false, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	checker := preflight.Checker{
		StaticDir:    cfg.StaticDir,
		UploadDir:    cfg.UploadDir,
		Environment:  cfg.Environment,
		WorkDir:      wd,
		LocateChrome: func() (string, error) { return infra.LocateChrome(cfg.ChromePath) },
	}
	pool, err := infra.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		checker.DBErr = err
	} else {
		defer pool.Close()
		checker.DB = pool
		checker.Tables = repo.NewInspector(pool)
	}

	results := checker.Run(ctx)
	if err := writeResults(w, results); err != nil {
		return false, err
	}
	return !preflight.Failed(results), nil
}

func writeResults(w io.Writer, results []preflight.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CHECK\tSTATUS\tDETAIL")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Name, r.Status, r.Detail)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if preflight.Failed(results) {
		fmt.Fprintln(w, "\nFix the failed checks before deploying.")
	} else {
		fmt.Fprintln(w, "\nReady to deploy.")
	}
	return nil
}
