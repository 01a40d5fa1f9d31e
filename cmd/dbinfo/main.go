// Command dbinfo prints the state of the resume database: whether the
// resumes table exists, its columns, the row count and the latest updates.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"text/tabwriter"
	"time"

	repo "resume-builder/internal/adapter/repository"
	"resume-builder/internal/config"
	"resume-builder/internal/logger"
	infra "resume-builder/pkg/infrastructure"
)

func main() {
	recent := flag.Int("recent", 5, "number of recently updated resumes to list")
	flag.Parse()

	log := logger.SetupDefault(os.Stderr, slog.LevelInfo)
	if err := run(os.Stdout, *recent); err != nil {
		log.Error("dbinfo failed", "error", err)
		os.Exit(1)
	}
}

func run(w io.Writer, recent int) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dsn := cfg.DatabaseURL
	if dsn == "" {
		dsn = infra.DefaultDatabaseURL
	}
	pool, err := infra.NewPool(ctx, dsn)
	if err != nil {
		return err
	}
	defer pool.Close()

	rep, err := repo.NewInspector(pool).ResumesReport(ctx, recent)
	if err != nil {
		return err
	}
	return writeReport(w, redact(dsn), rep)
}

// redact hides the password of a URL-style DSN.
func redact(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.Scheme == "" {
		return "(unparsed dsn)"
	}
	return u.Redacted()
}

func writeReport(w io.Writer, database string, rep *repo.TableReport) error {
	fmt.Fprintf(w, "Resume database\n")
	fmt.Fprintf(w, "Database: %s\n\n", database)

	if !rep.Exists {
		fmt.Fprintf(w, "Table %q does not exist. Start the server once to run the migrations.\n", rep.Table)
		return nil
	}
	fmt.Fprintf(w, "Table %q exists\n\n", rep.Table)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "COLUMN\tTYPE\tNOT NULL\tPRIMARY KEY")
	for _, c := range rep.Columns {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Name, c.Type, yesNo(c.NotNull), yesNo(c.PrimaryKey))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nTotal resumes stored: %d\n", rep.Count)
	if len(rep.Recent) == 0 {
		fmt.Fprintln(w, "No resumes found in database")
		return nil
	}

	fmt.Fprintln(w, "\nRecent resumes:")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tNAME\tUPDATED")
	for _, r := range rep.Recent {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.ID, r.Username, r.Name, r.UpdatedAt.UTC().Format(time.RFC3339))
	}
	return tw.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
