// Package preflight checks that a deployment has what the server needs
// before it is started: assets, a writable upload directory, a browser and a
// reachable database.
package preflight

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Status string

const (
	StatusOK   Status = "ok"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

type Result struct {
	Name   string
	Status Status
	Detail string
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type TableChecker interface {
	TableExists(ctx context.Context, table string) (bool, error)
}

// Checker holds what the checks look at. DB and Tables may be nil when no
// connection could be opened; DBErr then explains why.
type Checker struct {
	StaticDir   string
	UploadDir   string
	Environment string
	WorkDir     string

	LocateChrome func() (string, error)

	DB     Pinger
	DBErr  error
	Tables TableChecker
}

// Run executes every check in a fixed order.
func (c Checker) Run(ctx context.Context) []Result {
	return []Result{
		c.checkStatic(),
		c.checkUploadDir(),
		c.checkChrome(),
		c.checkDatabase(ctx),
		c.checkSchema(ctx),
		c.checkEnvironment(),
		c.checkGitignore(),
	}
}

// Failed reports whether any result blocks a deployment.
func Failed(results []Result) bool {
	for _, r := range results {
		if r.Status == StatusFail {
			return true
		}
	}
	return false
}

func (c Checker) checkStatic() Result {
	r := Result{Name: "static assets"}
	index := filepath.Join(c.StaticDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		r.Status, r.Detail = StatusFail, fmt.Sprintf("%s not found", index)
		return r
	}
	r.Status, r.Detail = StatusOK, index
	return r
}

func (c Checker) checkUploadDir() Result {
	r := Result{Name: "upload directory"}
	info, err := os.Stat(c.UploadDir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		r.Status, r.Detail = StatusWarn, fmt.Sprintf("%s missing, the server creates it at startup", c.UploadDir)
		return r
	case err != nil:
		r.Status, r.Detail = StatusFail, err.Error()
		return r
	case !info.IsDir():
		r.Status, r.Detail = StatusFail, fmt.Sprintf("%s is not a directory", c.UploadDir)
		return r
	}

	f, err := os.CreateTemp(c.UploadDir, ".preflight-*")
	if err != nil {
		r.Status, r.Detail = StatusFail, fmt.Sprintf("%s is not writable: %v", c.UploadDir, err)
		return r
	}
	f.Close()
	os.Remove(f.Name())
	r.Status, r.Detail = StatusOK, c.UploadDir
	return r
}

func (c Checker) checkChrome() Result {
	r := Result{Name: "chrome"}
	if c.LocateChrome == nil {
		r.Status, r.Detail = StatusFail, "no browser lookup configured"
		return r
	}
	p, err := c.LocateChrome()
	if err != nil {
		r.Status, r.Detail = StatusFail, err.Error()
		return r
	}
	r.Status, r.Detail = StatusOK, p
	return r
}

func (c Checker) checkDatabase(ctx context.Context) Result {
	r := Result{Name: "database"}
	if c.DB == nil {
		detail := "not connected"
		if c.DBErr != nil {
			detail = c.DBErr.Error()
		}
		r.Status, r.Detail = StatusFail, detail
		return r
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := c.DB.Ping(ctx); err != nil {
		r.Status, r.Detail = StatusFail, err.Error()
		return r
	}
	r.Status, r.Detail = StatusOK, "reachable"
	return r
}

func (c Checker) checkSchema(ctx context.Context) Result {
	r := Result{Name: "schema"}
	if c.Tables == nil {
		r.Status, r.Detail = StatusWarn, "skipped, no database connection"
		return r
	}
	var missing []string
	for _, table := range []string{"users", "resumes"} {
		ok, err := c.Tables.TableExists(ctx, table)
		if err != nil {
			r.Status, r.Detail = StatusFail, err.Error()
			return r
		}
		if !ok {
			missing = append(missing, table)
		}
	}
	if len(missing) > 0 {
		r.Status, r.Detail = StatusWarn, fmt.Sprintf("missing tables %s, the server migrates at startup", strings.Join(missing, ", "))
		return r
	}
	r.Status, r.Detail = StatusOK, "users, resumes"
	return r
}

func (c Checker) checkEnvironment() Result {
	r := Result{Name: "environment"}
	if c.Environment == "development" {
		r.Status, r.Detail = StatusWarn, "APP_ENV=development exposes internal error details"
		return r
	}
	r.Status, r.Detail = StatusOK, c.Environment
	return r
}

func (c Checker) checkGitignore() Result {
	r := Result{Name: ".gitignore"}
	b, err := os.ReadFile(filepath.Join(c.WorkDir, ".gitignore"))
	if err != nil {
		r.Status, r.Detail = StatusWarn, ".gitignore not found"
		return r
	}
	content := string(b)
	var missing []string
	for _, entry := range []string{".env", filepath.Base(c.UploadDir) + "/"} {
		if !strings.Contains(content, entry) {
			missing = append(missing, entry)
		}
	}
	if len(missing) > 0 {
		r.Status, r.Detail = StatusWarn, "missing entries: "+strings.Join(missing, ", ")
		return r
	}
	r.Status, r.Detail = StatusOK, "ignores .env and uploads"
	return r
}
