package main

import (
	"bytes"
	"testing"
	"time"

	repo "resume-builder/internal/adapter/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReport(t *testing.T) {
	at := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	rep := &repo.TableReport{
		Table:  "resumes",
		Exists: true,
		Columns: []repo.ColumnInfo{
			{Name: "id", Type: "bigint", NotNull: true, PrimaryKey: true},
			{Name: "title", Type: "text"},
		},
		Count:  12,
		Recent: []repo.ResumeSummary{{ID: 12, Username: "alice", Name: "Alice", UpdatedAt: at}},
	}

	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, "postgres://postgres:xxxxx@db:5432/resumes", rep))
	out := buf.String()

	assert.Contains(t, out, `Table "resumes" exists`)
	assert.Regexp(t, `id\s+bigint\s+yes\s+yes`, out)
	assert.Regexp(t, `title\s+text\s+no\s+no`, out)
	assert.Contains(t, out, "Total resumes stored: 12")
	assert.Regexp(t, `12\s+alice\s+Alice\s+2024-05-01T09:30:00Z`, out)
}

func TestWriteReportMissingTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, "db", &repo.TableReport{Table: "resumes"}))

	assert.Contains(t, buf.String(), `Table "resumes" does not exist`)
	assert.NotContains(t, buf.String(), "Total resumes")
}

func TestWriteReportEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, "db", &repo.TableReport{Table: "resumes", Exists: true}))

	assert.Contains(t, buf.String(), "Total resumes stored: 0")
	assert.Contains(t, buf.String(), "No resumes found in database")
}

func TestRedact(t *testing.T) {
	assert.Equal(t, "postgres://postgres:xxxxx@db:5432/resumes?sslmode=disable",
		redact("postgres://postgres:secret@db:5432/resumes?sslmode=disable"))
	assert.Equal(t, "(unparsed dsn)", redact("host=db user=postgres"))
}
