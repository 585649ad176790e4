package cli

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickshcc/quicksh/internal/client/cache"
	"github.com/quickshcc/quicksh/internal/client/client"
	"github.com/quickshcc/quicksh/internal/client/entry"
	"github.com/quickshcc/quicksh/internal/client/models"
	"github.com/quickshcc/quicksh/internal/client/repositories/kv"
	"github.com/quickshcc/quicksh/internal/client/services"
	"github.com/quickshcc/quicksh/internal/logging"

	_ "modernc.org/sqlite"
)

func setupKV(t *testing.T) kv.Repository {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value BLOB NOT NULL);`)
	require.NoError(t, err)
	return kv.NewSQLiteRepository(db)
}

func TestEnsureClientID_MintsOnceThenReuses(t *testing.T) {
	repo := setupKV(t)
	ctx := context.Background()

	first, err := ensureClientID(ctx, repo)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := ensureClientID(ctx, repo)
	require.NoError(t, err)
	assert.Equal(t, first, second, "the ID must survive restarts")
}

func prefillApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return &App{view: NewTermView(&out), entry: entry.New()}, &out
}

func TestPrefill(t *testing.T) {
	tests := []struct {
		name    string
		segment string
		want    string
	}{
		{name: "valid code", segment: "43210", want: "Pasted code: 43210"},
		{name: "with path slash", segment: "/43210", want: "Pasted code: 43210"},
		{name: "wrong length", segment: "123", want: "Invalid code's length"},
		{name: "non numeric", segment: "12a45", want: "Invalid code."},
		{name: "out of range", segment: "09999", want: "Invalid code's length"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app, out := prefillApp(t)
			app.Prefill(tc.segment)
			assert.Contains(t, out.String(), tc.want)
		})
	}
}

func TestPrefill_EmptySegment_StaysQuiet(t *testing.T) {
	app, out := prefillApp(t)
	app.Prefill("/")
	assert.Empty(t, out.String())
}

func quietLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type stubUploader struct{ client.Client }

func (stubUploader) Upload(ctx context.Context, name string, content io.Reader, expire models.ExpireOption) (*models.Record, error) {
	return &models.Record{Code: 43210, Filename: name, Expire: "01/01/2025"}, nil
}

func TestSend_AllOutputGoesThroughView(t *testing.T) {
	var out bytes.Buffer
	view := NewTermView(&out)
	sess := services.NewSession(stubUploader{}, cache.New(setupKV(t)), view, t.TempDir(), quietLogger())

	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o600))

	app := &App{view: view, entry: entry.New(), session: sess}
	app.Send(context.Background(), []string{path})

	assert.Contains(t, out.String(), "Sending report.pdf")
	assert.Contains(t, out.String(), "Transfer ready!")
}
