package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/quickshcc/quicksh/internal/client/cache"
	"github.com/quickshcc/quicksh/internal/client/client"
	"github.com/quickshcc/quicksh/internal/client/config"
	"github.com/quickshcc/quicksh/internal/client/entry"
	"github.com/quickshcc/quicksh/internal/client/models"
	"github.com/quickshcc/quicksh/internal/client/repositories/kv"
	"github.com/quickshcc/quicksh/internal/client/services"
	"github.com/quickshcc/quicksh/internal/filex"
	"github.com/quickshcc/quicksh/internal/logging"
)

// clientIDKey stores the persistent instance ID identifying this client to
// the server.
const clientIDKey = "client_id"

// App wires the CLI together: configuration, local database, API client,
// session, reconciler and the terminal view.
type App struct {
	config     *config.Config
	log        logging.Logger
	view       *TermView
	entry      *entry.Entry
	session    *services.Session
	reconciler *services.Reconciler
	apiClient  client.Client
	repos      *client.Repositories
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	repos, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	clientID, err := ensureClientID(ctx, repos.KV)
	if err != nil {
		return nil, err
	}

	downloadDir, err := filex.EnsureSubdDir(cfg.DownloadDir)
	if err != nil {
		return nil, err
	}

	apiClient := client.NewHTTPClient(cfg.ServerBaseURL, clientID, cfg.RequestTimeout, log)
	view := NewTermView(os.Stdout)
	codeCache := cache.New(repos.KV)

	session := services.NewSession(apiClient, codeCache, view, downloadDir, log)
	if err := session.SetExpire(models.ExpireOption(cfg.DefaultExpire)); err != nil {
		log.Warn(ctx, "invalid default expire option, keeping 1 hour", "value", cfg.DefaultExpire)
	}

	return &App{
		config:     cfg,
		log:        log,
		view:       view,
		entry:      entry.New(),
		session:    session,
		reconciler: services.NewReconciler(apiClient, codeCache, repos.DB, view, log),
		apiClient:  apiClient,
		repos:      repos,
	}, nil
}

// ensureClientID loads the persistent client ID, minting one on first run.
func ensureClientID(ctx context.Context, repo kv.Repository) (string, error) {
	stored, err := repo.Get(ctx, clientIDKey)
	if err != nil {
		return "", err
	}
	if len(stored) > 0 {
		return string(stored), nil
	}

	id := uuid.NewString()
	if err := repo.Set(ctx, clientIDKey, []byte(id)); err != nil {
		return "", err
	}
	return id, nil
}

func (a *App) Close() error {
	return a.repos.DB.Close()
}

// Run reconciles the cached codes against the server, applies an optional
// code argument to the digit entry, and enters the command loop.
func (a *App) Run(ctx context.Context, args []string) {
	if err := a.reconciler.Reconcile(ctx); err != nil {
		a.log.Warn(ctx, "history synchronization failed", "error", err)
	}

	if len(args) > 0 {
		a.Prefill(args[0])
	}

	runREPL(ctx, a, bufio.NewScanner(os.Stdin))
}

// Prefill populates the digit entry from a URL-style code segment.
func (a *App) Prefill(segment string) {
	segment = strings.TrimPrefix(segment, "/")
	if segment == "" {
		return
	}

	switch err := a.entry.Prefill(segment); {
	case errors.Is(err, entry.ErrCodeLength):
		a.view.ShowStatus("Invalid code's length")
	case errors.Is(err, entry.ErrCodeNotNumeric):
		a.view.ShowStatus("Invalid code.")
	default:
		a.view.ShowStatus("Pasted code: " + segment)
	}
}

// Send selects the file at path and submits the transfer. An optional
// second argument picks the expire option (0..4).
func (a *App) Send(ctx context.Context, args []string) {
	if len(args) < 1 {
		a.view.ShowStatus("Usage: send <path> [expire 0-4]")
		return
	}

	if len(args) > 1 {
		opt, err := strconv.Atoi(args[1])
		if err != nil || a.session.SetExpire(models.ExpireOption(opt)) != nil {
			a.view.ShowStatus("Invalid expire option (use 0-4).")
			return
		}
	}

	info, err := os.Stat(args[0])
	if err != nil {
		a.view.ShowStatus("Cannot read file: " + args[0])
		return
	}
	if info.IsDir() {
		a.view.ShowStatus("Select only one file.")
		return
	}

	candidate := &models.SelectedFile{
		Name: filepath.Base(args[0]),
		Size: info.Size(),
		Path: args[0],
	}

	if err := a.session.SelectFile(candidate); err != nil {
		if errors.Is(err, models.ErrFileTooLarge) {
			a.view.ShowStatus("Maximum file size is 500 MiB!")
			return
		}
		a.view.ShowStatus("Failed to transfer file.")
		return
	}

	a.view.ShowStatus(fmt.Sprintf("Sending %s (expires after %s)...", candidate.DisplayName(), a.session.Expire().Label()))

	if _, err := a.session.SubmitTransfer(ctx); err != nil {
		a.showTransferError(err)
	}
}

func (a *App) showTransferError(err error) {
	switch {
	case errors.Is(err, services.ErrSuperseded):
		// A newer submission owns the outcome; stay quiet.
	case errors.Is(err, client.ErrRejected):
		a.view.ShowStatus(rejectionReason(err))
	default:
		a.view.ShowStatus("Failed to transfer file.")
	}
}

// Receive downloads a transfer. With no argument the five-cell digit entry
// collects the code interactively.
func (a *App) Receive(ctx context.Context, codeArg string) {
	var code models.Code

	if codeArg == "" {
		got, ok, err := readCodeInteractive(a.entry)
		if errors.Is(err, ErrEntryAborted) {
			return
		}
		if err != nil {
			a.view.ShowStatus("Failed to read code.")
			return
		}
		if !ok {
			a.view.ShowStatus("Invalid code.")
			return
		}
		code = got
	} else {
		got, err := models.ParseCode(codeArg)
		if err != nil {
			a.view.ShowStatus("Invalid code.")
			return
		}
		code = got
	}

	path, err := a.session.SubmitReceive(ctx, code)
	switch {
	case errors.Is(err, services.ErrSuperseded):
		return
	case errors.Is(err, models.ErrInvalidCode):
		a.view.ShowStatus("Invalid code.")
		return
	case errors.Is(err, client.ErrCodeNotFound):
		a.view.ShowStatus("Invalid or expired code")
		return
	case err != nil:
		a.view.ShowStatus("Failed to receive file.")
		return
	}

	a.entry.Reset()
	a.view.ShowStatus("Received " + filepath.Base(path))
}

// List hydrates the history from the server's own bookkeeping, independent
// of the local cache.
func (a *App) List(ctx context.Context) {
	records, err := a.apiClient.ListOwned(ctx)
	if err != nil {
		if errors.Is(err, client.ErrRejected) {
			a.view.ShowStatus(rejectionReason(err))
			return
		}
		a.view.ShowStatus("Failed to fetch owned codes.")
		return
	}

	if len(records) == 0 {
		a.view.ShowStatus("No transfers on the server.")
		return
	}
	for _, record := range records {
		a.view.RenderHistoryRow(record)
	}
}

// Remove deletes an owned transfer on the server and locally.
func (a *App) Remove(ctx context.Context, codeArg string) {
	code, err := models.ParseCode(codeArg)
	if err != nil {
		a.view.ShowStatus("Invalid code.")
		return
	}

	if err := a.session.RemoveOwned(ctx, code); err != nil {
		if errors.Is(err, client.ErrRejected) {
			a.view.ShowStatus(rejectionReason(err))
			return
		}
		a.view.ShowStatus("Failed to remove transfer.")
		return
	}

	a.view.ShowStatus("Removed.")
}

// History lists the rows currently rendered in this session.
func (a *App) History() {
	records := a.view.History()
	if len(records) == 0 {
		a.view.ShowStatus("No transfers yet.")
		return
	}
	for _, record := range records {
		a.view.RenderHistoryRow(record)
	}
}

// Sync re-runs cache reconciliation on demand.
func (a *App) Sync(ctx context.Context) {
	if err := a.reconciler.Reconcile(ctx); err != nil {
		a.view.ShowStatus("Failed to synchronize history.")
		return
	}
	a.view.ShowStatus("Synchronized.")
}

// rejectionReason strips the sentinel prefix so the server-provided reason
// is shown as-is.
func rejectionReason(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx >= 0 {
		return msg[idx+2:]
	}
	return msg
}
