package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/quickshcc/quicksh/internal/client/cache"
	"github.com/quickshcc/quicksh/internal/client/client"
	"github.com/quickshcc/quicksh/internal/client/models"
	"github.com/quickshcc/quicksh/internal/client/repositories/kv"
	"github.com/quickshcc/quicksh/internal/dbx"
	"github.com/quickshcc/quicksh/internal/logging"
)

// Reconciler aligns the local code cache with the server's authoritative
// view. The server only confirms positives, so the cache is cleared and
// repopulated from the response rather than merged: codes the server no
// longer recognizes simply disappear, which is the expected fate of an
// expired transfer and not an error.
type Reconciler struct {
	client    client.Client
	cache     *cache.Cache
	db        *sql.DB
	presenter Presenter
	log       logging.Logger
}

func NewReconciler(apiClient client.Client, codeCache *cache.Cache, db *sql.DB, presenter Presenter, log logging.Logger) *Reconciler {
	return &Reconciler{
		client:    apiClient,
		cache:     codeCache,
		db:        db,
		presenter: presenter,
		log:       log,
	}
}

// Reconcile runs one reconciliation pass. The whole cached set goes to the
// server in a single batched request, bounding the request count regardless
// of cache size. With an empty cache there is nothing to do and no request
// is made.
func (r *Reconciler) Reconcile(ctx context.Context) error {
	codes, err := r.cache.All(ctx)
	if err != nil {
		return fmt.Errorf("reconciliation read failed: %w", err)
	}
	if len(codes) == 0 {
		return nil
	}

	records, err := r.client.ValidateSet(ctx, codes)
	if err != nil {
		return fmt.Errorf("reconciliation request failed: %w", err)
	}

	confirmed := make([]models.Code, 0, len(records))
	for _, record := range records {
		confirmed = append(confirmed, record.Code)
	}

	// Clear-then-repopulate inside one transaction: the cache is rewritten
	// to exactly the server-confirmed subset, in server response order.
	err = dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		txCache := cache.New(kv.NewSQLiteRepository(tx))
		if err := txCache.Clear(ctx); err != nil {
			return err
		}
		for _, code := range confirmed {
			if err := txCache.Add(ctx, code); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("reconciliation rewrite failed: %w", err)
	}

	confirmedSet := make(map[models.Code]struct{}, len(confirmed))
	for _, code := range confirmed {
		confirmedSet[code] = struct{}{}
	}
	dropped := 0
	for _, code := range codes {
		if _, ok := confirmedSet[code]; ok {
			continue
		}
		r.presenter.RemoveHistoryRow(code)
		dropped++
	}

	for _, record := range records {
		r.presenter.RenderHistoryRow(record)
	}

	if dropped > 0 {
		r.log.Info(ctx, "dropped expired codes from cache", "count", dropped)
	}
	return nil
}
