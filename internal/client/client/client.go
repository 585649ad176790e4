package client

import (
	"context"
	"io"

	"github.com/quickshcc/quicksh/internal/client/models"
)

// Download is the result of fetching a transfer: the file body and the
// filename resolved from the response's disposition metadata. The caller
// owns Body and must close it as soon as the content has been consumed.
type Download struct {
	Filename string
	Body     io.ReadCloser
}

// Client is the transport-agnostic contract for talking to the quicksh
// service. All operations honor context cancellation and map failures to
// the sentinel errors of this package.
type Client interface {
	// Upload sends the file content under the given name and returns the
	// issued code together with the readable expiry. Caching the code is
	// the caller's decision.
	Upload(ctx context.Context, name string, content io.Reader, expire models.ExpireOption) (*models.Record, error)

	// Download fetches the transfer identified by code. Codes outside the
	// 5-digit range fail fast with models.ErrInvalidCode before any
	// network activity.
	Download(ctx context.Context, code models.Code) (*Download, error)

	// Delete removes the transfer identified by code on the server.
	Delete(ctx context.Context, code models.Code) error

	// ListOwned returns the transfers the server attributes to this
	// client, in the order the server reported them.
	ListOwned(ctx context.Context) ([]models.Record, error)

	// ValidateSet asks the server which of the given codes are still
	// recognized, in one batched request. Only valid codes come back, in
	// server response order. Must not be called with an empty set.
	ValidateSet(ctx context.Context, codes []models.Code) ([]models.Record, error)
}
