// Package cache implements the durable set of transfer codes this client
// believes it owns. The set is a hint only: the server remains the source of
// truth on expiry, and the reconciler rewrites the set to match it.
package cache

import (
	"context"
	"fmt"
	"strings"

	"github.com/quickshcc/quicksh/internal/client/models"
	"github.com/quickshcc/quicksh/internal/client/repositories/kv"
)

// codesKey is the single durable key holding the comma-joined code list.
// An empty string means an empty cache.
const codesKey = "codes"

// Cache is a persistent, deduplicated, ordered set of codes. Every mutation
// is written through to the backing store before returning, so a reload
// right after any operation observes the post-mutation state.
type Cache struct {
	kv kv.Repository
}

func New(repo kv.Repository) *Cache {
	return &Cache{kv: repo}
}

// All returns the current ordered code set. Entries that do not parse as
// in-range codes (corrupt or partially written storage) are dropped
// silently; a missing key reads as the empty set.
func (c *Cache) All(ctx context.Context) ([]models.Code, error) {
	raw, err := c.kv.Get(ctx, codesKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read code cache: %w", err)
	}
	return parseCodes(string(raw)), nil
}

// Add appends code to the set. Adding a present code is a no-op; prior
// order is preserved.
func (c *Cache) Add(ctx context.Context, code models.Code) error {
	codes, err := c.All(ctx)
	if err != nil {
		return err
	}
	for _, existing := range codes {
		if existing == code {
			return nil
		}
	}
	return c.write(ctx, append(codes, code))
}

// Remove deletes code from the set. Removing an absent code is a no-op.
func (c *Cache) Remove(ctx context.Context, code models.Code) error {
	codes, err := c.All(ctx)
	if err != nil {
		return err
	}

	kept := codes[:0]
	removed := false
	for _, existing := range codes {
		if existing == code {
			removed = true
			continue
		}
		kept = append(kept, existing)
	}
	if !removed {
		return nil
	}
	return c.write(ctx, kept)
}

// Replace overwrites the whole set with codes, in the given order. Used by
// reconciliation, which rewrites the cache to the server-confirmed subset.
func (c *Cache) Replace(ctx context.Context, codes []models.Code) error {
	return c.write(ctx, codes)
}

// Clear resets the cache to the empty set.
func (c *Cache) Clear(ctx context.Context) error {
	return c.write(ctx, nil)
}

func (c *Cache) write(ctx context.Context, codes []models.Code) error {
	parts := make([]string, 0, len(codes))
	for _, code := range codes {
		parts = append(parts, code.String())
	}
	if err := c.kv.Set(ctx, codesKey, []byte(strings.Join(parts, ","))); err != nil {
		return fmt.Errorf("failed to persist code cache: %w", err)
	}
	return nil
}

// parseCodes splits the stored blob, keeping only tokens that parse as
// valid codes and skipping duplicates.
func parseCodes(raw string) []models.Code {
	if raw == "" {
		return nil
	}

	var codes []models.Code
	seen := make(map[models.Code]struct{})
	for _, token := range strings.Split(raw, ",") {
		code, err := models.ParseCode(strings.TrimSpace(token))
		if err != nil {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	return codes
}
