package cache

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickshcc/quicksh/internal/client/models"
	"github.com/quickshcc/quicksh/internal/client/repositories/kv"

	_ "modernc.org/sqlite"
)

func setupCache(t *testing.T) (*Cache, kv.Repository) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value BLOB NOT NULL);`)
	require.NoError(t, err)

	repo := kv.NewSQLiteRepository(db)
	return New(repo), repo
}

func TestAll_FirstRun_IsEmpty(t *testing.T) {
	c, _ := setupCache(t)

	codes, err := c.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, codes)
}

func TestAdd_IsIdempotent(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Add(ctx, 12345))
	require.NoError(t, c.Add(ctx, 12345))

	codes, err := c.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Code{12345}, codes)
}

func TestAdd_PreservesOrder(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Add(ctx, 22222))
	require.NoError(t, c.Add(ctx, 11111))
	require.NoError(t, c.Add(ctx, 33333))

	codes, err := c.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Code{22222, 11111, 33333}, codes)
}

func TestRemove_AbsentCode_IsNoOp(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Add(ctx, 12345))
	require.NoError(t, c.Remove(ctx, 54321))

	codes, err := c.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Code{12345}, codes)
}

func TestRemove_DeletesExactlyThatValue(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	for _, code := range []models.Code{11111, 22222, 33333} {
		require.NoError(t, c.Add(ctx, code))
	}
	require.NoError(t, c.Remove(ctx, 22222))

	codes, err := c.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Code{11111, 33333}, codes)
}

func TestAll_SanitizesMalformedStorage(t *testing.T) {
	c, repo := setupCache(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "codes", []byte("12345,,67890,abc")))

	codes, err := c.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Code{12345, 67890}, codes)
}

func TestAll_DropsOutOfRangeAndDuplicateEntries(t *testing.T) {
	c, repo := setupCache(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "codes", []byte("123,12345,100000,12345")))

	codes, err := c.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Code{12345}, codes)
}

func TestReplace_OverwritesWholeSet(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Add(ctx, 11111))
	require.NoError(t, c.Add(ctx, 22222))

	require.NoError(t, c.Replace(ctx, []models.Code{22222}))

	codes, err := c.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Code{22222}, codes)
}

func TestClear_ResetsToEmpty(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Add(ctx, 11111))
	require.NoError(t, c.Clear(ctx))

	codes, err := c.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, codes)
}

type failingRepo struct{ kv.Repository }

func (f *failingRepo) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, errors.New("disk gone")
}

func TestAll_PropagatesStorageError(t *testing.T) {
	c := New(&failingRepo{})
	_, err := c.All(context.Background())
	require.Error(t, err)
}
